package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/schedule"
	"splitnest/internal/services"
)

// PaymentHandler handles per-month payment and skip state
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// PaymentRequest represents the mark-paid and undo payloads
type PaymentRequest struct {
	Year  int `json:"year" binding:"required,min=1970,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// SkipRequest represents the skip payload
type SkipRequest struct {
	Year            int  `json:"year" binding:"required,min=1970,max=9999"`
	Month           int  `json:"month" binding:"required,min=1,max=12"`
	ApplyToUpcoming bool `json:"apply_to_upcoming"`
}

// UnskipRequest represents the unskip payload
type UnskipRequest struct {
	Year           int  `json:"year" binding:"required,min=1970,max=9999"`
	Month          int  `json:"month" binding:"required,min=1,max=12"`
	DeleteUpcoming bool `json:"delete_upcoming"`
}

// MarkPaid marks an expense as paid for a month
// @Summary     Mark paid
// @Description Mark an expense occurrence as paid for a month. Marking an already paid occurrence is a no-op.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body PaymentRequest true "Period"
// @Success     200 {object} models.ExpensePaymentStatus
// @Failure     400 {object} ErrorResponse "Period not applicable"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/paid [post]
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	status, err := h.paymentService.MarkPaid(userID, expenseID, schedule.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "mark_paid", "expense", expenseID, c.ClientIP(), map[string]interface{}{
		"year":  req.Year,
		"month": req.Month,
	})
	c.JSON(http.StatusOK, status)
}

// UndoPaid reverts an expense occurrence to pending
// @Summary     Undo paid
// @Description Revert a paid expense occurrence to pending. Undoing a pending occurrence is a no-op.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body PaymentRequest true "Period"
// @Success     200 {object} models.ExpensePaymentStatus
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/paid [delete]
func (h *PaymentHandler) UndoPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	status, err := h.paymentService.UndoPaid(userID, expenseID, schedule.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "undo_paid", "expense", expenseID, c.ClientIP(), map[string]interface{}{
		"year":  req.Year,
		"month": req.Month,
	})
	c.JSON(http.StatusOK, status)
}

// GetBatchStatuses returns payment state for every household expense in a period
// @Summary     Batch payment statuses
// @Description Get the payment state of every household expense for a month, keyed by expense ID. Expenses without an entry are pending.
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {object} map[string]interface{} "Statuses keyed by expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /payments/statuses [get]
func (h *PaymentHandler) GetBatchStatuses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := parsePeriodQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.paymentService.GetBatchStatuses(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     period.Year,
		"month":    period.Month,
		"statuses": statuses,
	})
}

// Skip skips an expense occurrence
// @Summary     Skip occurrence
// @Description Skip an expense occurrence for a month, resolving it to zero. Optionally applies to every upcoming applicable month in the window.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body SkipRequest true "Period"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Period not applicable, fixed schedule or past period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/skip [post]
func (h *PaymentHandler) Skip(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err = h.paymentService.Skip(userID, expenseID, schedule.Period{Year: req.Year, Month: req.Month}, req.ApplyToUpcoming)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "skip", "expense", expenseID, c.ClientIP(), map[string]interface{}{
		"year":  req.Year,
		"month": req.Month,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Occurrence skipped successfully"})
}

// Unskip restores a skipped expense occurrence
// @Summary     Unskip occurrence
// @Description Restore a skipped expense occurrence to its scheduled amount
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body UnskipRequest true "Period"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense or override not found"
// @Router      /expenses/{id}/skip [delete]
func (h *PaymentHandler) Unskip(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UnskipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err = h.paymentService.Unskip(userID, expenseID, schedule.Period{Year: req.Year, Month: req.Month}, req.DeleteUpcoming)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Occurrence restored successfully"})
}
