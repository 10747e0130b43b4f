package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
	"splitnest/internal/services"
)

// ExpenseHandler handles expense CRUD, timelines and overrides
type ExpenseHandler struct {
	expenseService  services.ExpenseServicer
	overrideService services.OverrideServicer
	auditService    services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, overrideService services.OverrideServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:  expenseService,
		overrideService: overrideService,
		auditService:    auditService,
	}
}

// ExpenseRequest represents the expense create/update payload
type ExpenseRequest struct {
	Name                 string  `json:"name" binding:"required,min=1,max=255"`
	Amount               int64   `json:"amount" binding:"required,gt=0"`
	Type                 string  `json:"type" binding:"required,expense_type"`
	Category             string  `json:"category" binding:"required,expense_category"`
	Frequency            *string `json:"frequency,omitempty" binding:"omitempty,expense_frequency"`
	PaymentStrategy      *string `json:"payment_strategy,omitempty" binding:"omitempty,payment_strategy"`
	InstallmentFrequency *string `json:"installment_frequency,omitempty" binding:"omitempty,installment_frequency"`
	InstallmentCount     *int    `json:"installment_count,omitempty" binding:"omitempty,gt=0"`
	PaymentMonth         *int    `json:"payment_month,omitempty" binding:"omitempty,min=1,max=12"`
	Month                *int    `json:"month,omitempty" binding:"omitempty,min=1,max=12"`
	Year                 *int    `json:"year,omitempty" binding:"omitempty,min=1970,max=9999"`
	PaidByUserID         *uint   `json:"paid_by_user_id,omitempty"`
}

// OverrideRequest represents the override upsert payload
type OverrideRequest struct {
	Year            int   `json:"year" binding:"required,min=1970,max=9999"`
	Month           int   `json:"month" binding:"required,min=1,max=12"`
	Amount          int64 `json:"amount" binding:"min=0"`
	Skipped         bool  `json:"skipped"`
	ApplyToUpcoming bool  `json:"apply_to_upcoming"`
}

// DeleteOverrideRequest represents the override delete payload
type DeleteOverrideRequest struct {
	Year           int  `json:"year" binding:"required,min=1970,max=9999"`
	Month          int  `json:"month" binding:"required,min=1,max=12"`
	DeleteUpcoming bool `json:"delete_upcoming"`
}

func (r *ExpenseRequest) toInput() services.ExpenseInput {
	in := services.ExpenseInput{
		Name:             r.Name,
		Amount:           r.Amount,
		Type:             models.ExpenseType(r.Type),
		Category:         models.ExpenseCategory(r.Category),
		InstallmentCount: r.InstallmentCount,
		PaymentMonth:     r.PaymentMonth,
		Month:            r.Month,
		Year:             r.Year,
		PaidByUserID:     r.PaidByUserID,
	}
	if r.Frequency != nil {
		f := models.ExpenseFrequency(*r.Frequency)
		in.Frequency = &f
	}
	if r.PaymentStrategy != nil {
		p := models.PaymentStrategy(*r.PaymentStrategy)
		in.PaymentStrategy = &p
	}
	if r.InstallmentFrequency != nil {
		f := models.InstallmentFrequency(*r.InstallmentFrequency)
		in.InstallmentFrequency = &f
	}
	return in
}

// CreateExpense creates an expense
// @Summary     Create expense
// @Description Create an expense in the caller's household. Amounts are in cents.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} models.Expense
// @Failure     400 {object} ErrorResponse "Invalid input or plan combination"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "expense", expense.ID, c.ClientIP(), map[string]interface{}{
		"name":   expense.Name,
		"amount": expense.Amount,
	})
	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists the household's expenses
// @Summary     List expenses
// @Description List the household's expenses with optional type and category filters
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       type query string false "Filter by type" Enums(PERSONAL, SHARED)
// @Param       category query string false "Filter by category" Enums(RECURRING, ONE_TIME)
// @Success     200 {object} pagination.PageResponse[models.Expense]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ExpenseFilter
	if v := c.Query("type"); v != "" {
		t := models.ExpenseType(v)
		filter.Type = &t
	}
	if v := c.Query("category"); v != "" {
		cat := models.ExpenseCategory(v)
		filter.Category = &cat
	}

	result, err := h.expenseService.GetHouseholdExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense returns a single expense
// @Summary     Get expense
// @Description Get an expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} models.Expense
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
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

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense replaces an expense's definition
// @Summary     Update expense
// @Description Replace an expense's definition. The plan combination is revalidated.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body ExpenseRequest true "Expense data"
// @Success     200 {object} models.Expense
// @Failure     400 {object} ErrorResponse "Invalid input or plan combination"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
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

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "expense", expense.ID, c.ClientIP(), map[string]interface{}{
		"name":   expense.Name,
		"amount": expense.Amount,
	})
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense deletes an expense and its overrides and payment rows
// @Summary     Delete expense
// @Description Delete an expense along with its overrides and payment statuses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
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

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "expense", expenseID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetTimeline returns the expense's occurrence timeline
// @Summary     Get expense timeline
// @Description Get the expense's month-by-month timeline, twelve months back through twelve months ahead, with overrides and payment state folded in
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]interface{} "Timeline entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/timeline [get]
func (h *ExpenseHandler) GetTimeline(c *gin.Context) {
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

	entries, err := h.expenseService.GetTimeline(userID, expenseID, schedule.PeriodOf(time.Now()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": entries})
}

// UpsertOverride sets an override for one period or all upcoming periods
// @Summary     Set override
// @Description Set a per-month amount override, optionally for every applicable month from the given one through the end of the timeline window
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body OverrideRequest true "Override data"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid input, fixed schedule, past or non-occurring period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/override [put]
func (h *ExpenseHandler) UpsertOverride(c *gin.Context) {
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

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	at := schedule.Period{Year: req.Year, Month: req.Month}
	err = h.overrideService.UpsertOverride(userID, expenseID, at, req.Amount, req.Skipped, req.ApplyToUpcoming, schedule.PeriodOf(time.Now()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "override", "expense", expenseID, c.ClientIP(), map[string]interface{}{
		"year":    req.Year,
		"month":   req.Month,
		"amount":  req.Amount,
		"skipped": req.Skipped,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Override saved successfully"})
}

// DeleteOverride removes an override for one period or all upcoming periods
// @Summary     Delete override
// @Description Remove the override at a month, optionally together with every override at or after it
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body DeleteOverrideRequest true "Delete parameters"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid input or past period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense or override not found"
// @Router      /expenses/{id}/override [delete]
func (h *ExpenseHandler) DeleteOverride(c *gin.Context) {
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

	var req DeleteOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	at := schedule.Period{Year: req.Year, Month: req.Month}
	err = h.overrideService.DeleteOverride(userID, expenseID, at, req.DeleteUpcoming, schedule.PeriodOf(time.Now()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Override removed successfully"})
}
