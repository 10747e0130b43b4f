package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/schedule"
	"splitnest/internal/services"
)

// DashboardHandler handles the household overview and settlement
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardServicer, auditService services.AuditServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, auditService: auditService}
}

// SettlementRequest represents the mark-settled payload
type SettlementRequest struct {
	Year  int `json:"year" binding:"required,min=1970,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// GetOverview returns the household overview for a period
// @Summary     Get overview
// @Description Get the household's income, expense, savings and settlement summary for a month, or the twelve-month average in yearly view
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Param       view query string false "View mode" Enums(monthly, yearly) default(monthly)
// @Success     200 {object} services.Overview
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
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

	mode := services.ViewModeMonthly
	switch c.DefaultQuery("view", "monthly") {
	case "monthly":
	case "yearly":
		mode = services.ViewModeYearly
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "view must be monthly or yearly"))
		return
	}

	overview, err := h.dashboardService.ComputeOverview(c.Request.Context(), userID, period, mode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// MarkSettlementPaid records the period's settlement transfer as done
// @Summary     Mark settlement paid
// @Description Record the month's settlement transfer as completed. Fails if already settled or nothing is owed.
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SettlementRequest true "Period"
// @Success     201 {object} models.Settlement
// @Failure     400 {object} ErrorResponse "Nothing to settle"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already settled"
// @Router      /dashboard/settlement [post]
func (h *DashboardHandler) MarkSettlementPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settlement, err := h.dashboardService.MarkSettlementPaid(userID, schedule.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "settle", "settlement", settlement.ID, c.ClientIP(), map[string]interface{}{
		"year":   req.Year,
		"month":  req.Month,
		"amount": settlement.Amount,
	})
	c.JSON(http.StatusCreated, settlement)
}
