package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/schedule"
	"splitnest/internal/services"
)

// SavingHandler handles savings contributions
type SavingHandler struct {
	savingService services.SavingServicer
}

// NewSavingHandler creates a new SavingHandler
func NewSavingHandler(savingService services.SavingServicer) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

// SavingRequest represents the saving creation payload
type SavingRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Type   string `json:"type" binding:"required,saving_type"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Year   int    `json:"year" binding:"required,min=1970,max=9999"`
	Month  int    `json:"month" binding:"required,min=1,max=12"`
}

// CreateSaving records a savings contribution
// @Summary     Create saving
// @Description Record a personal or shared savings contribution for a month
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SavingRequest true "Saving data"
// @Success     201 {object} models.Saving
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /savings [post]
func (h *SavingHandler) CreateSaving(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saving, err := h.savingService.CreateSaving(userID, req.Name, models.SavingType(req.Type), req.Amount,
		schedule.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saving)
}

// GetSavings lists the household's savings for a period
// @Summary     List savings
// @Description List the household's savings contributions for a month
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {object} map[string]interface{} "Savings for the period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /savings [get]
func (h *SavingHandler) GetSavings(c *gin.Context) {
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

	savings, err := h.savingService.GetHouseholdSavings(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":    period.Year,
		"month":   period.Month,
		"savings": savings,
	})
}

// DeleteSaving removes a savings contribution
// @Summary     Delete saving
// @Description Delete a savings contribution owned by the caller
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Saving ID"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Saving not found"
// @Router      /savings/{id} [delete]
func (h *SavingHandler) DeleteSaving(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingService.DeleteSaving(userID, savingID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saving deleted successfully"})
}
