package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/services"
)

// HouseholdHandler handles household membership requests
type HouseholdHandler struct {
	householdService services.HouseholdServicer
	auditService     services.AuditServicer
}

// NewHouseholdHandler creates a new HouseholdHandler
func NewHouseholdHandler(householdService services.HouseholdServicer, auditService services.AuditServicer) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService, auditService: auditService}
}

// CreateHouseholdRequest represents the household creation payload
type CreateHouseholdRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// JoinHouseholdRequest represents the join-by-invite payload
type JoinHouseholdRequest struct {
	InviteCode string `json:"invite_code" binding:"required,len=8"`
}

// CreateHousehold creates a household with the caller as owner
// @Summary     Create household
// @Description Create a new household. The caller becomes the owner. A user can belong to one household at a time.
// @Tags        households
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHouseholdRequest true "Household data"
// @Success     201 {object} models.Household
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already in a household"
// @Router      /households [post]
func (h *HouseholdHandler) CreateHousehold(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.householdService.CreateHousehold(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "household", household.ID, c.ClientIP(), map[string]interface{}{
		"name": household.Name,
	})
	c.JSON(http.StatusCreated, household)
}

// JoinHousehold joins a household by invite code
// @Summary     Join household
// @Description Join an existing household using its invite code
// @Tags        households
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JoinHouseholdRequest true "Invite code"
// @Success     200 {object} models.Household
// @Failure     400 {object} ErrorResponse "Invalid invite code"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already in a household"
// @Router      /households/join [post]
func (h *HouseholdHandler) JoinHousehold(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JoinHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.householdService.JoinHousehold(userID, req.InviteCode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "join", "household", household.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, household)
}

// GetHousehold returns the caller's household with its members
// @Summary     Get household
// @Description Get the caller's household and its members
// @Tags        households
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Household with members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not in a household"
// @Router      /households/me [get]
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	household, err := h.householdService.GetUserHousehold(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.householdService.GetMembers(household.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"household": household,
		"members":   members,
	})
}
