package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
	"splitnest/internal/services"
)

// SalaryHandler handles salary records
type SalaryHandler struct {
	salaryService services.SalaryServicer
}

// NewSalaryHandler creates a new SalaryHandler
func NewSalaryHandler(salaryService services.SalaryServicer) *SalaryHandler {
	return &SalaryHandler{salaryService: salaryService}
}

// SalaryRequest represents the salary upsert payload
type SalaryRequest struct {
	Amount int64 `json:"amount" binding:"min=0"`
	Year   int   `json:"year" binding:"required,min=1970,max=9999"`
	Month  int   `json:"month" binding:"required,min=1,max=12"`
}

// SetSalary records the caller's salary from a month onward
// @Summary     Set salary
// @Description Record the caller's salary effective from the given month. The value carries forward until a newer record exists.
// @Tags        salaries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SalaryRequest true "Salary data"
// @Success     200 {object} models.Salary
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a household member"
// @Router      /salaries [put]
func (h *SalaryHandler) SetSalary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	salary, err := h.salaryService.SetSalary(userID, req.Amount, schedule.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, salary)
}

// GetSalaries returns the caller's salary history
// @Summary     List salaries
// @Description List the caller's salary records, newest first
// @Tags        salaries
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[models.Salary]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /salaries [get]
func (h *SalaryHandler) GetSalaries(c *gin.Context) {
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

	result, err := h.salaryService.GetUserSalaries(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
