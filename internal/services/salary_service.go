package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
)

// salaryService handles salary records.
type salaryService struct {
	db          *gorm.DB
	households  HouseholdServicer
	invalidator CacheInvalidator
}

// NewSalaryService creates a new SalaryServicer.
func NewSalaryService(db *gorm.DB, households HouseholdServicer, invalidator CacheInvalidator) SalaryServicer {
	return &salaryService{db: db, households: households, invalidator: invalidator}
}

// SetSalary upserts the caller's salary from the given period onward.
func (s *salaryService) SetSalary(userID uint, amount int64, at schedule.Period) (*models.Salary, error) {
	if !at.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	salary := &models.Salary{
		UserID:        userID,
		HouseholdID:   member.HouseholdID,
		CurrentAmount: amount,
		Year:          at.Year,
		Month:         at.Month,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_amount", "updated_at"}),
	}).Create(salary).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(member.HouseholdID)
	return salary, nil
}

// EffectiveSalary returns the most recent salary at or before the period,
// or zero when the user has never recorded one.
func (s *salaryService) EffectiveSalary(userID uint, at schedule.Period) (int64, error) {
	var salary models.Salary
	err := s.db.
		Where("user_id = ? AND (year < ? OR (year = ? AND month <= ?))", userID, at.Year, at.Year, at.Month).
		Order("year DESC, month DESC").
		First(&salary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return salary.CurrentAmount, nil
}

// GetUserSalaries returns the caller's salary history, newest first.
func (s *salaryService) GetUserSalaries(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Salary], error) {
	page.Defaults()

	base := s.db.Model(&models.Salary{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var salaries []models.Salary
	if err := base.Scopes(pagination.Paginate(page)).
		Order("year DESC, month DESC").
		Find(&salaries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(salaries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
