package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/schedule"
)

// savingService handles savings contributions.
type savingService struct {
	db          *gorm.DB
	households  HouseholdServicer
	invalidator CacheInvalidator
}

// NewSavingService creates a new SavingServicer.
func NewSavingService(db *gorm.DB, households HouseholdServicer, invalidator CacheInvalidator) SavingServicer {
	return &savingService{db: db, households: households, invalidator: invalidator}
}

// CreateSaving records a savings contribution for a period.
func (s *savingService) CreateSaving(userID uint, name string, savingType models.SavingType, amount int64, at schedule.Period) (*models.Saving, error) {
	if !at.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	saving := &models.Saving{
		UserID:      userID,
		HouseholdID: member.HouseholdID,
		Name:        name,
		Type:        savingType,
		Amount:      amount,
		Year:        at.Year,
		Month:       at.Month,
	}
	if err := s.db.Create(saving).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(member.HouseholdID)
	return saving, nil
}

// GetHouseholdSavings returns the household's savings for a period.
func (s *savingService) GetHouseholdSavings(userID uint, at schedule.Period) ([]models.Saving, error) {
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	var savings []models.Saving
	err = s.db.Where("household_id = ? AND year = ? AND month = ?", member.HouseholdID, at.Year, at.Month).
		Order("id ASC").Find(&savings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return savings, nil
}

// DeleteSaving removes a savings contribution owned by the caller.
func (s *savingService) DeleteSaving(userID, savingID uint) error {
	var saving models.Saving
	if err := s.db.Where("id = ? AND user_id = ?", savingID, userID).First(&saving).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSavingNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&saving).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(saving.HouseholdID)
	return nil
}
