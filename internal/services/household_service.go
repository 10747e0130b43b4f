package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/uuid"
)

// householdService handles household membership logic.
type householdService struct {
	db *gorm.DB
}

// NewHouseholdService creates a new HouseholdServicer.
func NewHouseholdService(db *gorm.DB) HouseholdServicer {
	return &householdService{db: db}
}

// CreateHousehold creates a household and makes the creator its owner.
// A user can belong to only one household at a time.
func (s *householdService) CreateHousehold(userID uint, name string) (*models.Household, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "household name is required")
	}

	var count int64
	s.db.Model(&models.HouseholdMember{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrAlreadyInHousehold
	}

	household := &models.Household{
		Name:       name,
		InviteCode: uuid.NewInviteCode(),
		CreatedBy:  userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(household).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		member := &models.HouseholdMember{
			HouseholdID: household.ID,
			UserID:      userID,
			Role:        models.HouseholdRoleOwner,
		}
		if err := tx.Create(member).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return household, nil
}

// JoinHousehold adds the user to the household matching the invite code.
func (s *householdService) JoinHousehold(userID uint, inviteCode string) (*models.Household, error) {
	var count int64
	s.db.Model(&models.HouseholdMember{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrAlreadyInHousehold
	}

	var household models.Household
	if err := s.db.Where("invite_code = ?", inviteCode).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidInviteCode
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	member := &models.HouseholdMember{
		HouseholdID: household.ID,
		UserID:      userID,
		Role:        models.HouseholdRoleMember,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// GetUserHousehold returns the household the user belongs to, with members.
func (s *householdService) GetUserHousehold(userID uint) (*models.Household, error) {
	member, err := s.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	var household models.Household
	if err := s.db.Preload("Members.User").First(&household, member.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseholdNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// GetMembers returns the members of a household with their users loaded.
func (s *householdService) GetMembers(householdID uint) ([]models.HouseholdMember, error) {
	var members []models.HouseholdMember
	if err := s.db.Preload("User").Where("household_id = ?", householdID).
		Order("id ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// RequireMembership returns the caller's membership row, or
// ErrNotHouseholdMember when the user has no household.
func (s *householdService) RequireMembership(userID uint) (*models.HouseholdMember, error) {
	var member models.HouseholdMember
	if err := s.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotHouseholdMember
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}
