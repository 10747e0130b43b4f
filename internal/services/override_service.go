package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/schedule"
)

// overrideService handles per-period amount overrides and skips.
type overrideService struct {
	db          *gorm.DB
	expenses    ExpenseServicer
	invalidator CacheInvalidator
}

// NewOverrideService creates a new OverrideServicer.
func NewOverrideService(db *gorm.DB, expenses ExpenseServicer, invalidator CacheInvalidator) OverrideServicer {
	return &overrideService{db: db, expenses: expenses, invalidator: invalidator}
}

// checkMutable verifies the expense allows override actions at the period:
// the plan must expose overrides, the period must not be in the past, and
// the expense must occur in it.
func (s *overrideService) checkMutable(expense *models.Expense, at, now schedule.Period) (schedule.Plan, error) {
	plan, err := schedule.PlanOf(expense)
	if err != nil {
		return nil, err
	}
	if !schedule.AllowsOverrides(plan) {
		return nil, apperrors.ErrScheduleFixed
	}
	if at.Before(now) {
		return nil, apperrors.ErrPastPeriodImmutable
	}
	if _, ok := schedule.Resolve(plan, at); !ok {
		return nil, apperrors.ErrPeriodNotApplicable
	}
	return plan, nil
}

// UpsertOverride writes an override for one period, or for every
// applicable period from it through the end of the timeline window when
// applyToUpcoming is set. Each period gets one row; existing rows are
// replaced wholesale (last write wins per period).
func (s *overrideService) UpsertOverride(userID, expenseID uint, at schedule.Period, amount int64, skipped, applyToUpcoming bool, now schedule.Period) error {
	if !at.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12")
	}
	expense, err := s.expenses.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}
	plan, err := s.checkMutable(expense, at, now)
	if err != nil {
		return err
	}

	periods := []schedule.Period{at}
	if applyToUpcoming {
		periods = periods[:0]
		end := schedule.WindowEnd(now)
		for p := at; !p.After(end); p = p.AddMonths(1) {
			if _, ok := schedule.Resolve(plan, p); ok {
				periods = append(periods, p)
			}
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range periods {
			row := models.RecurringOverride{
				ExpenseID: expenseID,
				Year:      p.Year,
				Month:     p.Month,
				Amount:    amount,
				Skipped:   skipped,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "expense_id"}, {Name: "year"}, {Name: "month"}},
				DoUpdates: clause.AssignmentColumns([]string{"amount", "skipped", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidator.InvalidateHousehold(expense.HouseholdID)
	return nil
}

// DeleteOverride removes the override at one period, or every override at
// or after it when deleteUpcoming is set. Overrides strictly before the
// period are preserved.
func (s *overrideService) DeleteOverride(userID, expenseID uint, at schedule.Period, deleteUpcoming bool, now schedule.Period) error {
	expense, err := s.expenses.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}
	if _, err := s.checkMutable(expense, at, now); err != nil {
		return err
	}

	if deleteUpcoming {
		err = s.db.Unscoped().
			Where("expense_id = ? AND (year > ? OR (year = ? AND month >= ?))",
				expenseID, at.Year, at.Year, at.Month).
			Delete(&models.RecurringOverride{}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	} else {
		var override models.RecurringOverride
		err = s.db.Where("expense_id = ? AND year = ? AND month = ?", expenseID, at.Year, at.Month).
			First(&override).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrOverrideNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Unscoped().Delete(&override).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s.invalidator.InvalidateHousehold(expense.HouseholdID)
	return nil
}

// GetOverrides loads all overrides for an expense keyed by period.
func (s *overrideService) GetOverrides(expenseID uint) (map[schedule.PeriodKey]*models.RecurringOverride, error) {
	var rows []models.RecurringOverride
	if err := s.db.Where("expense_id = ?", expenseID).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	overrides := make(map[schedule.PeriodKey]*models.RecurringOverride, len(rows))
	for i := range rows {
		o := &rows[i]
		overrides[schedule.PeriodKey{Year: o.Year, Month: o.Month}] = o
	}
	return overrides, nil
}
