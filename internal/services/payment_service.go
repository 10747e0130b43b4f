package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/schedule"
)

// paymentService tracks per-(expense, period) payment status and skips.
// Skips are not a separate state machine: a skip is an override with
// skipped=true whose amount preserves the would-have-been resolved amount.
type paymentService struct {
	db          *gorm.DB
	expenses    ExpenseServicer
	overrides   OverrideServicer
	households  HouseholdServicer
	invalidator CacheInvalidator
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB, expenses ExpenseServicer, overrides OverrideServicer, households HouseholdServicer, invalidator CacheInvalidator) PaymentServicer {
	return &paymentService{
		db:          db,
		expenses:    expenses,
		overrides:   overrides,
		households:  households,
		invalidator: invalidator,
	}
}

// MarkPaid records that the expense occurrence was paid. Re-marking an
// already paid occurrence is a no-op that returns the existing record.
func (s *paymentService) MarkPaid(userID, expenseID uint, at schedule.Period) (*models.ExpensePaymentStatus, error) {
	if !at.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12")
	}
	expense, err := s.expenses.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	var status models.ExpensePaymentStatus
	err = s.db.Where("expense_id = ? AND year = ? AND month = ?", expenseID, at.Year, at.Month).
		First(&status).Error
	switch {
	case err == nil:
		if status.Status == models.PaymentStatePaid {
			return &status, nil
		}
		now := time.Now()
		status.Status = models.PaymentStatePaid
		status.PaidByID = &userID
		status.PaidAt = &now
		if err := s.db.Save(&status).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		status = models.ExpensePaymentStatus{
			ExpenseID: expenseID,
			Year:      at.Year,
			Month:     at.Month,
			Status:    models.PaymentStatePaid,
			PaidByID:  &userID,
			PaidAt:    &now,
		}
		if err := s.db.Create(&status).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(expense.HouseholdID)
	return &status, nil
}

// UndoPaid returns the occurrence to PENDING. The status row is kept,
// never deleted, so the occurrence stays auditable.
func (s *paymentService) UndoPaid(userID, expenseID uint, at schedule.Period) (*models.ExpensePaymentStatus, error) {
	expense, err := s.expenses.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	var status models.ExpensePaymentStatus
	err = s.db.Where("expense_id = ? AND year = ? AND month = ?", expenseID, at.Year, at.Month).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absence already means PENDING; undoing is a no-op.
			return &models.ExpensePaymentStatus{
				ExpenseID: expenseID,
				Year:      at.Year,
				Month:     at.Month,
				Status:    models.PaymentStatePending,
			}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if status.Status == models.PaymentStatePending {
		return &status, nil
	}
	status.Status = models.PaymentStatePending
	status.PaidByID = nil
	status.PaidAt = nil
	if err := s.db.Save(&status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(expense.HouseholdID)
	return &status, nil
}

// GetBatchStatuses loads the payment status of every household expense
// touched in the period in one query, keyed by expense ID. Expenses with
// no row are PENDING and absent from the map.
func (s *paymentService) GetBatchStatuses(userID uint, at schedule.Period) (map[uint]models.PaymentState, error) {
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	var rows []models.ExpensePaymentStatus
	err = s.db.
		Joins("JOIN expenses ON expenses.id = expense_payment_statuses.expense_id").
		Where("expenses.household_id = ? AND expense_payment_statuses.year = ? AND expense_payment_statuses.month = ?",
			member.HouseholdID, at.Year, at.Month).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	statuses := make(map[uint]models.PaymentState, len(rows))
	for _, row := range rows {
		statuses[row.ExpenseID] = row.Status
	}
	return statuses, nil
}

// Skip zeroes the occurrence by writing a skip override whose amount is
// the current resolved amount, preserving it for display.
func (s *paymentService) Skip(userID, expenseID uint, at schedule.Period, applyToUpcoming bool) error {
	expense, err := s.expenses.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}
	plan, err := schedule.PlanOf(expense)
	if err != nil {
		return err
	}

	nominal, ok := schedule.Resolve(plan, at)
	if !ok {
		return apperrors.ErrPeriodNotApplicable
	}

	overrides, err := s.overrides.GetOverrides(expenseID)
	if err != nil {
		return err
	}
	resolved, _ := schedule.ApplyOverride(nominal, overrides[schedule.PeriodKey{Year: at.Year, Month: at.Month}])

	return s.overrides.UpsertOverride(userID, expenseID, at, resolved, true, applyToUpcoming, schedule.PeriodOf(time.Now()))
}

// Unskip removes the skip override for the period, or for all upcoming
// periods. The single-vs-upcoming decision belongs to the caller.
func (s *paymentService) Unskip(userID, expenseID uint, at schedule.Period, deleteUpcoming bool) error {
	return s.overrides.DeleteOverride(userID, expenseID, at, deleteUpcoming, schedule.PeriodOf(time.Now()))
}
