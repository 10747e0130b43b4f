package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "splitnest/internal/errors"
	"splitnest/internal/models"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
)

// expenseService handles expense CRUD and timeline reads.
type expenseService struct {
	db          *gorm.DB
	households  HouseholdServicer
	invalidator CacheInvalidator
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, households HouseholdServicer, invalidator CacheInvalidator) ExpenseServicer {
	return &expenseService{db: db, households: households, invalidator: invalidator}
}

// CreateExpense creates an expense in the caller's household. The plan
// combination is validated up front so stored rows always resolve.
func (s *expenseService) CreateExpense(userID uint, in ExpenseInput) (*models.Expense, error) {
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	expense := &models.Expense{
		HouseholdID:          member.HouseholdID,
		Name:                 in.Name,
		Amount:               in.Amount,
		Type:                 in.Type,
		Category:             in.Category,
		Frequency:            in.Frequency,
		PaymentStrategy:      in.PaymentStrategy,
		InstallmentFrequency: in.InstallmentFrequency,
		InstallmentCount:     in.InstallmentCount,
		PaymentMonth:         in.PaymentMonth,
		Month:                in.Month,
		Year:                 in.Year,
		PaidByUserID:         in.PaidByUserID,
		CreatedByID:          userID,
	}

	if _, err := schedule.PlanOf(expense); err != nil {
		return nil, err
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(member.HouseholdID)
	return expense, nil
}

// GetHouseholdExpenses returns a paginated list of the household's expenses.
func (s *expenseService) GetHouseholdExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("household_id = ?", member.HouseholdID)
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).Order("id ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense if it belongs to the caller's household.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	member, err := s.households.RequireMembership(userID)
	if err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := s.db.Where("id = ? AND household_id = ?", expenseID, member.HouseholdID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces an expense's definition. The shared-expense
// approval workflow is an external gate; by the time this runs the
// mutation is committed.
func (s *expenseService) UpdateExpense(userID, expenseID uint, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	expense.Name = in.Name
	expense.Amount = in.Amount
	expense.Type = in.Type
	expense.Category = in.Category
	expense.Frequency = in.Frequency
	expense.PaymentStrategy = in.PaymentStrategy
	expense.InstallmentFrequency = in.InstallmentFrequency
	expense.InstallmentCount = in.InstallmentCount
	expense.PaymentMonth = in.PaymentMonth
	expense.Month = in.Month
	expense.Year = in.Year
	expense.PaidByUserID = in.PaidByUserID

	if _, err := schedule.PlanOf(expense); err != nil {
		return nil, err
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidator.InvalidateHousehold(expense.HouseholdID)
	return expense, nil
}

// DeleteExpense soft-deletes an expense and its override and payment rows.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expenseID).Delete(&models.RecurringOverride{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("expense_id = ?", expenseID).Delete(&models.ExpensePaymentStatus{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidator.InvalidateHousehold(expense.HouseholdID)
	return nil
}

// GetTimeline builds the expense's occurrence rows around the given
// reference period, with overrides and payment state folded in.
func (s *expenseService) GetTimeline(userID, expenseID uint, now schedule.Period) ([]schedule.Entry, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	plan, err := schedule.PlanOf(expense)
	if err != nil {
		return nil, err
	}

	var overrideRows []models.RecurringOverride
	if err := s.db.Where("expense_id = ?", expenseID).Find(&overrideRows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	overrides := make(map[schedule.PeriodKey]*models.RecurringOverride, len(overrideRows))
	for i := range overrideRows {
		o := &overrideRows[i]
		overrides[schedule.PeriodKey{Year: o.Year, Month: o.Month}] = o
	}

	var statusRows []models.ExpensePaymentStatus
	if err := s.db.Where("expense_id = ?", expenseID).Find(&statusRows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	statuses := make(map[schedule.PeriodKey]models.PaymentState, len(statusRows))
	for _, row := range statusRows {
		statuses[schedule.PeriodKey{Year: row.Year, Month: row.Month}] = row.Status
	}

	return schedule.BuildTimeline(plan, overrides, statuses, now), nil
}
