package services

import (
	"context"

	"splitnest/internal/models"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// HouseholdServicer defines the contract for household membership logic.
type HouseholdServicer interface {
	CreateHousehold(userID uint, name string) (*models.Household, error)
	JoinHousehold(userID uint, inviteCode string) (*models.Household, error)
	GetUserHousehold(userID uint) (*models.Household, error)
	GetMembers(householdID uint) ([]models.HouseholdMember, error)
	RequireMembership(userID uint) (*models.HouseholdMember, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Type     *models.ExpenseType
	Category *models.ExpenseCategory
}

// ExpenseInput carries the fields for creating or updating an expense.
type ExpenseInput struct {
	Name                 string
	Amount               int64
	Type                 models.ExpenseType
	Category             models.ExpenseCategory
	Frequency            *models.ExpenseFrequency
	PaymentStrategy      *models.PaymentStrategy
	InstallmentFrequency *models.InstallmentFrequency
	InstallmentCount     *int
	PaymentMonth         *int
	Month                *int
	Year                 *int
	PaidByUserID         *uint
}

// ExpenseServicer defines the contract for expense CRUD and timelines.
type ExpenseServicer interface {
	CreateExpense(userID uint, in ExpenseInput) (*models.Expense, error)
	GetHouseholdExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetTimeline(userID, expenseID uint, now schedule.Period) ([]schedule.Entry, error)
}

// OverrideServicer defines the contract for per-period amount overrides.
type OverrideServicer interface {
	// UpsertOverride writes an override for a single period, or for every
	// applicable period from it through the end of the timeline window
	// when applyToUpcoming is set. Existing overrides for those periods
	// are replaced.
	UpsertOverride(userID, expenseID uint, at schedule.Period, amount int64, skipped, applyToUpcoming bool, now schedule.Period) error
	// DeleteOverride removes the override at a single period, or every
	// override at or after it when deleteUpcoming is set.
	DeleteOverride(userID, expenseID uint, at schedule.Period, deleteUpcoming bool, now schedule.Period) error
	GetOverrides(expenseID uint) (map[schedule.PeriodKey]*models.RecurringOverride, error)
}

// PaymentServicer defines the contract for payment and skip state.
type PaymentServicer interface {
	MarkPaid(userID, expenseID uint, at schedule.Period) (*models.ExpensePaymentStatus, error)
	UndoPaid(userID, expenseID uint, at schedule.Period) (*models.ExpensePaymentStatus, error)
	// GetBatchStatuses returns the payment status of every household
	// expense touched in the period, keyed by expense ID. Absent entries
	// mean PENDING.
	GetBatchStatuses(userID uint, at schedule.Period) (map[uint]models.PaymentState, error)
	Skip(userID, expenseID uint, at schedule.Period, applyToUpcoming bool) error
	Unskip(userID, expenseID uint, at schedule.Period, deleteUpcoming bool) error
}

// SalaryServicer defines the contract for salary records.
type SalaryServicer interface {
	SetSalary(userID uint, amount int64, at schedule.Period) (*models.Salary, error)
	// EffectiveSalary returns the most recent salary at or before the
	// period, or zero when none exists.
	EffectiveSalary(userID uint, at schedule.Period) (int64, error)
	GetUserSalaries(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Salary], error)
}

// SavingServicer defines the contract for savings contributions.
type SavingServicer interface {
	CreateSaving(userID uint, name string, savingType models.SavingType, amount int64, at schedule.Period) (*models.Saving, error)
	GetHouseholdSavings(userID uint, at schedule.Period) ([]models.Saving, error)
	DeleteSaving(userID, savingID uint) error
}

// MemberIncome is one member's income for a period.
type MemberIncome struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// MemberExpense is one member's personal expense total for a period.
type MemberExpense struct {
	UserID uint  `json:"user_id"`
	Amount int64 `json:"amount"`
}

// MemberSavings is one member's savings breakdown for a period.
type MemberSavings struct {
	UserID   uint  `json:"user_id"`
	Personal int64 `json:"personal"`
	Shared   int64 `json:"shared"`
}

// SettlementInstruction is the single transfer that balances the period.
type SettlementInstruction struct {
	OwedByUserID uint  `json:"owed_by_user_id"`
	OwedToUserID uint  `json:"owed_to_user_id"`
	Amount       int64 `json:"amount"`
}

// Overview aggregates a household's income, expenses, savings and
// settlement state for a period.
type Overview struct {
	Year             int                    `json:"year"`
	Month            int                    `json:"month"`
	Income           []MemberIncome         `json:"income"`
	PersonalExpenses []MemberExpense        `json:"personal_expenses"`
	SharedTotal      int64                  `json:"shared_total"`
	ExpenseTotal     int64                  `json:"expense_total"`
	FairShare        int64                  `json:"fair_share"`
	Savings          []MemberSavings        `json:"savings"`
	SavingsTotal     int64                  `json:"savings_total"`
	RemainingBudget  []MemberExpense        `json:"remaining_budget"`
	Settlement       *SettlementInstruction `json:"settlement,omitempty"`
	IsSettled        bool                   `json:"is_settled"`
}

// ViewMode selects the dashboard aggregation window.
type ViewMode string

const (
	ViewModeMonthly ViewMode = "monthly"
	ViewModeYearly  ViewMode = "yearly"
)

// DashboardServicer defines the contract for the settlement and dashboard
// aggregator.
type DashboardServicer interface {
	ComputeOverview(ctx context.Context, userID uint, at schedule.Period, mode ViewMode) (*Overview, error)
	MarkSettlementPaid(userID uint, at schedule.Period) (*models.Settlement, error)
}

// CacheInvalidator invalidates a household's cached dashboard results.
// Any mutation that can change a household's totals must invalidate the
// whole household, not just the touched expense, because aggregates span
// all expenses.
type CacheInvalidator interface {
	InvalidateHousehold(householdID uint)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
