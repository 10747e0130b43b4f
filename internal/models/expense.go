package models

// ExpenseType distinguishes personal costs from household-shared costs.
type ExpenseType string

const (
	ExpenseTypePersonal ExpenseType = "PERSONAL"
	ExpenseTypeShared   ExpenseType = "SHARED"
)

// ExpenseCategory distinguishes recurring costs from one-time costs.
type ExpenseCategory string

const (
	ExpenseCategoryRecurring ExpenseCategory = "RECURRING"
	ExpenseCategoryOneTime   ExpenseCategory = "ONE_TIME"
)

// ExpenseFrequency applies to recurring expenses.
type ExpenseFrequency string

const (
	ExpenseFrequencyMonthly ExpenseFrequency = "MONTHLY"
	ExpenseFrequencyYearly  ExpenseFrequency = "YEARLY"
)

// PaymentStrategy applies to yearly recurring and one-time expenses.
type PaymentStrategy string

const (
	PaymentStrategyFull         PaymentStrategy = "FULL"
	PaymentStrategyInstallments PaymentStrategy = "INSTALLMENTS"
)

// InstallmentFrequency is the spacing between installment payments.
type InstallmentFrequency string

const (
	InstallmentFrequencyMonthly    InstallmentFrequency = "MONTHLY"
	InstallmentFrequencyQuarterly  InstallmentFrequency = "QUARTERLY"
	InstallmentFrequencySemiAnnual InstallmentFrequency = "SEMI_ANNUAL"
)

// Expense is one persisted cost definition. Which of the optional fields
// are meaningful depends on the (category, frequency, strategy)
// combination; schedule.PlanOf turns a row into its payment-plan variant.
type Expense struct {
	Base
	HouseholdID uint            `gorm:"not null;index" json:"household_id"`
	Name        string          `gorm:"not null" json:"name"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"` // cents
	Type        ExpenseType     `gorm:"not null" json:"type"`
	Category    ExpenseCategory `gorm:"not null" json:"category"`

	Frequency            *ExpenseFrequency     `json:"frequency,omitempty"`
	PaymentStrategy      *PaymentStrategy      `json:"payment_strategy,omitempty"`
	InstallmentFrequency *InstallmentFrequency `json:"installment_frequency,omitempty"`
	InstallmentCount     *int                  `json:"installment_count,omitempty"`
	PaymentMonth         *int                  `json:"payment_month,omitempty"` // 1-12, strategy FULL
	Month                *int                  `json:"month,omitempty"`         // anchor period
	Year                 *int                  `json:"year,omitempty"`

	PaidByUserID *uint `json:"paid_by_user_id,omitempty"` // who fronts a shared expense
	CreatedByID  uint  `gorm:"not null" json:"created_by_id"`

	// Relationships
	PaidByUser *User               `gorm:"foreignKey:PaidByUserID" json:"paid_by_user,omitempty"`
	Overrides  []RecurringOverride `gorm:"foreignKey:ExpenseID" json:"overrides,omitempty"`
}
