package schedule

import (
	"splitnest/internal/models"

	apperrors "splitnest/internal/errors"
)

// Plan is the payment-plan variant of an expense. Exactly one variant
// applies per expense; the variant determines in which periods the expense
// occurs and what each occurrence costs. Modeling the combinations as a
// tagged union lets Resolve be an exhaustive type switch instead of nested
// conditionals over sparse optional fields.
type Plan interface {
	isPlan()
}

// Monthly occurs every month at the full amount.
type Monthly struct {
	Amount int64
}

// YearlyFull occurs once a year, in PaymentMonth, at the full amount.
type YearlyFull struct {
	Amount       int64
	PaymentMonth int // 1-12
}

// YearlyInstallments splits the yearly amount into Count installments
// spaced Step months apart, anchored at AnchorMonth, repeating every year.
type YearlyInstallments struct {
	Amount      int64
	AnchorMonth int // 1-12
	Step        int // months between installments
	Count       int
}

// OneTimeFull occurs exactly once, at Start, at the full amount.
type OneTimeFull struct {
	Amount int64
	Start  Period
}

// OneTimeInstallments occurs in exactly Count periods starting at Start,
// spaced Step months apart. The schedule is fixed and never repeats.
type OneTimeInstallments struct {
	Amount int64
	Start  Period
	Step   int
	Count  int
}

func (Monthly) isPlan()             {}
func (YearlyFull) isPlan()          {}
func (YearlyInstallments) isPlan()  {}
func (OneTimeFull) isPlan()         {}
func (OneTimeInstallments) isPlan() {}

// InstallmentStep returns the number of months between installments.
func InstallmentStep(f models.InstallmentFrequency) int {
	switch f {
	case models.InstallmentFrequencyQuarterly:
		return 3
	case models.InstallmentFrequencySemiAnnual:
		return 6
	default:
		return 1
	}
}

// DefaultInstallmentCount returns the number of installments per year for
// the given spacing.
func DefaultInstallmentCount(f models.InstallmentFrequency) int {
	switch f {
	case models.InstallmentFrequencyQuarterly:
		return 4
	case models.InstallmentFrequencySemiAnnual:
		return 2
	default:
		return 12
	}
}

// PlanOf maps a stored expense onto its payment-plan variant. Expenses are
// validated at the API boundary; PlanOf still rejects combinations that
// cannot be resolved so the engine never operates on an ambiguous record.
func PlanOf(e *models.Expense) (Plan, error) {
	switch e.Category {
	case models.ExpenseCategoryRecurring:
		if e.Frequency == nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "recurring expense requires a frequency")
		}
		switch *e.Frequency {
		case models.ExpenseFrequencyMonthly:
			return Monthly{Amount: e.Amount}, nil
		case models.ExpenseFrequencyYearly:
			strategy := models.PaymentStrategyFull
			if e.PaymentStrategy != nil {
				strategy = *e.PaymentStrategy
			}
			if strategy == models.PaymentStrategyFull {
				if e.PaymentMonth == nil {
					return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "yearly full expense requires a payment month")
				}
				return YearlyFull{Amount: e.Amount, PaymentMonth: *e.PaymentMonth}, nil
			}
			if e.InstallmentFrequency == nil {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "installment plan requires an installment frequency")
			}
			anchor := 0
			switch {
			case e.PaymentMonth != nil:
				anchor = *e.PaymentMonth
			case e.Month != nil:
				anchor = *e.Month
			default:
				return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "yearly installments require an anchor month")
			}
			count := DefaultInstallmentCount(*e.InstallmentFrequency)
			if e.InstallmentCount != nil {
				count = *e.InstallmentCount
			}
			return YearlyInstallments{
				Amount:      e.Amount,
				AnchorMonth: anchor,
				Step:        InstallmentStep(*e.InstallmentFrequency),
				Count:       count,
			}, nil
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "unknown frequency")

	case models.ExpenseCategoryOneTime:
		if e.Month == nil || e.Year == nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "one-time expense requires an anchor month and year")
		}
		start := Period{Year: *e.Year, Month: *e.Month}
		if e.PaymentStrategy != nil && *e.PaymentStrategy == models.PaymentStrategyInstallments {
			if e.InstallmentFrequency == nil {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "installment plan requires an installment frequency")
			}
			count := DefaultInstallmentCount(*e.InstallmentFrequency)
			if e.InstallmentCount != nil {
				count = *e.InstallmentCount
			}
			return OneTimeInstallments{
				Amount: e.Amount,
				Start:  start,
				Step:   InstallmentStep(*e.InstallmentFrequency),
				Count:  count,
			}, nil
		}
		return OneTimeFull{Amount: e.Amount, Start: start}, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidExpensePlan, "unknown category")
}

// AllowsOverrides reports whether per-period override actions are exposed
// for the plan. One-time installment schedules are fixed by construction.
func AllowsOverrides(p Plan) bool {
	_, fixed := p.(OneTimeInstallments)
	return !fixed
}
