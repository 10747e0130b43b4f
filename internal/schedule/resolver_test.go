package schedule

import (
	"testing"

	"splitnest/internal/models"
)

func TestResolveMonthly(t *testing.T) {
	plan := Monthly{Amount: 50000}

	for month := 1; month <= 12; month++ {
		amount, ok := Resolve(plan, Period{Year: 2025, Month: month})
		if !ok {
			t.Fatalf("expected monthly plan to occur in month %d", month)
		}
		if amount != 50000 {
			t.Errorf("month %d: expected 50000, got %d", month, amount)
		}
	}
}

func TestResolveYearlyFull(t *testing.T) {
	plan := YearlyFull{Amount: 120000, PaymentMonth: 6}

	t.Run("occurs_in_payment_month", func(t *testing.T) {
		amount, ok := Resolve(plan, Period{Year: 2025, Month: 6})
		if !ok {
			t.Fatal("expected occurrence in June")
		}
		if amount != 120000 {
			t.Errorf("expected 120000, got %d", amount)
		}
	})

	t.Run("no_occurrence_elsewhere", func(t *testing.T) {
		for month := 1; month <= 12; month++ {
			if month == 6 {
				continue
			}
			if _, ok := Resolve(plan, Period{Year: 2025, Month: month}); ok {
				t.Errorf("expected no occurrence in month %d", month)
			}
		}
	})

	t.Run("repeats_every_year", func(t *testing.T) {
		if _, ok := Resolve(plan, Period{Year: 2030, Month: 6}); !ok {
			t.Error("expected occurrence in June 2030")
		}
	})
}

func TestResolveYearlyInstallments(t *testing.T) {
	// 1200.00 a year, quarterly, anchored in January: 300.00 in Jan, Apr, Jul, Oct.
	plan := YearlyInstallments{Amount: 120000, AnchorMonth: 1, Step: 3, Count: 4}

	t.Run("installment_months", func(t *testing.T) {
		for _, month := range []int{1, 4, 7, 10} {
			amount, ok := Resolve(plan, Period{Year: 2025, Month: month})
			if !ok {
				t.Fatalf("expected occurrence in month %d", month)
			}
			if amount != 30000 {
				t.Errorf("month %d: expected 30000, got %d", month, amount)
			}
		}
	})

	t.Run("off_months", func(t *testing.T) {
		for _, month := range []int{2, 3, 5, 6, 8, 9, 11, 12} {
			if _, ok := Resolve(plan, Period{Year: 2025, Month: month}); ok {
				t.Errorf("expected no occurrence in month %d", month)
			}
		}
	})

	t.Run("cycle_wraps_around_anchor", func(t *testing.T) {
		// Anchored in November with quarterly spacing: Nov, Feb, May, Aug.
		wrapped := YearlyInstallments{Amount: 120000, AnchorMonth: 11, Step: 3, Count: 4}
		for _, month := range []int{11, 2, 5, 8} {
			if _, ok := Resolve(wrapped, Period{Year: 2025, Month: month}); !ok {
				t.Errorf("expected occurrence in month %d", month)
			}
		}
		if _, ok := Resolve(wrapped, Period{Year: 2025, Month: 12}); ok {
			t.Error("expected no occurrence in December")
		}
	})
}

func TestResolveOneTimeFull(t *testing.T) {
	plan := OneTimeFull{Amount: 75000, Start: Period{Year: 2025, Month: 3}}

	amount, ok := Resolve(plan, Period{Year: 2025, Month: 3})
	if !ok {
		t.Fatal("expected occurrence in March 2025")
	}
	if amount != 75000 {
		t.Errorf("expected 75000, got %d", amount)
	}

	if _, ok := Resolve(plan, Period{Year: 2025, Month: 4}); ok {
		t.Error("expected no occurrence in April 2025")
	}
	if _, ok := Resolve(plan, Period{Year: 2026, Month: 3}); ok {
		t.Error("expected no occurrence in March 2026")
	}
}

func TestResolveOneTimeInstallments(t *testing.T) {
	// 1000.00 over 12 monthly installments starting March 2025.
	plan := OneTimeInstallments{Amount: 100000, Start: Period{Year: 2025, Month: 3}, Step: 1, Count: 12}

	t.Run("twelve_occurrences_ending_feb_2026", func(t *testing.T) {
		var count int
		at := Period{Year: 2025, Month: 1}
		for i := 0; i < 30; i++ {
			if amount, ok := Resolve(plan, at); ok {
				count++
				if amount != 8333 {
					t.Errorf("%+v: expected 8333, got %d", at, amount)
				}
			}
			at = at.AddMonths(1)
		}
		if count != 12 {
			t.Errorf("expected 12 occurrences, got %d", count)
		}

		if _, ok := Resolve(plan, Period{Year: 2026, Month: 2}); !ok {
			t.Error("expected last occurrence in February 2026")
		}
		if _, ok := Resolve(plan, Period{Year: 2026, Month: 3}); ok {
			t.Error("expected no occurrence in March 2026")
		}
	})

	t.Run("before_start_is_not_applicable", func(t *testing.T) {
		if _, ok := Resolve(plan, Period{Year: 2025, Month: 2}); ok {
			t.Error("expected no occurrence before the start period")
		}
	})

	t.Run("quarterly_spacing", func(t *testing.T) {
		quarterly := OneTimeInstallments{Amount: 100000, Start: Period{Year: 2025, Month: 3}, Step: 3, Count: 4}
		for _, p := range []Period{{2025, 3}, {2025, 6}, {2025, 9}, {2025, 12}} {
			amount, ok := Resolve(quarterly, p)
			if !ok {
				t.Fatalf("expected occurrence in %+v", p)
			}
			if amount != 25000 {
				t.Errorf("%+v: expected 25000, got %d", p, amount)
			}
		}
		if _, ok := Resolve(quarterly, Period{Year: 2025, Month: 4}); ok {
			t.Error("expected no occurrence between installments")
		}
		if _, ok := Resolve(quarterly, Period{Year: 2026, Month: 3}); ok {
			t.Error("expected schedule to end after the last installment")
		}
	})
}

func TestApplyOverride(t *testing.T) {
	t.Run("nil_override_keeps_nominal", func(t *testing.T) {
		amount, skipped := ApplyOverride(50000, nil)
		if amount != 50000 || skipped {
			t.Errorf("expected (50000, false), got (%d, %v)", amount, skipped)
		}
	})

	t.Run("amount_override_replaces_nominal", func(t *testing.T) {
		override := &models.RecurringOverride{Amount: 42000}
		amount, skipped := ApplyOverride(50000, override)
		if amount != 42000 || skipped {
			t.Errorf("expected (42000, false), got (%d, %v)", amount, skipped)
		}
	})

	t.Run("skip_resolves_to_zero", func(t *testing.T) {
		// A skip stores the would-have-been amount but always resolves to zero.
		override := &models.RecurringOverride{Amount: 50000, Skipped: true}
		amount, skipped := ApplyOverride(50000, override)
		if amount != 0 || !skipped {
			t.Errorf("expected (0, true), got (%d, %v)", amount, skipped)
		}
	})
}

func TestPlanOf(t *testing.T) {
	monthly := models.ExpenseFrequencyMonthly
	yearly := models.ExpenseFrequencyYearly
	full := models.PaymentStrategyFull
	installments := models.PaymentStrategyInstallments
	quarterly := models.InstallmentFrequencyQuarterly
	june := 6
	year2025 := 2025
	march := 3

	t.Run("monthly", func(t *testing.T) {
		e := &models.Expense{Amount: 50000, Category: models.ExpenseCategoryRecurring, Frequency: &monthly}
		plan, err := PlanOf(e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := plan.(Monthly); !ok {
			t.Errorf("expected Monthly, got %T", plan)
		}
	})

	t.Run("yearly_full_requires_payment_month", func(t *testing.T) {
		e := &models.Expense{Amount: 120000, Category: models.ExpenseCategoryRecurring, Frequency: &yearly, PaymentStrategy: &full}
		if _, err := PlanOf(e); err == nil {
			t.Error("expected error without payment month")
		}

		e.PaymentMonth = &june
		plan, err := PlanOf(e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		yf, ok := plan.(YearlyFull)
		if !ok {
			t.Fatalf("expected YearlyFull, got %T", plan)
		}
		if yf.PaymentMonth != 6 {
			t.Errorf("expected payment month 6, got %d", yf.PaymentMonth)
		}
	})

	t.Run("yearly_installments_defaults_count_from_frequency", func(t *testing.T) {
		e := &models.Expense{
			Amount:               120000,
			Category:             models.ExpenseCategoryRecurring,
			Frequency:            &yearly,
			PaymentStrategy:      &installments,
			InstallmentFrequency: &quarterly,
			Month:                &march,
		}
		plan, err := PlanOf(e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		yi, ok := plan.(YearlyInstallments)
		if !ok {
			t.Fatalf("expected YearlyInstallments, got %T", plan)
		}
		if yi.Step != 3 || yi.Count != 4 {
			t.Errorf("expected step 3 count 4, got step %d count %d", yi.Step, yi.Count)
		}
	})

	t.Run("one_time_requires_anchor", func(t *testing.T) {
		e := &models.Expense{Amount: 75000, Category: models.ExpenseCategoryOneTime}
		if _, err := PlanOf(e); err == nil {
			t.Error("expected error without anchor period")
		}

		e.Year = &year2025
		e.Month = &march
		plan, err := PlanOf(e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := plan.(OneTimeFull); !ok {
			t.Errorf("expected OneTimeFull, got %T", plan)
		}
	})

	t.Run("recurring_requires_frequency", func(t *testing.T) {
		e := &models.Expense{Amount: 50000, Category: models.ExpenseCategoryRecurring}
		if _, err := PlanOf(e); err == nil {
			t.Error("expected error without frequency")
		}
	})
}

func TestAllowsOverrides(t *testing.T) {
	if AllowsOverrides(OneTimeInstallments{}) {
		t.Error("one-time installment schedules are fixed")
	}
	for _, plan := range []Plan{Monthly{}, YearlyFull{}, YearlyInstallments{}, OneTimeFull{}} {
		if !AllowsOverrides(plan) {
			t.Errorf("expected %T to allow overrides", plan)
		}
	}
}
