package services

import (
	"testing"

	"splitnest/internal/models"
	"splitnest/internal/schedule"
	"splitnest/internal/testutil"

	"gorm.io/gorm"
)

func setupOverrideTest(t *testing.T) (*gorm.DB, OverrideServicer, uint, *models.Expense) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	households := NewHouseholdService(db)
	expenses := NewExpenseService(db, households, nopInvalidator{})
	svc := NewOverrideService(db, expenses, nopInvalidator{})

	user := testutil.CreateTestUser(t, db)
	household := testutil.CreateTestHousehold(t, db, user.ID)
	expense := testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 50000)

	return db, svc, user.ID, expense
}

func countOverrides(t *testing.T, db *gorm.DB, expenseID uint) int64 {
	t.Helper()
	var count int64
	db.Model(&models.RecurringOverride{}).Where("expense_id = ?", expenseID).Count(&count)
	return count
}

func TestUpsertOverride(t *testing.T) {
	now := schedule.Period{Year: 2025, Month: 6}

	t.Run("single_period", func(t *testing.T) {
		db, svc, userID, expense := setupOverrideTest(t)

		at := schedule.Period{Year: 2025, Month: 8}
		err := svc.UpsertOverride(userID, expense.ID, at, 42000, false, false, now)
		testutil.AssertNoError(t, err)

		overrides, err := svc.GetOverrides(expense.ID)
		testutil.AssertNoError(t, err)
		o := overrides[schedule.PeriodKey{Year: 2025, Month: 8}]
		if o == nil {
			t.Fatal("expected an override for August 2025")
		}
		if o.Amount != 42000 || o.Skipped {
			t.Errorf("expected (42000, not skipped), got (%d, %v)", o.Amount, o.Skipped)
		}
		if got := countOverrides(t, db, expense.ID); got != 1 {
			t.Errorf("expected 1 row, got %d", got)
		}
	})

	t.Run("replaces_existing_row", func(t *testing.T) {
		db, svc, userID, expense := setupOverrideTest(t)

		at := schedule.Period{Year: 2025, Month: 8}
		testutil.AssertNoError(t, svc.UpsertOverride(userID, expense.ID, at, 42000, false, false, now))
		testutil.AssertNoError(t, svc.UpsertOverride(userID, expense.ID, at, 39000, false, false, now))

		if got := countOverrides(t, db, expense.ID); got != 1 {
			t.Fatalf("expected 1 row after re-upsert, got %d", got)
		}
		overrides, err := svc.GetOverrides(expense.ID)
		testutil.AssertNoError(t, err)
		if o := overrides[schedule.PeriodKey{Year: 2025, Month: 8}]; o.Amount != 39000 {
			t.Errorf("expected replaced amount 39000, got %d", o.Amount)
		}
	})

	t.Run("apply_to_upcoming_writes_through_window_end", func(t *testing.T) {
		db, svc, userID, expense := setupOverrideTest(t)

		// From August 2025 through June 2026 (window end): 11 monthly rows.
		at := schedule.Period{Year: 2025, Month: 8}
		err := svc.UpsertOverride(userID, expense.ID, at, 42000, false, true, now)
		testutil.AssertNoError(t, err)

		if got := countOverrides(t, db, expense.ID); got != 11 {
			t.Errorf("expected 11 rows, got %d", got)
		}

		overrides, err := svc.GetOverrides(expense.ID)
		testutil.AssertNoError(t, err)
		if _, exists := overrides[schedule.PeriodKey{Year: 2025, Month: 7}]; exists {
			t.Error("expected no override before the starting period")
		}
		if _, exists := overrides[schedule.PeriodKey{Year: 2026, Month: 6}]; !exists {
			t.Error("expected an override at the window end")
		}
		if _, exists := overrides[schedule.PeriodKey{Year: 2026, Month: 7}]; exists {
			t.Error("expected no override past the window end")
		}
	})

	t.Run("upcoming_respects_plan_occurrences", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		expenses := NewExpenseService(db, households, nopInvalidator{})
		svc := NewOverrideService(db, expenses, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		// Quarterly installments anchored in January: Jan, Apr, Jul, Oct.
		expense := testutil.CreateYearlyInstallmentsExpense(t, db, household.ID, user.ID, 120000, models.InstallmentFrequencyQuarterly, 1)

		at := schedule.Period{Year: 2025, Month: 7}
		err := svc.UpsertOverride(user.ID, expense.ID, at, 20000, false, true, now)
		testutil.AssertNoError(t, err)

		// July 2025, October 2025, January 2026, April 2026 fall in the window.
		if got := countOverrides(t, db, expense.ID); got != 4 {
			t.Errorf("expected 4 rows, got %d", got)
		}
	})

	t.Run("past_period_rejected", func(t *testing.T) {
		_, svc, userID, expense := setupOverrideTest(t)

		at := schedule.Period{Year: 2025, Month: 5}
		err := svc.UpsertOverride(userID, expense.ID, at, 42000, false, false, now)
		testutil.AssertAppError(t, err, "PAST_PERIOD_IMMUTABLE")
	})

	t.Run("non_occurring_period_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		expenses := NewExpenseService(db, households, nopInvalidator{})
		svc := NewOverrideService(db, expenses, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		expense := testutil.CreateYearlyFullExpense(t, db, household.ID, user.ID, 120000, 6)

		at := schedule.Period{Year: 2025, Month: 7}
		err := svc.UpsertOverride(user.ID, expense.ID, at, 42000, false, false, now)
		testutil.AssertAppError(t, err, "PERIOD_NOT_APPLICABLE")
	})

	t.Run("fixed_schedule_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		expenses := NewExpenseService(db, households, nopInvalidator{})
		svc := NewOverrideService(db, expenses, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		expense := testutil.CreateOneTimeInstallmentsExpense(t, db, household.ID, user.ID, 100000, 2025, 7, 12, models.InstallmentFrequencyMonthly)

		at := schedule.Period{Year: 2025, Month: 8}
		err := svc.UpsertOverride(user.ID, expense.ID, at, 42000, false, false, now)
		testutil.AssertAppError(t, err, "SCHEDULE_FIXED")
	})
}

func TestDeleteOverride(t *testing.T) {
	now := schedule.Period{Year: 2025, Month: 6}

	t.Run("single_period", func(t *testing.T) {
		db, svc, userID, expense := setupOverrideTest(t)

		at := schedule.Period{Year: 2025, Month: 8}
		testutil.AssertNoError(t, svc.UpsertOverride(userID, expense.ID, at, 42000, false, false, now))
		testutil.AssertNoError(t, svc.DeleteOverride(userID, expense.ID, at, false, now))

		if got := countOverrides(t, db, expense.ID); got != 0 {
			t.Errorf("expected 0 rows, got %d", got)
		}
	})

	t.Run("missing_single_is_not_found", func(t *testing.T) {
		_, svc, userID, expense := setupOverrideTest(t)

		at := schedule.Period{Year: 2025, Month: 8}
		err := svc.DeleteOverride(userID, expense.ID, at, false, now)
		testutil.AssertAppError(t, err, "OVERRIDE_NOT_FOUND")
	})

	t.Run("upcoming_preserves_earlier_overrides", func(t *testing.T) {
		db, svc, userID, expense := setupOverrideTest(t)

		testutil.AssertNoError(t, svc.UpsertOverride(userID, expense.ID, schedule.Period{Year: 2025, Month: 7}, 41000, false, false, now))
		testutil.AssertNoError(t, svc.UpsertOverride(userID, expense.ID, schedule.Period{Year: 2025, Month: 9}, 42000, false, false, now))
		testutil.AssertNoError(t, svc.UpsertOverride(userID, expense.ID, schedule.Period{Year: 2026, Month: 1}, 43000, false, false, now))

		err := svc.DeleteOverride(userID, expense.ID, schedule.Period{Year: 2025, Month: 9}, true, now)
		testutil.AssertNoError(t, err)

		overrides, err := svc.GetOverrides(expense.ID)
		testutil.AssertNoError(t, err)
		if _, exists := overrides[schedule.PeriodKey{Year: 2025, Month: 7}]; !exists {
			t.Error("expected the July override to survive")
		}
		if _, exists := overrides[schedule.PeriodKey{Year: 2025, Month: 9}]; exists {
			t.Error("expected the September override to be deleted")
		}
		if _, exists := overrides[schedule.PeriodKey{Year: 2026, Month: 1}]; exists {
			t.Error("expected the January override to be deleted")
		}
		if got := countOverrides(t, db, expense.ID); got != 1 {
			t.Errorf("expected 1 surviving row, got %d", got)
		}
	})

	t.Run("upcoming_delete_is_idempotent", func(t *testing.T) {
		_, svc, userID, expense := setupOverrideTest(t)

		at := schedule.Period{Year: 2025, Month: 9}
		testutil.AssertNoError(t, svc.DeleteOverride(userID, expense.ID, at, true, now))
		testutil.AssertNoError(t, svc.DeleteOverride(userID, expense.ID, at, true, now))
	})
}
