package services

import (
	"testing"

	"splitnest/internal/models"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
	"splitnest/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	t.Run("monthly_recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)

		frequency := models.ExpenseFrequencyMonthly
		expense, err := svc.CreateExpense(user.ID, ExpenseInput{
			Name:      "Rent",
			Amount:    150000,
			Type:      models.ExpenseTypeShared,
			Category:  models.ExpenseCategoryRecurring,
			Frequency: &frequency,
		})
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.HouseholdID != household.ID {
			t.Errorf("expected household %d, got %d", household.ID, expense.HouseholdID)
		}
		if expense.CreatedByID != user.ID {
			t.Errorf("expected creator %d, got %d", user.ID, expense.CreatedByID)
		}
	})

	t.Run("rejects_unresolvable_plan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestHousehold(t, db, user.ID)

		// Recurring with no frequency cannot be resolved.
		_, err := svc.CreateExpense(user.ID, ExpenseInput{
			Name:     "Broken",
			Amount:   10000,
			Type:     models.ExpenseTypePersonal,
			Category: models.ExpenseCategoryRecurring,
		})
		testutil.AssertAppError(t, err, "INVALID_EXPENSE_PLAN")
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestHousehold(t, db, user.ID)

		frequency := models.ExpenseFrequencyMonthly
		_, err := svc.CreateExpense(user.ID, ExpenseInput{
			Name:      "Free",
			Amount:    0,
			Type:      models.ExpenseTypePersonal,
			Category:  models.ExpenseCategoryRecurring,
			Frequency: &frequency,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("requires_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)

		frequency := models.ExpenseFrequencyMonthly
		_, err := svc.CreateExpense(user.ID, ExpenseInput{
			Name:      "Rent",
			Amount:    150000,
			Type:      models.ExpenseTypeShared,
			Category:  models.ExpenseCategoryRecurring,
			Frequency: &frequency,
		})
		testutil.AssertAppError(t, err, "NOT_HOUSEHOLD_MEMBER")
	})
}

func TestGetHouseholdExpenses(t *testing.T) {
	t.Run("scoped_to_own_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		stranger := testutil.CreateTestUser(t, db)
		otherHousehold := testutil.CreateTestHousehold(t, db, stranger.ID)

		testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 150000)
		testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypePersonal, 3000)
		testutil.CreateMonthlyExpense(t, db, otherHousehold.ID, stranger.ID, models.ExpenseTypeShared, 99999)

		result, err := svc.GetHouseholdExpenses(user.ID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 expenses, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 150000)
		testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypePersonal, 3000)

		personal := models.ExpenseTypePersonal
		result, err := svc.GetHouseholdExpenses(user.ID, pagination.PageRequest{}, ExpenseFilter{Type: &personal})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Fatalf("expected 1 expense, got %d", result.TotalItems)
		}
		if result.Data[0].Type != models.ExpenseTypePersonal {
			t.Errorf("expected personal expense, got %s", result.Data[0].Type)
		}
	})
}

func TestGetExpenseByID(t *testing.T) {
	t.Run("other_household_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestHousehold(t, db, user.ID)
		stranger := testutil.CreateTestUser(t, db)
		otherHousehold := testutil.CreateTestHousehold(t, db, stranger.ID)
		foreign := testutil.CreateMonthlyExpense(t, db, otherHousehold.ID, stranger.ID, models.ExpenseTypeShared, 99999)

		_, err := svc.GetExpenseByID(user.ID, foreign.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("revalidates_plan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		expense := testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 150000)

		// Switching to yearly full without a payment month is rejected.
		yearly := models.ExpenseFrequencyYearly
		full := models.PaymentStrategyFull
		_, err := svc.UpdateExpense(user.ID, expense.ID, ExpenseInput{
			Name:            expense.Name,
			Amount:          expense.Amount,
			Type:            expense.Type,
			Category:        expense.Category,
			Frequency:       &yearly,
			PaymentStrategy: &full,
		})
		testutil.AssertAppError(t, err, "INVALID_EXPENSE_PLAN")
	})

	t.Run("updates_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		expense := testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 150000)

		frequency := models.ExpenseFrequencyMonthly
		updated, err := svc.UpdateExpense(user.ID, expense.ID, ExpenseInput{
			Name:      "Rent raised",
			Amount:    160000,
			Type:      expense.Type,
			Category:  expense.Category,
			Frequency: &frequency,
		})
		testutil.AssertNoError(t, err)
		if updated.Amount != 160000 {
			t.Errorf("expected 160000, got %d", updated.Amount)
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("cascades_overrides_and_statuses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		expense := testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 150000)

		db.Create(&models.RecurringOverride{ExpenseID: expense.ID, Year: 2025, Month: 7, Amount: 140000})
		db.Create(&models.ExpensePaymentStatus{ExpenseID: expense.ID, Year: 2025, Month: 6, Status: models.PaymentStatePaid})

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))

		_, err := svc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

		var overrideCount, statusCount int64
		db.Model(&models.RecurringOverride{}).Where("expense_id = ?", expense.ID).Count(&overrideCount)
		db.Model(&models.ExpensePaymentStatus{}).Where("expense_id = ?", expense.ID).Count(&statusCount)
		if overrideCount != 0 || statusCount != 0 {
			t.Errorf("expected cascaded delete, got %d overrides and %d statuses", overrideCount, statusCount)
		}
	})
}

func TestGetTimelineIntegration(t *testing.T) {
	t.Run("folds_overrides_and_payments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewExpenseService(db, households, nopInvalidator{})

		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)
		expense := testutil.CreateMonthlyExpense(t, db, household.ID, user.ID, models.ExpenseTypeShared, 50000)

		db.Create(&models.RecurringOverride{ExpenseID: expense.ID, Year: 2025, Month: 8, Amount: 42000})
		db.Create(&models.ExpensePaymentStatus{ExpenseID: expense.ID, Year: 2025, Month: 5, Status: models.PaymentStatePaid})

		now := schedule.Period{Year: 2025, Month: 6}
		entries, err := svc.GetTimeline(user.ID, expense.ID, now)
		testutil.AssertNoError(t, err)
		if len(entries) != 25 {
			t.Fatalf("expected 25 entries, got %d", len(entries))
		}

		for _, e := range entries {
			switch {
			case e.Year == 2025 && e.Month == 8:
				if e.Amount != 42000 || !e.IsOverride {
					t.Errorf("August: expected overridden 42000, got %+v", e)
				}
			case e.Year == 2025 && e.Month == 5:
				if e.Status != models.PaymentStatePaid {
					t.Errorf("May: expected PAID, got %s", e.Status)
				}
			}
		}
	})
}
