package services

import (
	"testing"

	"splitnest/internal/models"
	"splitnest/internal/pagination"
	"splitnest/internal/schedule"
	"splitnest/internal/testutil"
)

func TestSetSalary(t *testing.T) {
	t.Run("creates_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewSalaryService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestHousehold(t, db, user.ID)

		salary, err := svc.SetSalary(user.ID, 300000, schedule.Period{Year: 2025, Month: 1})
		testutil.AssertNoError(t, err)
		if salary.CurrentAmount != 300000 {
			t.Errorf("expected 300000, got %d", salary.CurrentAmount)
		}
	})

	t.Run("upserts_same_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewSalaryService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestHousehold(t, db, user.ID)

		at := schedule.Period{Year: 2025, Month: 1}
		_, err := svc.SetSalary(user.ID, 300000, at)
		testutil.AssertNoError(t, err)
		_, err = svc.SetSalary(user.ID, 320000, at)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Salary{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Fatalf("expected 1 row, got %d", count)
		}

		effective, err := svc.EffectiveSalary(user.ID, at)
		testutil.AssertNoError(t, err)
		if effective != 320000 {
			t.Errorf("expected 320000, got %d", effective)
		}
	})

	t.Run("requires_household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewSalaryService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetSalary(user.ID, 300000, schedule.Period{Year: 2025, Month: 1})
		testutil.AssertAppError(t, err, "NOT_HOUSEHOLD_MEMBER")
	})
}

func TestEffectiveSalary(t *testing.T) {
	t.Run("carries_forward_most_recent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewSalaryService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)

		testutil.CreateTestSalary(t, db, user.ID, household.ID, 300000, 2025, 1)
		testutil.CreateTestSalary(t, db, user.ID, household.ID, 350000, 2025, 6)

		cases := []struct {
			at   schedule.Period
			want int64
		}{
			{schedule.Period{Year: 2024, Month: 12}, 0},
			{schedule.Period{Year: 2025, Month: 1}, 300000},
			{schedule.Period{Year: 2025, Month: 5}, 300000},
			{schedule.Period{Year: 2025, Month: 6}, 350000},
			{schedule.Period{Year: 2026, Month: 3}, 350000},
		}
		for _, tc := range cases {
			got, err := svc.EffectiveSalary(user.ID, tc.at)
			testutil.AssertNoError(t, err)
			if got != tc.want {
				t.Errorf("%d-%02d: expected %d, got %d", tc.at.Year, tc.at.Month, tc.want, got)
			}
		}
	})

	t.Run("zero_without_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewSalaryService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)

		got, err := svc.EffectiveSalary(user.ID, schedule.Period{Year: 2025, Month: 6})
		testutil.AssertNoError(t, err)
		if got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestGetUserSalaries(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		households := NewHouseholdService(db)
		svc := NewSalaryService(db, households, nopInvalidator{})
		user := testutil.CreateTestUser(t, db)
		household := testutil.CreateTestHousehold(t, db, user.ID)

		testutil.CreateTestSalary(t, db, user.ID, household.ID, 300000, 2025, 1)
		testutil.CreateTestSalary(t, db, user.ID, household.ID, 350000, 2025, 6)

		result, err := svc.GetUserSalaries(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Fatalf("expected 2 salaries, got %d", result.TotalItems)
		}
		if result.Data[0].CurrentAmount != 350000 {
			t.Errorf("expected newest salary first, got %d", result.Data[0].CurrentAmount)
		}
	})
}
