package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"splitnest/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestHousehold creates a household with the given user as owner.
func CreateTestHousehold(t *testing.T, db *gorm.DB, ownerID uint) *models.Household {
	t.Helper()

	household := &models.Household{
		Name:       fmt.Sprintf("Test Household %d", nextID()),
		InviteCode: fmt.Sprintf("TEST%04d", nextID()),
		CreatedBy:  ownerID,
	}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}

	member := &models.HouseholdMember{
		HouseholdID: household.ID,
		UserID:      ownerID,
		Role:        models.HouseholdRoleOwner,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test household owner: %v", err)
	}
	return household
}

// AddTestMember adds a user to a household as a regular member.
func AddTestMember(t *testing.T, db *gorm.DB, householdID, userID uint) *models.HouseholdMember {
	t.Helper()

	member := &models.HouseholdMember{
		HouseholdID: householdID,
		UserID:      userID,
		Role:        models.HouseholdRoleMember,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to add test household member: %v", err)
	}
	return member
}

// CreateMonthlyExpense creates a recurring monthly expense (amount in cents).
func CreateMonthlyExpense(t *testing.T, db *gorm.DB, householdID, createdBy uint, expenseType models.ExpenseType, amount int64) *models.Expense {
	t.Helper()

	frequency := models.ExpenseFrequencyMonthly
	expense := &models.Expense{
		HouseholdID: householdID,
		Name:        fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      amount,
		Type:        expenseType,
		Category:    models.ExpenseCategoryRecurring,
		Frequency:   &frequency,
		CreatedByID: createdBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateYearlyFullExpense creates a yearly expense paid in full in paymentMonth.
func CreateYearlyFullExpense(t *testing.T, db *gorm.DB, householdID, createdBy uint, amount int64, paymentMonth int) *models.Expense {
	t.Helper()

	frequency := models.ExpenseFrequencyYearly
	strategy := models.PaymentStrategyFull
	expense := &models.Expense{
		HouseholdID:     householdID,
		Name:            fmt.Sprintf("Test Yearly Expense %d", nextID()),
		Amount:          amount,
		Type:            models.ExpenseTypeShared,
		Category:        models.ExpenseCategoryRecurring,
		Frequency:       &frequency,
		PaymentStrategy: &strategy,
		PaymentMonth:    &paymentMonth,
		CreatedByID:     createdBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test yearly expense: %v", err)
	}
	return expense
}

// CreateYearlyInstallmentsExpense creates a yearly expense paid in installments
// anchored at the given month.
func CreateYearlyInstallmentsExpense(t *testing.T, db *gorm.DB, householdID, createdBy uint, amount int64, installmentFrequency models.InstallmentFrequency, anchorMonth int) *models.Expense {
	t.Helper()

	frequency := models.ExpenseFrequencyYearly
	strategy := models.PaymentStrategyInstallments
	expense := &models.Expense{
		HouseholdID:          householdID,
		Name:                 fmt.Sprintf("Test Yearly Installments %d", nextID()),
		Amount:               amount,
		Type:                 models.ExpenseTypeShared,
		Category:             models.ExpenseCategoryRecurring,
		Frequency:            &frequency,
		PaymentStrategy:      &strategy,
		InstallmentFrequency: &installmentFrequency,
		Month:                &anchorMonth,
		CreatedByID:          createdBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test yearly installments expense: %v", err)
	}
	return expense
}

// CreateOneTimeFullExpense creates a one-time expense due in (year, month).
func CreateOneTimeFullExpense(t *testing.T, db *gorm.DB, householdID, createdBy uint, amount int64, year, month int) *models.Expense {
	t.Helper()

	strategy := models.PaymentStrategyFull
	expense := &models.Expense{
		HouseholdID:     householdID,
		Name:            fmt.Sprintf("Test One-Time Expense %d", nextID()),
		Amount:          amount,
		Type:            models.ExpenseTypeShared,
		Category:        models.ExpenseCategoryOneTime,
		PaymentStrategy: &strategy,
		Year:            &year,
		Month:           &month,
		CreatedByID:     createdBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test one-time expense: %v", err)
	}
	return expense
}

// CreateOneTimeInstallmentsExpense creates a one-time expense spread over
// count installments starting at (year, month).
func CreateOneTimeInstallmentsExpense(t *testing.T, db *gorm.DB, householdID, createdBy uint, amount int64, year, month, count int, installmentFrequency models.InstallmentFrequency) *models.Expense {
	t.Helper()

	strategy := models.PaymentStrategyInstallments
	expense := &models.Expense{
		HouseholdID:          householdID,
		Name:                 fmt.Sprintf("Test Installment Expense %d", nextID()),
		Amount:               amount,
		Type:                 models.ExpenseTypeShared,
		Category:             models.ExpenseCategoryOneTime,
		PaymentStrategy:      &strategy,
		InstallmentFrequency: &installmentFrequency,
		InstallmentCount:     &count,
		Year:                 &year,
		Month:                &month,
		CreatedByID:          createdBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test installment expense: %v", err)
	}
	return expense
}

// CreateTestSalary records a salary for a user effective from (year, month).
func CreateTestSalary(t *testing.T, db *gorm.DB, userID, householdID uint, amount int64, year, month int) *models.Salary {
	t.Helper()

	salary := &models.Salary{
		UserID:        userID,
		HouseholdID:   householdID,
		CurrentAmount: amount,
		Year:          year,
		Month:         month,
	}
	if err := db.Create(salary).Error; err != nil {
		t.Fatalf("failed to create test salary: %v", err)
	}
	return salary
}

// CreateTestSaving records a savings contribution for (year, month).
func CreateTestSaving(t *testing.T, db *gorm.DB, userID, householdID uint, savingType models.SavingType, amount int64, year, month int) *models.Saving {
	t.Helper()

	saving := &models.Saving{
		UserID:      userID,
		HouseholdID: householdID,
		Name:        fmt.Sprintf("Test Saving %d", nextID()),
		Type:        savingType,
		Amount:      amount,
		Year:        year,
		Month:       month,
	}
	if err := db.Create(saving).Error; err != nil {
		t.Fatalf("failed to create test saving: %v", err)
	}
	return saving
}
