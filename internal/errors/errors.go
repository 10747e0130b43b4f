// Package errors provides custom error types for the Splitnest API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Household errors.
var (
	ErrHouseholdNotFound  = &AppError{Code: "HOUSEHOLD_NOT_FOUND", Message: "Household not found", StatusCode: http.StatusNotFound}
	ErrNotHouseholdMember = &AppError{Code: "NOT_HOUSEHOLD_MEMBER", Message: "You are not a member of this household", StatusCode: http.StatusForbidden}
	ErrAlreadyInHousehold = &AppError{Code: "ALREADY_IN_HOUSEHOLD", Message: "You already belong to a household", StatusCode: http.StatusConflict}
	ErrInvalidInviteCode  = &AppError{Code: "INVALID_INVITE_CODE", Message: "Invite code is invalid", StatusCode: http.StatusNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound    = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvalidExpensePlan = &AppError{Code: "INVALID_EXPENSE_PLAN", Message: "Invalid expense plan combination", StatusCode: http.StatusBadRequest}
)

// Override errors.
var (
	ErrOverrideNotFound    = &AppError{Code: "OVERRIDE_NOT_FOUND", Message: "No override exists for this period", StatusCode: http.StatusNotFound}
	ErrPeriodNotApplicable = &AppError{Code: "PERIOD_NOT_APPLICABLE", Message: "The expense has no occurrence in this period", StatusCode: http.StatusBadRequest}
	ErrPastPeriodImmutable = &AppError{Code: "PAST_PERIOD_IMMUTABLE", Message: "Past periods cannot be modified", StatusCode: http.StatusBadRequest}
	ErrScheduleFixed       = &AppError{Code: "SCHEDULE_FIXED", Message: "Installment schedules cannot be overridden", StatusCode: http.StatusBadRequest}
)

// Salary & saving errors.
var (
	ErrSalaryNotFound = &AppError{Code: "SALARY_NOT_FOUND", Message: "Salary not found", StatusCode: http.StatusNotFound}
	ErrSavingNotFound = &AppError{Code: "SAVING_NOT_FOUND", Message: "Saving not found", StatusCode: http.StatusNotFound}
)

// Settlement errors.
var (
	ErrAlreadySettled    = &AppError{Code: "ALREADY_SETTLED", Message: "A settlement already exists for this period", StatusCode: http.StatusConflict}
	ErrNothingToSettle   = &AppError{Code: "NOTHING_TO_SETTLE", Message: "There is no outstanding balance for this period", StatusCode: http.StatusBadRequest}
	ErrSettlementInvalid = &AppError{Code: "SETTLEMENT_INVALID", Message: "Settlement could not be computed for this period", StatusCode: http.StatusBadRequest}
)
