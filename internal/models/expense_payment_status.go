package models

import "time"

// PaymentState is the payment status of an expense occurrence.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "PENDING"
	PaymentStatePaid      PaymentState = "PAID"
	PaymentStateCancelled PaymentState = "CANCELLED"
)

// ExpensePaymentStatus tracks whether an expense occurrence was paid.
// A row exists only once the occurrence has been touched; absence means
// PENDING. Exactly one row per (expense_id, year, month).
type ExpensePaymentStatus struct {
	Base
	ExpenseID uint         `gorm:"not null;uniqueIndex:idx_payment_period" json:"expense_id"`
	Year      int          `gorm:"not null;uniqueIndex:idx_payment_period" json:"year"`
	Month     int          `gorm:"not null;uniqueIndex:idx_payment_period" json:"month"`
	Status    PaymentState `gorm:"not null;default:PENDING" json:"status"`
	PaidByID  *uint        `json:"paid_by_id,omitempty"`
	PaidAt    *time.Time   `json:"paid_at,omitempty"`
}
