package models

// RecurringOverride is a per-(expense, year, month) exception: either an
// amount that replaces the nominal amount, or a skip that forces the
// resolved amount to zero while preserving the would-have-been amount.
// At most one row exists per (expense_id, year, month).
type RecurringOverride struct {
	Base
	ExpenseID uint  `gorm:"not null;uniqueIndex:idx_override_period" json:"expense_id"`
	Year      int   `gorm:"not null;uniqueIndex:idx_override_period" json:"year"`
	Month     int   `gorm:"not null;uniqueIndex:idx_override_period" json:"month"`
	Amount    int64 `gorm:"type:bigint;not null" json:"amount"` // cents
	Skipped   bool  `gorm:"not null;default:false" json:"skipped"`
}
