package models

// Settlement records that the net shared-expense balance between two
// members was paid for a period. At most one row exists per
// (household_id, year, month); creating it is the terminal action for
// that period's balance.
type Settlement struct {
	Base
	HouseholdID  uint  `gorm:"not null;uniqueIndex:idx_settlement_period" json:"household_id"`
	Year         int   `gorm:"not null;uniqueIndex:idx_settlement_period" json:"year"`
	Month        int   `gorm:"not null;uniqueIndex:idx_settlement_period" json:"month"`
	Amount       int64 `gorm:"type:bigint;not null" json:"amount"` // cents
	PaidByUserID uint  `gorm:"not null" json:"paid_by_user_id"`
	PaidToUserID uint  `gorm:"not null" json:"paid_to_user_id"`
}
