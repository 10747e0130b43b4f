package models

// Salary records a member's income from a given period onward. The
// effective salary for a period is the most recent row at or before it.
type Salary struct {
	Base
	UserID        uint  `gorm:"not null;uniqueIndex:idx_salary_period" json:"user_id"`
	HouseholdID   uint  `gorm:"not null;index" json:"household_id"`
	CurrentAmount int64 `gorm:"type:bigint;not null" json:"current_amount"` // cents
	Year          int   `gorm:"not null;uniqueIndex:idx_salary_period" json:"year"`
	Month         int   `gorm:"not null;uniqueIndex:idx_salary_period" json:"month"`
}
