package models

// SavingType distinguishes personal savings from household-shared savings.
type SavingType string

const (
	SavingTypePersonal SavingType = "PERSONAL"
	SavingTypeShared   SavingType = "SHARED"
)

// Saving is a member's savings contribution for a period.
type Saving struct {
	Base
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	HouseholdID uint       `gorm:"not null;index" json:"household_id"`
	Name        string     `gorm:"not null" json:"name"`
	Type        SavingType `gorm:"not null" json:"type"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"` // cents
	Year        int        `gorm:"not null" json:"year"`
	Month       int        `gorm:"not null" json:"month"`
}
