package models

// HouseholdRole represents a member's role within a household.
type HouseholdRole string

const (
	HouseholdRoleOwner  HouseholdRole = "owner"
	HouseholdRoleMember HouseholdRole = "member"
)

// Household groups users who share expenses and settle balances together.
type Household struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	InviteCode string `gorm:"uniqueIndex;not null" json:"invite_code"`
	CreatedBy  uint   `gorm:"not null" json:"created_by"`

	// Relationships
	Members []HouseholdMember `gorm:"foreignKey:HouseholdID" json:"members,omitempty"`
}

// HouseholdMember links a user to a household. A user belongs to at most
// one household at a time.
type HouseholdMember struct {
	Base
	HouseholdID uint          `gorm:"not null;index" json:"household_id"`
	UserID      uint          `gorm:"not null;uniqueIndex" json:"user_id"`
	Role        HouseholdRole `gorm:"not null;default:member" json:"role"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user"`
}
