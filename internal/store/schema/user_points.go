package schema

import (
	"time"
)

// UserPoints represents the user_points table - an append-only ledger of point awards.
// A user's total is always the recomputed sum of their rows, never a cached column.
type UserPoints struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the credited user
	UserID int64 `gorm:"column:user_id;not null;index"`
	// Points is the awarded amount
	Points int `gorm:"column:points;not null"`
	// Source tags where the award came from (e.g., "referral_redeemed")
	Source string `gorm:"column:source;not null;type:text"`
	// Description is human-readable context for the award
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// ReferralID back-references the referral that triggered the award, if any
	ReferralID *int64 `gorm:"column:referral_id;index"`
	// CreatedAt is the timestamp when the row was appended; rows are immutable afterwards
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the UserPoints model
func (UserPoints) TableName() string {
	return "user_points"
}
