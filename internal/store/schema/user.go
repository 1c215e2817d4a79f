package schema

import (
	"time"
)

// User represents the users table - account holders who own and redeem referrals
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PhoneE164 is the user's phone number in E.164 format, revealed to redeemers on success
	PhoneE164 string `gorm:"column:phone_e164;not null;uniqueIndex;type:text"`
	// WalletAddress is the user's blockchain wallet address, if connected
	WalletAddress *string `gorm:"column:wallet_address;type:text"`
	// CreatedAt is the timestamp when this account was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Referrals []Referral   `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE"`
	Points    []UserPoints `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
