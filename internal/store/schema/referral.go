package schema

import (
	"time"
)

// Referral represents the referrals table - offered referral codes in the marketplace
type Referral struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Code is the human-chosen, globally unique, case-sensitive referral token
	Code string `gorm:"column:code;not null;uniqueIndex;type:text"`
	// Name is the service the referral is for (e.g., "Perplexity")
	Name string `gorm:"column:name;not null;type:text"`
	// Reward is display-only metadata describing what the redeemer gets.
	// Points awarded to the owner come from configuration, not from this field.
	Reward string `gorm:"column:reward;not null;default:'';type:text"`
	// MaxUsage is the optional redemption cap; nil means unlimited
	MaxUsage *int `gorm:"column:max_usage"`
	// UsageCount is the number of successful redemptions so far.
	// Never exceeds MaxUsage when a cap is set.
	UsageCount int `gorm:"column:usage_count;not null;default:0"`
	// IsActive gates redemption independently of the usage cap
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// Category groups referrals for discovery (e.g., "ai", "crypto", "general")
	Category string `gorm:"column:category;not null;default:'general';type:text;index"`
	// Description is free-text detail shown in listings
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// OwnerUserID is the creator, credited with points when others redeem
	OwnerUserID int64 `gorm:"column:owner_user_id;not null;index"`
	// LedgerTxHash is the transaction hash of the on-chain registration, if one exists
	LedgerTxHash *string `gorm:"column:ledger_tx_hash;type:text"`
	// LedgerBlockNumber is the block the registration was mined in, if one exists
	LedgerBlockNumber *uint64 `gorm:"column:ledger_block_number"`
	// CreatedAt is the timestamp when this referral was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Owner *User `gorm:"foreignKey:OwnerUserID"`
}

// TableName specifies the table name for the Referral model
func (Referral) TableName() string {
	return "referrals"
}

// Exhausted reports whether the usage cap has been reached
func (r *Referral) Exhausted() bool {
	return r.MaxUsage != nil && r.UsageCount >= *r.MaxUsage
}

// Redeemable reports whether the referral can still be redeemed
func (r *Referral) Redeemable() bool {
	return r.IsActive && !r.Exhausted()
}
