package dto

import (
	"time"

	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/store/schema"
)

// ReferralResponse represents a referral listing entry
type ReferralResponse struct {
	ID                int64     `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Reward            string    `json:"reward"`
	MaxUsage          *int      `json:"max_usage"`
	UsageCount        int       `json:"usage_count"`
	IsActive          bool      `json:"is_active"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	OwnerUserID       int64     `json:"owner_user_id"`
	LedgerTxHash      *string   `json:"ledger_tx_hash,omitempty"`
	LedgerBlockNumber *uint64   `json:"ledger_block_number,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// OwnerContactResponse carries the referral owner's contact details,
// revealed only after a successful redemption
type OwnerContactResponse struct {
	PhoneE164     string  `json:"phone_e164"`
	WalletAddress *string `json:"wallet_address,omitempty"`
}

// ReceiptResponse represents the on-chain proof of a ledger write
type ReceiptResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
}

// CreateReferralRequest is the payload for creating a referral
type CreateReferralRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Reward      string `json:"reward"`
	MaxUsage    *int   `json:"max_usage" binding:"omitempty,gte=1"`
	Category    string `json:"category"`
	Description string `json:"description"`
	OwnerUserID int64  `json:"owner_user_id" binding:"required"`
}

// CreateReferralResponse is the tagged outcome of a create operation
type CreateReferralResponse struct {
	Path     domain.OutcomePath `json:"path"`
	Referral *ReferralResponse  `json:"referral,omitempty"`
	Receipt  *ReceiptResponse   `json:"receipt,omitempty"`
	// LedgerError explains why the write landed on the db-only path
	LedgerError string `json:"ledger_error,omitempty"`
	// PersistError explains why the write landed on the ledger-only path
	PersistError string `json:"persist_error,omitempty"`
}

// RedeemReferralRequest is the payload for redeeming a referral.
// Either code or referral_id identifies the referral; code wins when both are set.
type RedeemReferralRequest struct {
	Code       string `json:"code"`
	ReferralID int64  `json:"referral_id"`
	UserID     int64  `json:"user_id" binding:"required"`
}

// RedeemReferralResponse is the tagged outcome of a redeem operation
type RedeemReferralResponse struct {
	Path          domain.OutcomePath    `json:"path"`
	Referral      *ReferralResponse     `json:"referral,omitempty"`
	OwnerContact  *OwnerContactResponse `json:"owner_contact,omitempty"`
	PointsAwarded int                   `json:"points_awarded"`
	Receipt       *ReceiptResponse      `json:"receipt,omitempty"`
	LedgerError   string                `json:"ledger_error,omitempty"`
	PersistError  string                `json:"persist_error,omitempty"`
}

// ReferralListResponse wraps a page of referrals
type ReferralListResponse struct {
	Referrals []*ReferralResponse `json:"referrals"`
}

// PointsEntryResponse represents one appended point award
type PointsEntryResponse struct {
	ID          int64     `json:"id"`
	Points      int       `json:"points"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	ReferralID  *int64    `json:"referral_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserPointsResponse carries a user's award history plus the recomputed total
type UserPointsResponse struct {
	UserID      int64                  `json:"user_id"`
	TotalPoints int64                  `json:"total_points"`
	Entries     []*PointsEntryResponse `json:"entries"`
}

// NewReferralResponse maps a referral row to its response form
func NewReferralResponse(referral *schema.Referral) *ReferralResponse {
	if referral == nil {
		return nil
	}
	return &ReferralResponse{
		ID:                referral.ID,
		Code:              referral.Code,
		Name:              referral.Name,
		Reward:            referral.Reward,
		MaxUsage:          referral.MaxUsage,
		UsageCount:        referral.UsageCount,
		IsActive:          referral.IsActive,
		Category:          referral.Category,
		Description:       referral.Description,
		OwnerUserID:       referral.OwnerUserID,
		LedgerTxHash:      referral.LedgerTxHash,
		LedgerBlockNumber: referral.LedgerBlockNumber,
		CreatedAt:         referral.CreatedAt,
	}
}

// NewReferralListResponse maps a page of referral rows
func NewReferralListResponse(referrals []*schema.Referral) *ReferralListResponse {
	out := make([]*ReferralResponse, 0, len(referrals))
	for _, r := range referrals {
		out = append(out, NewReferralResponse(r))
	}
	return &ReferralListResponse{Referrals: out}
}

// NewOwnerContactResponse maps an owner row to the contact reveal
func NewOwnerContactResponse(owner *schema.User) *OwnerContactResponse {
	if owner == nil {
		return nil
	}
	return &OwnerContactResponse{
		PhoneE164:     owner.PhoneE164,
		WalletAddress: owner.WalletAddress,
	}
}

// NewReceiptResponse maps a ledger receipt
func NewReceiptResponse(receipt *domain.LedgerReceipt) *ReceiptResponse {
	if receipt == nil {
		return nil
	}
	return &ReceiptResponse{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
	}
}

// NewUserPointsResponse maps a user's award rows and recomputed total
func NewUserPointsResponse(userID int64, rows []*schema.UserPoints, total int64) *UserPointsResponse {
	entries := make([]*PointsEntryResponse, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &PointsEntryResponse{
			ID:          row.ID,
			Points:      row.Points,
			Source:      row.Source,
			Description: row.Description,
			ReferralID:  row.ReferralID,
			CreatedAt:   row.CreatedAt,
		})
	}
	return &UserPointsResponse{
		UserID:      userID,
		TotalPoints: total,
		Entries:     entries,
	}
}
