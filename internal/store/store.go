package store

import (
	"context"

	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/store/schema"
)

// CreateUserInput holds the fields for registering a user
type CreateUserInput struct {
	PhoneE164     string
	WalletAddress *string
}

// CreateReferralInput holds the fields for persisting a referral.
// Receipt is the on-chain registration proof, nil when the ledger path was not taken.
type CreateReferralInput struct {
	Code        string
	Name        string
	Reward      string
	MaxUsage    *int
	Category    string
	Description string
	OwnerUserID int64
	Receipt     *domain.LedgerReceipt
}

// ReferralQueryFilter narrows the available-referrals listing
type ReferralQueryFilter struct {
	// Search matches name, code, and description (case-insensitive substring)
	Search string
	// Category filters by exact category when non-empty
	Category string
	Limit    int
	Offset   int
}

// RedeemReferralInput holds the fields for the database side of a redemption
type RedeemReferralInput struct {
	ReferralID      int64
	RedeemingUserID int64
	// Points is the configured award credited to the referral owner
	Points int
	// Description annotates the appended points row
	Description string
}

// RedeemReferralResult is the outcome of a successful database-side redemption
type RedeemReferralResult struct {
	// Referral is the updated row, with Owner loaded
	Referral *schema.Referral
	// PointsRow is the appended award for the owner
	PointsRow *schema.UserPoints
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateUser registers a new user
	CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error)
	// GetUserByID retrieves a user by id, returning nil when not found
	GetUserByID(ctx context.Context, userID int64) (*schema.User, error)
	// GetUserByPhone retrieves a user by phone number, returning nil when not found
	GetUserByPhone(ctx context.Context, phoneE164 string) (*schema.User, error)

	// CreateReferral persists a new referral, returning domain.ErrDuplicateCode
	// when the code is already taken
	CreateReferral(ctx context.Context, input CreateReferralInput) (*schema.Referral, error)
	// GetReferralByID retrieves a referral by id, returning nil when not found
	GetReferralByID(ctx context.Context, referralID int64) (*schema.Referral, error)
	// GetReferralByCode retrieves a referral by its code, returning nil when not found
	GetReferralByCode(ctx context.Context, code string) (*schema.Referral, error)
	// ListAvailableReferrals lists redeemable referrals, newest first
	ListAvailableReferrals(ctx context.Context, filter ReferralQueryFilter) ([]*schema.Referral, error)
	// ListReferralsByOwner lists a user's own referrals, newest first
	ListReferralsByOwner(ctx context.Context, ownerUserID int64) ([]*schema.Referral, error)

	// RedeemReferral performs the database side of a redemption as one transaction:
	// a conditional compare-and-increment of usage_count guarded by the cap and the
	// active flag, plus one appended UserPoints row for the owner. It returns
	// domain.ErrReferralNotFound, domain.ErrReferralInactive, or
	// domain.ErrReferralExhausted when the preconditions do not hold.
	RedeemReferral(ctx context.Context, input RedeemReferralInput) (*RedeemReferralResult, error)

	// ListUserPoints returns a user's point awards newest first along with the
	// total, recomputed from the rows on every call
	ListUserPoints(ctx context.Context, userID int64) ([]*schema.UserPoints, int64, error)
}
