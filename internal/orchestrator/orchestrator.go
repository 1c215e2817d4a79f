// Package orchestrator coordinates the referral lifecycle across the
// smart-contract ledger and the relational store. Both operations follow the
// same two-phase shape: ledger first, then persistence with the receipt
// attached, falling back to a database-only write when the ledger is
// unreachable. The orchestrator holds no state between calls; the store is
// the single system of record.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/esperenza/referral-exchange/internal/adapter"
	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/ledger"
	"github.com/esperenza/referral-exchange/internal/logger"
	"github.com/esperenza/referral-exchange/internal/messaging"
	"github.com/esperenza/referral-exchange/internal/store"
	"github.com/esperenza/referral-exchange/internal/store/schema"
)

// Config holds the orchestrator policy knobs
type Config struct {
	// PointsPerRedemption is the fixed award credited to a referral's owner per
	// redemption. Decoupled from the referral's display-only reward text.
	PointsPerRedemption int
	// AllowSelfRedeem controls whether a user may redeem their own code
	AllowSelfRedeem bool
	// DefaultMaxUses is the on-chain usage cap registered for referrals
	// created without one (the contract requires a finite cap)
	DefaultMaxUses uint64
}

// CreateInput holds the fields for creating a referral
type CreateInput struct {
	Name        string
	Code        string
	Reward      string
	MaxUsage    *int
	Category    string
	Description string
	OwnerUserID int64
}

// CreateResult is the tagged outcome of a create operation
type CreateResult struct {
	Path     domain.OutcomePath
	Referral *schema.Referral
	Receipt  *domain.LedgerReceipt
	// LedgerErr is why the on-chain registration was skipped on the db-only path
	LedgerErr error
	// PersistErr is why the database write failed on the ledger-only path. The
	// referral exists on chain but is not discoverable through the store; the
	// divergence is surfaced, never silently resolved.
	PersistErr error
}

// RedeemInput holds the fields for redeeming a referral. Exactly one of Code
// or ReferralID identifies the referral. Receipt carries a pre-obtained
// on-chain redemption, in which case the ledger call is skipped.
type RedeemInput struct {
	Code            string
	ReferralID      int64
	RedeemingUserID int64
	Receipt         *domain.LedgerReceipt
}

// RedeemResult is the tagged outcome of a redeem operation
type RedeemResult struct {
	Path     domain.OutcomePath
	Referral *schema.Referral
	// Owner carries the referral owner's contact, revealed only on success
	Owner         *schema.User
	PointsAwarded int
	Receipt       *domain.LedgerReceipt
	// LedgerErr is why the redemption has no on-chain backing on the db-only path
	LedgerErr error
	// PersistErr is why the reward bookkeeping failed after an on-chain
	// redemption succeeded; detectable by the caller, never dropped
	PersistErr error
}

// Orchestrator coordinates creation and redemption of referral codes across
// the ledger and persistence collaborators
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// Create registers a referral on the contract and persists it. A non-nil
	// error means nothing usable was produced (the "failed" path); partial
	// outcomes come back as results with PersistErr or LedgerErr set.
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)

	// Redeem consumes a referral code, incrementing its usage and crediting
	// the owner. Same error convention as Create.
	Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error)
}

type orchestrator struct {
	cfg       Config
	store     store.Store
	ledger    ledger.Client
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates an orchestrator. publisher may be nil when eventing is disabled.
func New(cfg Config, s store.Store, l ledger.Client, publisher messaging.Publisher, clock adapter.Clock) Orchestrator {
	if cfg.PointsPerRedemption == 0 {
		cfg.PointsPerRedemption = 10
	}
	if cfg.DefaultMaxUses == 0 {
		cfg.DefaultMaxUses = 100
	}
	return &orchestrator{
		cfg:       cfg,
		store:     s,
		ledger:    l,
		publisher: publisher,
		clock:     clock,
	}
}

// Create registers a referral on the contract, then persists it with the
// receipt attached. Ledger failure falls back to a database-only write.
func (o *orchestrator) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if !domain.ValidReferralCode(input.Code) {
		return nil, domain.ErrInvalidCode
	}
	if input.MaxUsage != nil && *input.MaxUsage < 1 {
		return nil, domain.ErrInvalidMaxUsage
	}

	owner, err := o.store.GetUserByID(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	maxUses := o.cfg.DefaultMaxUses
	if input.MaxUsage != nil {
		maxUses = uint64(*input.MaxUsage)
	}

	receipt, ledgerErr := o.ledger.RegisterCode(ctx, input.Code, maxUses, 0)
	if ledgerErr != nil {
		logger.WarnCtx(ctx, "Ledger registration failed, falling back to database-only create",
			zap.String("code", input.Code),
			zap.Error(ledgerErr),
		)
	}

	referral, persistErr := o.store.CreateReferral(ctx, store.CreateReferralInput{
		Code:        input.Code,
		Name:        input.Name,
		Reward:      input.Reward,
		MaxUsage:    input.MaxUsage,
		Category:    input.Category,
		Description: input.Description,
		OwnerUserID: input.OwnerUserID,
		Receipt:     receipt,
	})

	switch {
	case persistErr == nil && receipt != nil:
		result := &CreateResult{Path: domain.PathLedgerDB, Referral: referral, Receipt: receipt}
		o.publish(ctx, messaging.EventTypeReferralCreated, result.Path, referral, input.OwnerUserID, receipt)
		return result, nil

	case persistErr == nil:
		result := &CreateResult{Path: domain.PathDBOnly, Referral: referral, LedgerErr: ledgerErr}
		o.publish(ctx, messaging.EventTypeReferralCreated, result.Path, referral, input.OwnerUserID, nil)
		return result, nil

	case receipt != nil:
		// The code is registered on chain but the row was never written. The
		// on-chain side effect cannot be reversed, so report the partial
		// success with the receipt for manual reconciliation.
		logger.ErrorCtx(ctx, persistErr,
			zap.String("code", input.Code),
			zap.String("tx_hash", receipt.TxHash),
			zap.String("outcome", string(domain.PathLedgerOnly)),
		)
		return &CreateResult{Path: domain.PathLedgerOnly, Receipt: receipt, PersistErr: persistErr}, nil

	default:
		return nil, persistErr
	}
}

// Redeem consumes a referral code: ledger redemption first (unless a receipt
// was pre-obtained), then the store's atomic increment-and-award transaction.
func (o *orchestrator) Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error) {
	referral, err := o.resolveReferral(ctx, input)
	if err != nil {
		return nil, err
	}

	redeemer, err := o.store.GetUserByID(ctx, input.RedeemingUserID)
	if err != nil {
		return nil, err
	}
	if redeemer == nil {
		return nil, domain.ErrUserNotFound
	}

	if !o.cfg.AllowSelfRedeem && referral.OwnerUserID == input.RedeemingUserID {
		return nil, domain.ErrSelfRedeemBlocked
	}

	// Cheap precondition check before spending a chain call. The store
	// re-checks atomically; this read is advisory only.
	if !referral.IsActive {
		return nil, domain.ErrReferralInactive
	}
	if referral.Exhausted() {
		return nil, domain.ErrReferralExhausted
	}

	receipt := input.Receipt
	var ledgerErr error
	if receipt == nil {
		receipt, ledgerErr = o.ledger.RedeemCode(ctx, referral.Code)
		if ledgerErr != nil {
			logger.WarnCtx(ctx, "Ledger redemption failed, falling back to database-only redeem",
				zap.String("code", referral.Code),
				zap.Error(ledgerErr),
			)
			receipt = nil
		}
	}

	redemption, persistErr := o.store.RedeemReferral(ctx, store.RedeemReferralInput{
		ReferralID:      referral.ID,
		RedeemingUserID: input.RedeemingUserID,
		Points:          o.cfg.PointsPerRedemption,
		Description:     fmt.Sprintf("Referral code %s redeemed", referral.Code),
	})
	if persistErr != nil {
		if receipt != nil {
			// On-chain redemption went through but the reward bookkeeping did
			// not. Surface the divergence with the receipt attached.
			logger.ErrorCtx(ctx, persistErr,
				zap.String("code", referral.Code),
				zap.String("tx_hash", receipt.TxHash),
				zap.String("outcome", string(domain.PathLedgerOnly)),
			)
			return &RedeemResult{Path: domain.PathLedgerOnly, Receipt: receipt, PersistErr: persistErr}, nil
		}
		return nil, persistErr
	}

	path := domain.PathLedgerDB
	if receipt == nil {
		path = domain.PathDBOnly
	}

	result := &RedeemResult{
		Path:          path,
		Referral:      redemption.Referral,
		Owner:         redemption.Referral.Owner,
		PointsAwarded: redemption.PointsRow.Points,
		Receipt:       receipt,
		LedgerErr:     ledgerErr,
	}
	o.publish(ctx, messaging.EventTypeReferralRedeemed, path, redemption.Referral, input.RedeemingUserID, receipt)
	return result, nil
}

// resolveReferral loads the referral named by code or id
func (o *orchestrator) resolveReferral(ctx context.Context, input RedeemInput) (*schema.Referral, error) {
	var (
		referral *schema.Referral
		err      error
	)
	switch {
	case input.Code != "":
		referral, err = o.store.GetReferralByCode(ctx, input.Code)
	case input.ReferralID != 0:
		referral, err = o.store.GetReferralByID(ctx, input.ReferralID)
	default:
		return nil, domain.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, domain.ErrReferralNotFound
	}
	return referral, nil
}

// publish emits a lifecycle event. Best effort: a publish failure is logged
// and never changes the operation outcome.
func (o *orchestrator) publish(ctx context.Context, eventType messaging.EventType, path domain.OutcomePath, referral *schema.Referral, actorUserID int64, receipt *domain.LedgerReceipt) {
	if o.publisher == nil {
		return
	}

	event := &messaging.ReferralEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		Path:        path,
		ReferralID:  referral.ID,
		Code:        referral.Code,
		ActorUserID: actorUserID,
		Receipt:     receipt,
		OccurredAt:  o.clock.Now(),
	}

	if err := o.publisher.PublishReferralEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish referral event",
			zap.String("event_type", string(eventType)),
			zap.String("code", referral.Code),
			zap.Error(err),
		)
	}
}
