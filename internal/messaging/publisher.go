package messaging

import (
	"context"
	"time"

	"github.com/esperenza/referral-exchange/internal/domain"
)

// EventType identifies a referral lifecycle event
type EventType string

const (
	// EventTypeReferralCreated is emitted after a referral is persisted
	EventTypeReferralCreated EventType = "created"
	// EventTypeReferralRedeemed is emitted after a redemption completes the database side
	EventTypeReferralRedeemed EventType = "redeemed"
)

// ReferralEvent is the message published after a successful lifecycle operation
type ReferralEvent struct {
	// EventID uniquely identifies this event for consumer-side deduplication
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	// Path records which sides of the dual write took effect
	Path       domain.OutcomePath `json:"path"`
	ReferralID int64              `json:"referral_id"`
	Code       string             `json:"code"`
	// ActorUserID is the creator for created events, the redeemer for redeemed events
	ActorUserID int64                 `json:"actor_user_id"`
	Receipt     *domain.LedgerReceipt `json:"receipt,omitempty"`
	OccurredAt  time.Time             `json:"occurred_at"`
}

// Publisher defines the interface for publishing referral events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishReferralEvent publishes a referral lifecycle event
	PublishReferralEvent(ctx context.Context, event *ReferralEvent) error
	// Close closes the connection
	Close()
}
