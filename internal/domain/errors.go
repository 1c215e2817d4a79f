package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateCode is returned when creating a referral whose code already exists
	ErrDuplicateCode = errors.New("referral code already exists")

	// ErrReferralNotFound is returned when a referral is not found
	ErrReferralNotFound = errors.New("referral not found")

	// ErrReferralExhausted is returned when a referral has reached its usage cap
	ErrReferralExhausted = errors.New("referral usage cap reached")

	// ErrReferralInactive is returned when a referral has been deactivated
	ErrReferralInactive = errors.New("referral is inactive")

	// ErrInvalidCode is returned when a referral code is empty or malformed
	ErrInvalidCode = errors.New("invalid referral code")

	// ErrInvalidMaxUsage is returned when a usage cap is zero or negative.
	// The cap is registered on chain as an unsigned value, so it must be
	// rejected before the ledger call ever sees it.
	ErrInvalidMaxUsage = errors.New("max usage must be a positive integer")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfRedeemBlocked is returned when a user redeems their own code and policy forbids it
	ErrSelfRedeemBlocked = errors.New("redeeming own referral code is not allowed")

	// ErrLedgerUnavailable is returned when the contract cannot be reached (network error or timeout)
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)

// LedgerRejectedError is returned when the referral contract reverts a call.
// It carries the revert reason so callers can surface it.
type LedgerRejectedError struct {
	Reason string
}

func (e *LedgerRejectedError) Error() string {
	if e.Reason == "" {
		return "ledger rejected the transaction"
	}
	return fmt.Sprintf("ledger rejected the transaction: %s", e.Reason)
}

// NewLedgerRejectedError creates a LedgerRejectedError with the given revert reason
func NewLedgerRejectedError(reason string) *LedgerRejectedError {
	return &LedgerRejectedError{Reason: reason}
}

// IsLedgerRejected reports whether err is a contract-level rejection
func IsLedgerRejected(err error) bool {
	var rejected *LedgerRejectedError
	return errors.As(err, &rejected)
}
