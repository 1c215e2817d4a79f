package domain

import (
	"math/big"
	"regexp"
	"strings"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	// ChainCeloMainnet represents Celo mainnet (chain ID: 42220)
	ChainCeloMainnet Chain = "eip155:42220"
	// ChainCeloAlfajores represents the Celo Alfajores testnet (chain ID: 44787)
	ChainCeloAlfajores Chain = "eip155:44787"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainCeloMainnet || chain == ChainCeloAlfajores
}

// EVMChainID returns the numeric chain ID from the CAIP-2 identifier,
// or nil when the chain is not an eip155 chain
func (c Chain) EVMChainID() *big.Int {
	numeric, ok := strings.CutPrefix(string(c), "eip155:")
	if !ok {
		return nil
	}
	id, ok := new(big.Int).SetString(numeric, 10)
	if !ok {
		return nil
	}
	return id
}

// OutcomePath tags which of the two sides of a dual-write operation took effect
type OutcomePath string

const (
	// PathLedgerDB means both the contract call and the database write succeeded
	PathLedgerDB OutcomePath = "ledger+db"
	// PathLedgerOnly means the contract call succeeded but the database write failed.
	// The on-chain side effect is not reversible, so the divergence is surfaced to the caller.
	PathLedgerOnly OutcomePath = "ledger-only"
	// PathDBOnly means the contract call failed or was skipped and only the database was written
	PathDBOnly OutcomePath = "db-only"
	// PathFailed means neither side took effect
	PathFailed OutcomePath = "failed"
)

// LedgerReceipt holds the on-chain proof of a registered or redeemed code
type LedgerReceipt struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
}

// referralCodeRe matches human-chosen referral codes: case-sensitive
// alphanumeric tokens with dashes/underscores, 3-32 characters.
var referralCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// ValidReferralCode checks whether a code is well-formed
func ValidReferralCode(code string) bool {
	return referralCodeRe.MatchString(code)
}

// PointsSourceReferralRedeemed tags UserPoints rows appended when someone redeems the owner's code
const PointsSourceReferralRedeemed = "referral_redeemed"
