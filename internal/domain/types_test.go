package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esperenza/referral-exchange/internal/domain"
)

func TestValidReferralCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"WELCOME50", true},
		{"COMET25", true},
		{"my-code_1", true},
		{"abc", true},
		{"ab", false},
		{"", false},
		{"has space", false},
		{"emoji🎉", false},
		{"waaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, domain.ValidReferralCode(tt.code))
		})
	}
}

func TestLedgerRejectedError(t *testing.T) {
	err := domain.NewLedgerRejectedError("Code already exists")
	assert.Equal(t, "ledger rejected the transaction: Code already exists", err.Error())
	assert.True(t, domain.IsLedgerRejected(err))
	assert.True(t, domain.IsLedgerRejected(fmt.Errorf("register code: %w", err)))
	assert.False(t, domain.IsLedgerRejected(domain.ErrLedgerUnavailable))
	assert.False(t, domain.IsLedgerRejected(errors.New("boom")))
}

func TestIsValidChain(t *testing.T) {
	assert.True(t, domain.IsValidChain(domain.ChainCeloMainnet))
	assert.True(t, domain.IsValidChain(domain.ChainCeloAlfajores))
	assert.False(t, domain.IsValidChain(domain.Chain("eip155:1")))
}

func TestChainEVMChainID(t *testing.T) {
	assert.Equal(t, int64(42220), domain.ChainCeloMainnet.EVMChainID().Int64())
	assert.Equal(t, int64(44787), domain.ChainCeloAlfajores.EVMChainID().Int64())
	assert.Nil(t, domain.Chain("cosmos:cosmoshub-4").EVMChainID())
	assert.Nil(t, domain.Chain("eip155:not-a-number").EVMChainID())
}
