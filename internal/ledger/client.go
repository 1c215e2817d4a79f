package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/esperenza/referral-exchange/internal/adapter"
	"github.com/esperenza/referral-exchange/internal/domain"
	"github.com/esperenza/referral-exchange/internal/logger"
)

// referralPaymentABI is the interface of the ReferralPayment contract.
// createReferralCode registers a code with a usage cap and an optional
// reward override (0 = contract default); useReferralCode redeems it.
const referralPaymentABI = `[
	{"type":"function","name":"createReferralCode","stateMutability":"nonpayable",
	 "inputs":[{"name":"code","type":"string"},{"name":"customReward","type":"uint256"},{"name":"maxUses","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"useReferralCode","stateMutability":"nonpayable",
	 "inputs":[{"name":"code","type":"string"}],
	 "outputs":[]}
]`

// Client is the smart-contract collaborator recording referral codes and
// redemptions on chain. Both operations return a receipt on success; failures
// are either domain.ErrLedgerUnavailable (network error or timeout, the
// caller falls back) or a domain.LedgerRejectedError (contract revert).
//
//go:generate mockgen -source=client.go -destination=../mocks/ledger.go -package=mocks -mock_names=Client=MockLedgerClient
type Client interface {
	// RegisterCode registers a referral code with a usage cap on the contract.
	// rewardOverride of 0 keeps the contract's default reward.
	RegisterCode(ctx context.Context, code string, maxUses uint64, rewardOverride uint64) (*domain.LedgerReceipt, error)

	// RedeemCode redeems a referral code on the contract
	RedeemCode(ctx context.Context, code string) (*domain.LedgerReceipt, error)

	// Close closes the underlying RPC connection
	Close()
}

// Config holds the contract client configuration
type Config struct {
	// ContractAddress is the deployed ReferralPayment contract
	ContractAddress string
	// PrivateKey is the hex-encoded signing key of the relayer account
	PrivateKey string
	// ChainID is the EIP-155 chain the contract lives on
	ChainID *big.Int
	// CallTimeout bounds every contract operation end to end, receipt polling included
	CallTimeout time.Duration
}

type client struct {
	cfg      Config
	eth      adapter.EthClient
	clock    adapter.Clock
	abi      abi.ABI
	key      *ecdsa.PrivateKey
	from     common.Address
	contract common.Address
}

// NewClient creates a contract client signing with the configured relayer key
func NewClient(cfg Config, eth adapter.EthClient, clock adapter.Clock) (Client, error) {
	if cfg.ContractAddress == "" {
		return nil, errors.New("contract address not configured")
	}
	if cfg.ChainID == nil || cfg.ChainID.Sign() <= 0 {
		return nil, errors.New("chain id not configured")
	}

	parsedABI, err := abi.JSON(strings.NewReader(referralPaymentABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 30 * time.Second
	}

	return &client{
		cfg:      cfg,
		eth:      eth,
		clock:    clock,
		abi:      parsedABI,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		contract: common.HexToAddress(cfg.ContractAddress),
	}, nil
}

// RegisterCode registers a referral code with a usage cap on the contract
func (c *client) RegisterCode(ctx context.Context, code string, maxUses uint64, rewardOverride uint64) (*domain.LedgerReceipt, error) {
	return c.submit(ctx, "createReferralCode", code, new(big.Int).SetUint64(rewardOverride), new(big.Int).SetUint64(maxUses))
}

// RedeemCode redeems a referral code on the contract
func (c *client) RedeemCode(ctx context.Context, code string) (*domain.LedgerReceipt, error) {
	return c.submit(ctx, "useReferralCode", code)
}

// Close closes the underlying RPC connection
func (c *client) Close() {
	c.eth.Close()
}

// submit packs, simulates, signs, broadcasts, and waits for one contract call.
// The whole sequence shares a single deadline of cfg.CallTimeout.
func (c *client) submit(ctx context.Context, method string, args ...interface{}) (*domain.LedgerReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	msg := ethereum.CallMsg{
		From: c.from,
		To:   &c.contract,
		Data: data,
	}

	// Dry-run first so contract rejections surface with a decoded reason
	// before gas is spent.
	if _, err := c.eth.CallContract(ctx, msg, nil); err != nil {
		return nil, c.classify(err)
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, c.classify(err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, c.classify(err)
	}

	gasLimit, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, c.classify(err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &c.contract,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.cfg.ChainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	start := c.clock.Now()
	if err := c.eth.SendTransaction(ctx, signedTx); err != nil {
		return nil, c.classify(err)
	}

	receipt, err := c.waitMined(ctx, signedTx.Hash())
	if err != nil {
		return nil, err
	}

	if receipt.Status == types.ReceiptStatusFailed {
		// Replay at the mined block to recover the revert reason.
		reason := c.revertReason(ctx, msg, receipt.BlockNumber)
		return nil, domain.NewLedgerRejectedError(reason)
	}

	logger.DebugCtx(ctx, "Contract call mined",
		zap.String("method", method),
		zap.String("tx_hash", signedTx.Hash().Hex()),
		zap.Uint64("block_number", receipt.BlockNumber.Uint64()),
		zap.Duration("elapsed", c.clock.Since(start)),
	)

	return &domain.LedgerReceipt{
		TxHash:      signedTx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

// waitMined polls for the transaction receipt with exponential backoff until
// the submit deadline expires
func (c *client) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0 // bounded by ctx

	var receipt *types.Receipt
	operation := func() error {
		r, err := c.eth.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return fmt.Errorf("transaction not mined yet")
			}
			return err
		}
		receipt = r
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("%w: waiting for receipt %s: %v", domain.ErrLedgerUnavailable, txHash.Hex(), err)
	}

	return receipt, nil
}

// revertReason replays a failed call at the given block and decodes the
// revert string, returning "" when the node did not include one
func (c *client) revertReason(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) string {
	_, err := c.eth.CallContract(ctx, msg, blockNumber)
	if err == nil {
		return ""
	}
	if reason, ok := unpackRevert(err); ok {
		return reason
	}
	return err.Error()
}

// classify maps a node error onto the ledger error taxonomy: reverts become
// LedgerRejectedError with the decoded reason, everything else (timeouts,
// transport failures) becomes ErrLedgerUnavailable so callers take the
// database-only fallback.
func (c *client) classify(err error) error {
	if err == nil {
		return nil
	}
	if reason, ok := unpackRevert(err); ok {
		return domain.NewLedgerRejectedError(reason)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return domain.NewLedgerRejectedError(strings.TrimSpace(strings.TrimPrefix(err.Error(), "execution reverted:")))
	}
	return fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
}

// unpackRevert extracts the ABI-encoded revert string from an RPC data error
func unpackRevert(err error) (string, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return "", false
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return "", false
	}
	reason, unpackErr := abi.UnpackRevert(common.FromHex(hexData))
	if unpackErr != nil {
		return "", false
	}
	return reason, true
}
