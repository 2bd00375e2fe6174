// Package cryptogate is an external-flow adapter for on-chain payments. The
// customer pays by sending funds to the merchant deposit address; the
// adapter hands out an EIP-681 payment request and the transaction stays
// pending until the transfer is observed and settled with its chain hash.
package cryptogate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/logger"
	"github.com/finbridge/merchant/metrics"
	"github.com/finbridge/merchant/types"
)

var (
	_ merchant.CheckTransaction[types.NoDistribution, types.NoInstallments]                    = (*Gateway)(nil)
	_ merchant.ExternalPayments[types.CryptoPayment, types.NoDistribution, types.NoInstallments] = (*Gateway)(nil)
)

// paymentTTL is how long a payment request stays valid before the quoted
// amount can no longer be trusted.
const paymentTTL = 30 * time.Minute

// weiDecimals shifts a decimal ether amount to integer wei.
const weiDecimals = 18

type record struct {
	tx   types.Transaction
	data types.ExternalPaymentData
}

// snapshot returns a copy the caller owns outright. Metadata is cloned so a
// later state change on the record never reaches into a transaction value
// already handed out.
func (r *record) snapshot() types.Transaction {
	tx := r.tx
	tx.Metadata = tx.Metadata.Clone()
	return tx
}

// Gateway accepts cryptocurrency payments into a single deposit address.
type Gateway struct {
	deposit common.Address
	log     logger.Logger
	rec     metrics.Recorder
	now     func() time.Time
	newID   func() string

	mu   sync.RWMutex
	txs  map[types.TransactionID]*record
	keys map[types.IdempotenceKey][]types.TransactionID
}

// Option configures the gateway at construction time.
type Option func(*Gateway)

// WithLogger replaces the default NoopLogger.
func WithLogger(l logger.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithMetrics replaces the default NoopRecorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(g *Gateway) { g.rec = r }
}

// WithClock replaces the wall clock, for deterministic expiry in tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// WithIDGenerator replaces the transaction ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) { g.newID = fn }
}

// New builds a gateway collecting payments into depositAddress.
func New(depositAddress string, opts ...Option) (*Gateway, error) {
	if !common.IsHexAddress(depositAddress) {
		return nil, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "deposit address is not a valid hex address",
		}
	}
	g := &Gateway{
		deposit: common.HexToAddress(depositAddress),
		log:     logger.NoopLogger{},
		rec:     metrics.NoopRecorder{},
		now:     time.Now,
		newID: func() string {
			return "cg_" + uuid.NewString()
		},
		txs:  make(map[types.TransactionID]*record),
		keys: make(map[types.IdempotenceKey][]types.TransactionID),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Gateway) Name() string { return "cryptogate" }

func (g *Gateway) Distribution() types.NoDistribution { return types.NoDistribution{} }

func (g *Gateway) InstallmentPlans() types.NoInstallments { return types.NoInstallments{} }

func (g *Gateway) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = merchant.ErrProviderRejected
		if merr, ok := err.(*merchant.Error); ok {
			outcome = merr.Code
		}
	}
	g.rec.IncOperation(g.Name(), op, outcome)
	g.rec.ObserveLatency(g.Name(), op, g.now().Sub(start))
	if err != nil {
		g.log.Warn("operation failed", map[string]any{
			"gateway":   g.Name(),
			"operation": op,
			"error":     err.Error(),
		})
	}
}

// Initiate implements ExternalPayments. The returned reference is an
// EIP-681 payment request for the exact amount; the transaction stays
// pending until Settle observes the transfer.
func (g *Gateway) Initiate(ctx context.Context, payment types.Payment[types.CryptoPayment, types.NoInstallments]) (types.ExternalPayment, error) {
	start := g.now()
	ext, err := g.initiate(payment)
	g.observe("initiate", start, err)
	return ext, err
}

func (g *Gateway) initiate(payment types.Payment[types.CryptoPayment, types.NoInstallments]) (types.ExternalPayment, error) {
	if payment.Method.Currency != "ETH" {
		return types.ExternalPayment{}, &merchant.Error{
			Code:    merchant.ErrUnsupportedCapability,
			Message: fmt.Sprintf("currency %s is not accepted on this deposit address", payment.Method.Currency),
		}
	}
	id, err := types.NewTransactionID(g.newID())
	if err != nil {
		return types.ExternalPayment{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "generated transaction ID is malformed",
			Cause:   err,
		}
	}
	wei := payment.Amount.Amount.Shift(weiDecimals)
	if !wei.IsInteger() {
		return types.ExternalPayment{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "amount has sub-wei precision",
		}
	}
	data := types.ExternalPaymentData{
		Kind:      types.CompletionQRCode,
		Reference: fmt.Sprintf("ethereum:%s?value=%s", g.deposit.Hex(), wei.String()),
		ExpiresAt: g.now().Add(paymentTTL),
	}
	tx := types.Transaction{
		ID:             id,
		IdempotenceKey: payment.IdempotenceKey,
		Status:         types.StatusPending,
		Amount:         payment.Amount,
		Flow:           types.FlowExternal,
		Metadata: types.Metadata{
			"sender": payment.Method.Wallet.PartialView(),
		},
	}
	stored := &record{tx: tx, data: data}
	stored.tx.Metadata = stored.tx.Metadata.Clone()
	g.mu.Lock()
	g.txs[id] = stored
	g.keys[tx.IdempotenceKey] = append(g.keys[tx.IdempotenceKey], id)
	g.mu.Unlock()
	return types.ExternalPayment{Transaction: tx, PaymentData: data}, nil
}

// PaymentData implements ExternalPayments.
func (g *Gateway) PaymentData(ctx context.Context, id types.TransactionID) (types.ExternalPaymentData, error) {
	start := g.now()
	g.mu.RLock()
	r, ok := g.txs[id]
	g.mu.RUnlock()
	if !ok {
		err := &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
		g.observe("payment_data", start, err)
		return types.ExternalPaymentData{}, err
	}
	g.observe("payment_data", start, nil)
	return r.data, nil
}

// Status implements CheckTransaction.
func (g *Gateway) Status(ctx context.Context, id types.TransactionID) (types.Transaction, error) {
	start := g.now()
	g.mu.RLock()
	r, ok := g.txs[id]
	var tx types.Transaction
	if ok {
		// Snapshot under the read lock; Settle mutates the record.
		tx = r.snapshot()
	}
	g.mu.RUnlock()
	if !ok {
		err := &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
		g.observe("status", start, err)
		return types.Transaction{}, err
	}
	g.observe("status", start, nil)
	return tx, nil
}

// Settle records the observed on-chain transfer for a pending payment. The
// hash must be a 32-byte hex string; it is kept on the transaction metadata
// for reconciliation against the chain.
func (g *Gateway) Settle(id types.TransactionID, txHash string) error {
	raw, err := hexutil.Decode(txHash)
	if err != nil || len(raw) != common.HashLength {
		return &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "transaction hash is not a 32-byte hex string",
			Cause:   err,
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.txs[id]
	if !ok {
		return &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	if r.tx.Status != types.StatusPending {
		return &merchant.Error{
			Code:    merchant.ErrInvalidTransactionState,
			Message: fmt.Sprintf("cannot settle a %s transaction", r.tx.Status),
		}
	}
	r.tx.Status = types.StatusCaptured
	if r.tx.Metadata == nil {
		r.tx.Metadata = types.Metadata{}
	}
	r.tx.Metadata["chain_tx"] = common.BytesToHash(raw).Hex()
	return nil
}

// Expire fails a pending payment whose quote has lapsed without an observed
// transfer. Callers run it from their reconciliation loop.
func (g *Gateway) Expire(id types.TransactionID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.txs[id]
	if !ok {
		return &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	if r.tx.Status != types.StatusPending {
		return &merchant.Error{
			Code:    merchant.ErrInvalidTransactionState,
			Message: fmt.Sprintf("cannot expire a %s transaction", r.tx.Status),
		}
	}
	if g.now().Before(r.data.ExpiresAt) {
		return &merchant.Error{
			Code:    merchant.ErrInvalidTransactionState,
			Message: "payment request has not expired yet",
		}
	}
	r.tx.Status = types.StatusFailed
	return nil
}

// Deposit returns the checksummed deposit address payments flow into.
func (g *Gateway) Deposit() string { return g.deposit.Hex() }
