// Package testpay is a deterministic in-memory gateway adapter. It exists
// so integrations can be developed and tested without a provider account,
// and it doubles as the reference implementation of the capability
// interfaces: every flow the contract layer defines is exercised here.
//
// Card implements the synchronous flows for credit cards with total-based
// authorization changes; Redirect implements the external voucher flow.
// Both are safe for concurrent use.
package testpay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/logger"
	"github.com/finbridge/merchant/metrics"
	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

// Compile-time bindings. Each assertion pins one capability of one adapter;
// together they prove the interface set is implementable without stubs.
var (
	_ merchant.CheckTransaction[types.NoDistribution, types.NoInstallments]                                                   = (*Card)(nil)
	_ merchant.ImmediatePayments[types.CreditCard, types.NoDistribution, types.NoInstallments]                                = (*Card)(nil)
	_ merchant.DeferredPayments[types.CreditCard, merchant.PartialAmount, merchant.ChangesByTotal, types.NoDistribution, types.NoInstallments] = (*Card)(nil)
	_ merchant.EditAuthorization[types.CreditCard, merchant.PartialAmount, types.NoDistribution, types.NoInstallments]        = (*Card)(nil)
	_ merchant.RefundPayments[types.NoDistribution, types.NoInstallments]                                                     = (*Card)(nil)
	_ merchant.CancelPayments[types.NoDistribution, types.NoInstallments]                                                     = (*Card)(nil)
	_ merchant.RecoverTransactions[types.NoDistribution, types.NoInstallments]                                                = (*Card)(nil)
	_ merchant.TokenizePaymentSources[types.CreditCard, types.NoDistribution, types.NoInstallments]                           = (*Card)(nil)
	_ merchant.ThreeDSecure[types.CreditCard, types.NoDistribution, types.NoInstallments]                                     = (*Card)(nil)

	_ merchant.CheckTransaction[types.NoDistribution, types.NoInstallments]                              = (*Redirect)(nil)
	_ merchant.ExternalPayments[types.CashVoucher, types.NoDistribution, types.NoInstallments]           = (*Redirect)(nil)
)

type record struct {
	tx         types.Transaction
	authorized decimal.Decimal
	data       types.ExternalPaymentData
	recipients types.Recipients
}

// snapshot returns a copy the caller owns outright. Metadata is cloned so a
// later state change on the record never reaches into a transaction value
// already handed out.
func (r *record) snapshot() types.Transaction {
	tx := r.tx
	tx.Metadata = tx.Metadata.Clone()
	return tx
}

type config struct {
	log   logger.Logger
	rec   metrics.Recorder
	now   func() time.Time
	newID func() string
}

// Option configures an adapter at construction time.
type Option func(*config)

// WithLogger replaces the default NoopLogger.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithMetrics replaces the default NoopRecorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(c *config) { c.rec = r }
}

// WithClock replaces the wall clock, for deterministic expiry in tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithIDGenerator replaces the transaction ID generator, for deterministic
// identifiers in tests.
func WithIDGenerator(fn func() string) Option {
	return func(c *config) { c.newID = fn }
}

func newConfig(opts []Option) config {
	c := config{
		log: logger.NoopLogger{},
		rec: metrics.NoopRecorder{},
		now: time.Now,
		newID: func() string {
			return "tp_" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// store is the shared in-memory transaction table.
type store struct {
	mu   sync.RWMutex
	txs  map[types.TransactionID]*record
	keys map[types.IdempotenceKey][]types.TransactionID
}

func newStore() *store {
	return &store{
		txs:  make(map[types.TransactionID]*record),
		keys: make(map[types.IdempotenceKey][]types.TransactionID),
	}
}

// put stores the record with its own metadata map, detached from whatever
// transaction value the caller is about to return.
func (s *store) put(r *record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.tx.Metadata = r.tx.Metadata.Clone()
	s.txs[r.tx.ID] = r
	s.keys[r.tx.IdempotenceKey] = append(s.keys[r.tx.IdempotenceKey], r.tx.ID)
}

func (s *store) transaction(id types.TransactionID) (types.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.txs[id]
	if !ok {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	return r.snapshot(), nil
}

func (s *store) paymentData(id types.TransactionID) (types.ExternalPaymentData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.txs[id]
	if !ok {
		return types.ExternalPaymentData{}, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	return r.data, nil
}

func (s *store) byKey(key types.IdempotenceKey) []types.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.keys[key]
	out := make([]types.Transaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.txs[id].snapshot())
	}
	return out
}

// observe records one flow operation for logs and metrics.
func (c *config) observe(gateway, op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = merchant.ErrProviderRejected
		var merr *merchant.Error
		if errors.As(err, &merr) {
			outcome = merr.Code
		}
	}
	c.rec.IncOperation(gateway, op, outcome)
	c.rec.ObserveLatency(gateway, op, c.now().Sub(start))
	if err != nil {
		c.log.Warn("operation failed", map[string]any{
			"gateway":   gateway,
			"operation": op,
			"error":     err.Error(),
		})
		return
	}
	c.log.Debug("operation completed", map[string]any{
		"gateway":   gateway,
		"operation": op,
	})
}

// Card is the synchronous card adapter. It binds CreditCard payments with
// no distribution, no installments, optional partial capture, and
// total-based authorization changes.
type Card struct {
	cfg   config
	store *store
}

// NewCard builds a card adapter.
func NewCard(opts ...Option) *Card {
	return &Card{cfg: newConfig(opts), store: newStore()}
}

func (g *Card) Name() string { return "testpay-card" }

func (g *Card) Distribution() types.NoDistribution { return types.NoDistribution{} }

func (g *Card) InstallmentPlans() types.NoInstallments { return types.NoInstallments{} }

func (g *Card) AuthorizationChanges() merchant.ChangesByTotal { return merchant.ChangesByTotal{} }

func (g *Card) newTransaction(p types.Payment[types.CreditCard, types.NoInstallments], status types.TransactionStatus, flow types.Flow) (types.Transaction, error) {
	id, err := types.NewTransactionID(g.cfg.newID())
	if err != nil {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "generated transaction ID is malformed",
			Cause:   err,
		}
	}
	return types.Transaction{
		ID:             id,
		IdempotenceKey: p.IdempotenceKey,
		Status:         status,
		Amount:         p.Amount,
		Flow:           flow,
		Metadata: types.Metadata{
			"card": p.Method.Number.PartialView(),
		},
	}, nil
}

// Status implements CheckTransaction.
func (g *Card) Status(ctx context.Context, id types.TransactionID) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.store.transaction(id)
	g.cfg.observe(g.Name(), "status", start, err)
	return tx, err
}

// Charge implements ImmediatePayments.
func (g *Card) Charge(ctx context.Context, payment types.Payment[types.CreditCard, types.NoInstallments], _ types.NoDistribution) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.newTransaction(payment, types.StatusCaptured, types.FlowImmediate)
	if err != nil {
		g.cfg.observe(g.Name(), "charge", start, err)
		return types.Transaction{}, err
	}
	g.store.put(&record{tx: tx, authorized: payment.Amount.Amount})
	g.cfg.observe(g.Name(), "charge", start, nil)
	return tx, nil
}

// Authorize implements DeferredPayments.
func (g *Card) Authorize(ctx context.Context, payment types.Payment[types.CreditCard, types.NoInstallments], _ types.NoDistribution) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.newTransaction(payment, types.StatusAuthorized, types.FlowDeferred)
	if err != nil {
		g.cfg.observe(g.Name(), "authorize", start, err)
		return types.Transaction{}, err
	}
	g.store.put(&record{tx: tx, authorized: payment.Amount.Amount})
	g.cfg.observe(g.Name(), "authorize", start, nil)
	return tx, nil
}

// Capture implements DeferredPayments. A null amount captures the full
// authorization; a valid amount captures that portion.
func (g *Card) Capture(ctx context.Context, id types.TransactionID, amount merchant.PartialAmount, _ types.NoDistribution) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.capture(id, amount)
	g.cfg.observe(g.Name(), "capture", start, err)
	return tx, err
}

func (g *Card) capture(id types.TransactionID, amount merchant.PartialAmount) (types.Transaction, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	r, ok := g.store.txs[id]
	if !ok {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	if r.tx.Status != types.StatusAuthorized {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrInvalidTransactionState,
			Message: fmt.Sprintf("cannot capture a %s transaction", r.tx.Status),
		}
	}
	captured := r.authorized
	if amount.Amount.Valid {
		captured = amount.Amount.Decimal
		if !captured.IsPositive() {
			return types.Transaction{}, &merchant.Error{
				Code:    merchant.ErrValidationFailed,
				Message: "capture amount must be positive",
			}
		}
		if captured.GreaterThan(r.authorized) {
			return types.Transaction{}, &merchant.Error{
				Code:    merchant.ErrAmountExceedsAuthorized,
				Message: "capture amount exceeds the authorized amount",
			}
		}
	}
	r.tx.Status = types.StatusCaptured
	r.tx.Amount.Amount = captured
	return r.snapshot(), nil
}

// EditAuthorization implements the total-based change capability.
func (g *Card) EditAuthorization(ctx context.Context, id types.TransactionID, newTotal decimal.Decimal) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.editAuthorization(id, newTotal)
	g.cfg.observe(g.Name(), "edit_authorization", start, err)
	return tx, err
}

func (g *Card) editAuthorization(id types.TransactionID, newTotal decimal.Decimal) (types.Transaction, error) {
	if !newTotal.IsPositive() {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "new authorization total must be positive",
		}
	}
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	r, ok := g.store.txs[id]
	if !ok {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	if r.tx.Status != types.StatusAuthorized {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrInvalidTransactionState,
			Message: fmt.Sprintf("cannot change authorization of a %s transaction", r.tx.Status),
		}
	}
	r.authorized = newTotal
	r.tx.Amount.Amount = newTotal
	return r.snapshot(), nil
}

// Refund implements RefundPayments.
func (g *Card) Refund(ctx context.Context, id types.TransactionID, reference types.MerchantReferenceID) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.refund(id, reference)
	g.cfg.observe(g.Name(), "refund", start, err)
	return tx, err
}

func (g *Card) refund(id types.TransactionID, reference types.MerchantReferenceID) (types.Transaction, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	r, ok := g.store.txs[id]
	if !ok {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	if r.tx.Status != types.StatusCaptured {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrInvalidTransactionState,
			Message: fmt.Sprintf("cannot refund a %s transaction", r.tx.Status),
		}
	}
	r.tx.Status = types.StatusRefunded
	if r.tx.Metadata == nil {
		r.tx.Metadata = types.Metadata{}
	}
	r.tx.Metadata["refund_reference"] = reference.String()
	return r.snapshot(), nil
}

// Void implements CancelPayments.
func (g *Card) Void(ctx context.Context, id types.TransactionID) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.void(id)
	g.cfg.observe(g.Name(), "void", start, err)
	return tx, err
}

func (g *Card) void(id types.TransactionID) (types.Transaction, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	r, ok := g.store.txs[id]
	if !ok {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	switch r.tx.Status {
	case types.StatusAuthorized, types.StatusPending:
		r.tx.Status = types.StatusVoided
		return r.snapshot(), nil
	}
	return types.Transaction{}, &merchant.Error{
		Code:    merchant.ErrInvalidTransactionState,
		Message: fmt.Sprintf("cannot void a %s transaction", r.tx.Status),
	}
}

// Transactions implements RecoverTransactions. The sequence is served from
// a snapshot taken at call time and paged internally.
func (g *Card) Transactions(ctx context.Context, key types.IdempotenceKey) (merchant.TransactionSeq, error) {
	start := g.cfg.now()
	matches := g.store.byKey(key)
	g.cfg.observe(g.Name(), "recover", start, nil)
	return &sliceSeq{txs: matches}, nil
}

// Tokenize implements TokenizePaymentSources. The token is derived from the
// card fingerprint, so tokenizing the same card twice yields the same token
// without ever exposing the PAN.
func (g *Card) Tokenize(ctx context.Context, method types.CreditCard) (secure.PaymentToken, error) {
	start := g.cfg.now()
	token, err := secure.NewPaymentToken("tok_" + method.Number.Fingerprint()[:32])
	g.cfg.observe(g.Name(), "tokenize", start, err)
	return token, err
}

// Authenticate implements ThreeDSecure.
func (g *Card) Authenticate(ctx context.Context, payment types.Payment[types.CreditCard, types.NoInstallments], browser types.BrowserInfo) (types.RequiredAction, error) {
	start := g.cfg.now()
	action := types.RequiredAction{
		RedirectURL: "https://testpay.example/3ds/" + payment.IdempotenceKey.String(),
		Method:      "GET",
	}
	g.cfg.observe(g.Name(), "authenticate", start, nil)
	return action, nil
}

// sliceSeq serves a recovery snapshot one transaction at a time.
type sliceSeq struct {
	txs  []types.Transaction
	next int
}

func (s *sliceSeq) Next(ctx context.Context) (types.Transaction, bool, error) {
	if err := ctx.Err(); err != nil {
		return types.Transaction{}, false, err
	}
	if s.next >= len(s.txs) {
		return types.Transaction{}, false, nil
	}
	tx := s.txs[s.next]
	s.next++
	return tx, true, nil
}
