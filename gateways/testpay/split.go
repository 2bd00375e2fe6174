package testpay

import (
	"context"
	"fmt"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/types"
)

var (
	_ merchant.CheckTransaction[types.DistributionWithRecipients, types.NoInstallments]                                                                     = (*Split)(nil)
	_ merchant.ImmediatePayments[types.CreditCard, types.DistributionWithRecipients, types.NoInstallments]                                                  = (*Split)(nil)
	_ merchant.DeferredPayments[types.CreditCard, merchant.FullAmount, merchant.ChangesNotSupported, types.DistributionWithRecipients, types.NoInstallments] = (*Split)(nil)
	_ merchant.AdjustPayments[types.DistributionWithRecipients, types.NoInstallments]                                                                       = (*Split)(nil)
)

// Split is the marketplace adapter: every money movement carries an
// explicit recipient distribution, and the shares must sum to the operation
// amount exactly. Captures are full-amount only and authorizations cannot
// be changed; the distribution of an uncaptured authorization can be
// rewritten through AdjustPayment.
type Split struct {
	cfg   config
	store *store
}

// NewSplit builds a marketplace adapter.
func NewSplit(opts ...Option) *Split {
	return &Split{cfg: newConfig(opts), store: newStore()}
}

func (g *Split) Name() string { return "testpay-split" }

func (g *Split) Distribution() types.DistributionWithRecipients {
	return types.DistributionWithRecipients{}
}

func (g *Split) InstallmentPlans() types.NoInstallments { return types.NoInstallments{} }

func (g *Split) AuthorizationChanges() merchant.ChangesNotSupported {
	return merchant.ChangesNotSupported{}
}

func (g *Split) newTransaction(p types.Payment[types.CreditCard, types.NoInstallments], status types.TransactionStatus, flow types.Flow, dist types.DistributionWithRecipients) (*record, error) {
	if err := dist.VerifyTotal(p.Amount.Amount); err != nil {
		return nil, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "recipient distribution does not cover the payment amount",
			Cause:   err,
		}
	}
	id, err := types.NewTransactionID(g.cfg.newID())
	if err != nil {
		return nil, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "generated transaction ID is malformed",
			Cause:   err,
		}
	}
	return &record{
		tx: types.Transaction{
			ID:             id,
			IdempotenceKey: p.IdempotenceKey,
			Status:         status,
			Amount:         p.Amount,
			Flow:           flow,
			Metadata: types.Metadata{
				"card":       p.Method.Number.PartialView(),
				"recipients": fmt.Sprintf("%d", len(dist.Recipients)),
			},
		},
		authorized: p.Amount.Amount,
		recipients: dist.Recipients,
	}, nil
}

// Status implements CheckTransaction.
func (g *Split) Status(ctx context.Context, id types.TransactionID) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.store.transaction(id)
	g.cfg.observe(g.Name(), "status", start, err)
	return tx, err
}

// Charge implements ImmediatePayments. The distribution is verified against
// the payment amount before anything settles.
func (g *Split) Charge(ctx context.Context, payment types.Payment[types.CreditCard, types.NoInstallments], dist types.DistributionWithRecipients) (types.Transaction, error) {
	start := g.cfg.now()
	r, err := g.newTransaction(payment, types.StatusCaptured, types.FlowImmediate, dist)
	if err != nil {
		g.cfg.observe(g.Name(), "charge", start, err)
		return types.Transaction{}, err
	}
	g.store.put(r)
	g.cfg.observe(g.Name(), "charge", start, nil)
	return r.snapshot(), nil
}

// Authorize implements DeferredPayments.
func (g *Split) Authorize(ctx context.Context, payment types.Payment[types.CreditCard, types.NoInstallments], dist types.DistributionWithRecipients) (types.Transaction, error) {
	start := g.cfg.now()
	r, err := g.newTransaction(payment, types.StatusAuthorized, types.FlowDeferred, dist)
	if err != nil {
		g.cfg.observe(g.Name(), "authorize", start, err)
		return types.Transaction{}, err
	}
	g.store.put(r)
	g.cfg.observe(g.Name(), "authorize", start, nil)
	return r.snapshot(), nil
}

// Capture implements DeferredPayments. Captures are full-amount; a fresh
// distribution may redistribute the captured amount and is verified against
// the authorized total.
func (g *Split) Capture(ctx context.Context, id types.TransactionID, _ merchant.FullAmount, dist types.DistributionWithRecipients) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.capture(id, dist)
	g.cfg.observe(g.Name(), "capture", start, err)
	return tx, err
}

func (g *Split) capture(id types.TransactionID, dist types.DistributionWithRecipients) (types.Transaction, error) {
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
	if err := dist.VerifyTotal(r.authorized); err != nil {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "recipient distribution does not cover the authorized amount",
			Cause:   err,
		}
	}
	r.tx.Status = types.StatusCaptured
	r.recipients = dist.Recipients
	r.tx.Metadata["recipients"] = fmt.Sprintf("%d", len(dist.Recipients))
	return r.snapshot(), nil
}

// AdjustPayment implements AdjustPayments: it rewrites the pending
// distribution of an authorized, uncaptured transaction.
func (g *Split) AdjustPayment(ctx context.Context, id types.TransactionID, dist types.DistributionWithRecipients) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.adjustPayment(id, dist)
	g.cfg.observe(g.Name(), "adjust_payment", start, err)
	return tx, err
}

func (g *Split) adjustPayment(id types.TransactionID, dist types.DistributionWithRecipients) (types.Transaction, error) {
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
			Message: fmt.Sprintf("cannot adjust the distribution of a %s transaction", r.tx.Status),
		}
	}
	if err := dist.VerifyTotal(r.authorized); err != nil {
		return types.Transaction{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "recipient distribution does not cover the authorized amount",
			Cause:   err,
		}
	}
	r.recipients = dist.Recipients
	r.tx.Metadata["recipients"] = fmt.Sprintf("%d", len(dist.Recipients))
	return r.snapshot(), nil
}

// Recipients returns the distribution currently pending for the
// transaction.
func (g *Split) Recipients(id types.TransactionID) (types.Recipients, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	r, ok := g.store.txs[id]
	if !ok {
		return nil, &merchant.Error{
			Code:    merchant.ErrTransactionNotFound,
			Message: fmt.Sprintf("no transaction %s", id),
		}
	}
	out := make(types.Recipients, len(r.recipients))
	copy(out, r.recipients)
	return out, nil
}
