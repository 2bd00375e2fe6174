package testpay

import (
	"context"
	"fmt"
	"strings"
	"time"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/types"
)

// voucherTTL is how long a generated voucher stays payable.
const voucherTTL = 72 * time.Hour

// Redirect is the external-flow adapter. It issues cash vouchers that are
// paid outside the API call; completion is simulated with Settle and
// observed through Status, the same way a webhook-driven integration would
// poll a real provider.
type Redirect struct {
	cfg   config
	store *store
}

// NewRedirect builds an external voucher adapter.
func NewRedirect(opts ...Option) *Redirect {
	return &Redirect{cfg: newConfig(opts), store: newStore()}
}

func (g *Redirect) Name() string { return "testpay-redirect" }

func (g *Redirect) Distribution() types.NoDistribution { return types.NoDistribution{} }

func (g *Redirect) InstallmentPlans() types.NoInstallments { return types.NoInstallments{} }

// Initiate implements ExternalPayments. The transaction starts pending and
// the returned voucher reference is what the customer pays against.
func (g *Redirect) Initiate(ctx context.Context, payment types.Payment[types.CashVoucher, types.NoInstallments]) (types.ExternalPayment, error) {
	start := g.cfg.now()
	ext, err := g.initiate(payment)
	g.cfg.observe(g.Name(), "initiate", start, err)
	return ext, err
}

func (g *Redirect) initiate(payment types.Payment[types.CashVoucher, types.NoInstallments]) (types.ExternalPayment, error) {
	raw := g.cfg.newID()
	id, err := types.NewTransactionID(raw)
	if err != nil {
		return types.ExternalPayment{}, &merchant.Error{
			Code:    merchant.ErrValidationFailed,
			Message: "generated transaction ID is malformed",
			Cause:   err,
		}
	}
	data := types.ExternalPaymentData{
		Kind:      types.CompletionVoucher,
		Reference: "vch-" + strings.TrimPrefix(raw, "tp_"),
		ExpiresAt: g.cfg.now().Add(voucherTTL),
	}
	tx := types.Transaction{
		ID:             id,
		IdempotenceKey: payment.IdempotenceKey,
		Status:         types.StatusPending,
		Amount:         payment.Amount,
		Flow:           types.FlowExternal,
	}
	g.store.put(&record{tx: tx, data: data})
	return types.ExternalPayment{Transaction: tx, PaymentData: data}, nil
}

// PaymentData implements ExternalPayments. Expired vouchers are still
// returned; the caller reads ExpiresAt.
func (g *Redirect) PaymentData(ctx context.Context, id types.TransactionID) (types.ExternalPaymentData, error) {
	start := g.cfg.now()
	data, err := g.store.paymentData(id)
	g.cfg.observe(g.Name(), "payment_data", start, err)
	return data, err
}

// Status implements CheckTransaction.
func (g *Redirect) Status(ctx context.Context, id types.TransactionID) (types.Transaction, error) {
	start := g.cfg.now()
	tx, err := g.store.transaction(id)
	g.cfg.observe(g.Name(), "status", start, err)
	return tx, err
}

// Settle marks a pending voucher as paid. It stands in for the out-of-band
// completion a real provider signals by webhook.
func (g *Redirect) Settle(id types.TransactionID) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	r, ok := g.store.txs[id]
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
	return nil
}
