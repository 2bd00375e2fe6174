package merchant

import (
	"context"

	"github.com/finbridge/merchant/types"
)

// RefundPayments returns settled funds to the customer. Independent of the
// flow that produced the transaction.
type RefundPayments[D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Refund returns the settled amount. reference correlates the refund
	// with the merchant's bookkeeping.
	Refund(ctx context.Context, id types.TransactionID, reference types.MerchantReferenceID) (types.Transaction, error)
}

// CancelPayments voids a pending authorization or reverses a recent charge
// before settlement closes. Settled transactions need RefundPayments
// instead.
type CancelPayments[D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Void cancels the transaction and releases any reserved funds.
	Void(ctx context.Context, id types.TransactionID) (types.Transaction, error)
}

// AdjustPayments rewrites the recipient distribution of an authorized,
// uncaptured transaction. Only meaningful for gateways whose distribution
// binding carries recipients.
type AdjustPayments[D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// AdjustPayment replaces the pending distribution.
	AdjustPayment(ctx context.Context, id types.TransactionID, dist D) (types.Transaction, error)
}
