package merchant

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finbridge/merchant/types"
)

// CaptureMode is the sealed marker for the captured-amount slot of the
// deferred flow. The variation is local to Capture, so the marker lives on
// DeferredPayments rather than on Gateway.
type CaptureMode interface {
	isCaptureMode()
}

// FullAmount is the capture mode of gateways that only capture exactly the
// authorized amount. It carries no data.
type FullAmount struct{}

func (FullAmount) isCaptureMode() {}

// PartialAmount is the capture mode of gateways that accept an optional
// capture amount: a null amount captures the full authorization, a valid
// amount captures that portion. Both go through the same Capture method
// without any runtime capability branch.
type PartialAmount struct {
	Amount decimal.NullDecimal
}

func (PartialAmount) isCaptureMode() {}

// DeferredPayments is the two-step flow: Authorize reserves funds, Capture
// debits them.
//
// A is the captured-amount mode binding. C is the authorization-change model
// binding; the AuthorizationChanges witness pins it, which is what makes
// EditAuthorization and AdjustAuthorization mutually exclusive on a single
// adapter (see changes.go).
type DeferredPayments[M types.SyncMethod, A CaptureMode, C AuthorizationChanges, D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// AuthorizationChanges witnesses the authorization-change binding.
	AuthorizationChanges() C

	// Authorize reserves funds without debiting them. The reservation
	// stays open until captured, voided, or expired by the provider.
	Authorize(ctx context.Context, payment types.Payment[M, I], dist D) (types.Transaction, error)

	// Capture debits previously reserved funds. amount selects full or
	// partial capture per the gateway's capture-mode binding; dist may
	// redistribute the captured amount where the distribution binding
	// supports it.
	Capture(ctx context.Context, id types.TransactionID, amount A, dist D) (types.Transaction, error)
}
