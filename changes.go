package merchant

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finbridge/merchant/types"
)

// AuthorizationChanges is the sealed marker for the authorization-change
// model of the deferred flow. Providers change authorized amounts in one of
// two incompatible ways: by accepting a new total, or by accepting deltas.
// A gateway binds exactly one model; the two capability interfaces below
// each require a specific binding, so implementing both on the same adapter
// is a compile-time contradiction.
type AuthorizationChanges interface {
	isAuthorizationChanges()
}

// ChangesNotSupported is the default binding for gateways that cannot
// change an authorization after the fact.
type ChangesNotSupported struct{}

func (ChangesNotSupported) isAuthorizationChanges() {}

// ChangesByTotal is bound by gateways that accept the complete new
// authorization amount and derive the direction themselves.
type ChangesByTotal struct{}

func (ChangesByTotal) isAuthorizationChanges() {}

// ChangesByDelta is bound by gateways that accept increment and decrement
// amounts rather than a new total.
type ChangesByDelta struct{}

func (ChangesByDelta) isAuthorizationChanges() {}

// EditAuthorization is the change capability for total-based providers. It
// requires the ChangesByTotal binding on the underlying deferred flow.
type EditAuthorization[M types.SyncMethod, A CaptureMode, D types.DistributionMode, I types.InstallmentsMode] interface {
	DeferredPayments[M, A, ChangesByTotal, D, I]

	// EditAuthorization replaces the authorized amount with newTotal
	// before capture. The gateway derives whether funds are added or
	// released.
	EditAuthorization(ctx context.Context, id types.TransactionID, newTotal decimal.Decimal) (types.Transaction, error)
}

// AdjustAuthorization is the change capability for delta-based providers.
// It requires the ChangesByDelta binding on the underlying deferred flow.
type AdjustAuthorization[M types.SyncMethod, A CaptureMode, D types.DistributionMode, I types.InstallmentsMode] interface {
	DeferredPayments[M, A, ChangesByDelta, D, I]

	// IncrementAuthorization reserves additional funds on top of the
	// current authorization. delta must be positive.
	IncrementAuthorization(ctx context.Context, id types.TransactionID, delta decimal.Decimal) (types.Transaction, error)

	// DecrementAuthorization releases part of the reserved funds. delta
	// must be positive and not exceed the current authorization.
	DecrementAuthorization(ctx context.Context, id types.TransactionID, delta decimal.Decimal) (types.Transaction, error)
}
