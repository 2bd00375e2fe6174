package merchant

import (
	"context"

	"github.com/finbridge/merchant/types"
)

// ImmediatePayments is the one-step flow: authorization and settlement as a
// single atomic operation. The method type parameter is bounded to
// synchronous-capable instruments, so handing an external-only instrument to
// Charge does not compile.
type ImmediatePayments[M types.SyncMethod, D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Charge debits the customer immediately. dist routes the amount
	// according to the gateway's distribution binding.
	Charge(ctx context.Context, payment types.Payment[M, I], dist D) (types.Transaction, error)
}
