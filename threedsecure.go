package merchant

import (
	"context"

	"github.com/finbridge/merchant/types"
)

// ThreeDSecure is the customer-authentication capability. Orthogonal to flow
// shape: a gateway may offer it with either the immediate or the deferred
// flow.
//
// Authenticate starts the challenge; the customer completes it at the
// returned redirect, after which the payment proceeds through the regular
// flow methods.
type ThreeDSecure[M types.SyncMethod, D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Authenticate begins 3-D Secure authentication for the payment and
	// returns the challenge the customer must pass.
	Authenticate(ctx context.Context, payment types.Payment[M, I], browser types.BrowserInfo) (types.RequiredAction, error)
}
