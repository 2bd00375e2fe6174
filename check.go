package merchant

import (
	"context"

	"github.com/finbridge/merchant/types"
)

// CheckTransaction is the only capability mandatory for every gateway.
// A transaction identifier is the universal primary key across real-world
// providers, so status lookup is the one operation every adapter can
// perform. It backs webhook verification, reconciliation, external-flow
// polling, and support tooling.
type CheckTransaction[D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Status retrieves the current transaction record by its gateway ID.
	Status(ctx context.Context, id types.TransactionID) (types.Transaction, error)
}
