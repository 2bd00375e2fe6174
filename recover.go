package merchant

import (
	"context"

	"github.com/finbridge/merchant/types"
)

// TransactionSeq is a lazy, finite, forward-only sequence of transactions.
// It is not restartable; pagination is the adapter's concern behind Next.
// Stopping early is simply ceasing to call Next, and adapters must not leak
// resources when iteration stops before exhaustion.
type TransactionSeq interface {
	// Next returns the next transaction. ok is false once the sequence is
	// exhausted; after that every call keeps returning ok == false.
	Next(ctx context.Context) (tx types.Transaction, ok bool, err error)
}

// RecoverTransactions is the disaster-recovery capability: finding
// transactions by idempotence key after the gateway-assigned ID was lost
// (crash before persistence, database rollback, dropped response).
//
// The key is not guaranteed unique, so the search yields a sequence; a key
// matching nothing yields an empty sequence, not an error. Callers
// deduplicate the results themselves.
type RecoverTransactions[D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Transactions searches by idempotence key.
	Transactions(ctx context.Context, key types.IdempotenceKey) (TransactionSeq, error)
}
