package merchant

import (
	"context"

	"github.com/finbridge/merchant/types"
)

// ExternalPayments is the asynchronous flow for instruments that complete
// outside the direct call: redirects, vouchers, QR codes, manual transfers.
// The method type parameter is bounded to external-capable instruments.
//
// Initiate returns the pending transaction together with the data the
// customer needs to complete it. Completion is observed later through
// CheckTransaction, never through a return value here.
type ExternalPayments[M types.ExternalMethod, D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Initiate creates the pending transaction and returns the
	// completion data to present to the customer.
	Initiate(ctx context.Context, payment types.Payment[M, I]) (types.ExternalPayment, error)

	// PaymentData re-retrieves the completion data for a previously
	// initiated transaction, e.g. to re-display an unexpired voucher.
	PaymentData(ctx context.Context, id types.TransactionID) (types.ExternalPaymentData, error)
}
