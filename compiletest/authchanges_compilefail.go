//go:build compilefail

package compiletest

import (
	"context"

	"github.com/shopspring/decimal"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/gateways/testpay"
	"github.com/finbridge/merchant/types"
)

// testpay.Card binds ChangesByTotal through its AuthorizationChanges
// witness. Asserting the delta-based capability against it must not
// compile: one adapter cannot bind both change models, because a type can
// carry only one AuthorizationChanges method.
var _ merchant.AdjustAuthorization[types.CreditCard, merchant.PartialAmount, types.NoDistribution, types.NoInstallments] = (*testpay.Card)(nil)

// Passing a total-based gateway where a delta-based one is required must
// not compile either, even with the method set otherwise identical.
func releasePartially(
	g merchant.AdjustAuthorization[types.CreditCard, merchant.PartialAmount, types.NoDistribution, types.NoInstallments],
	id types.TransactionID,
) (types.Transaction, error) {
	return g.DecrementAuthorization(context.Background(), id, decimal.RequireFromString("10.00"))
}

func useTotalGatewayAsDelta(card *testpay.Card, id types.TransactionID) {
	releasePartially(card, id)
}
