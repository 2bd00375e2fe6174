//go:build compilefail

package compiletest

import (
	"context"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/gateways/testpay"
	"github.com/finbridge/merchant/types"
)

// testpay.Card binds NoDistribution. Handing it to a caller that requires
// recipient distribution must not compile, and there is no distribution
// value that converts between the two bindings.
func splitCharge(
	g merchant.ImmediatePayments[types.CreditCard, types.DistributionWithRecipients, types.NoInstallments],
	p types.Payment[types.CreditCard, types.NoInstallments],
	r types.Recipients,
) (types.Transaction, error) {
	return g.Charge(context.Background(), p, types.DistributionWithRecipients{Recipients: r})
}

func useCardGatewayWithRecipients(card *testpay.Card, p types.Payment[types.CreditCard, types.NoInstallments], r types.Recipients) {
	splitCharge(card, p, r)
}
