//go:build compilefail

package compiletest

import (
	"context"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/types"
)

// A cash voucher only completes out of band. Instantiating the synchronous
// flow with it must not compile: types.CashVoucher does not satisfy
// types.SyncMethod.
func chargeVoucher(
	g merchant.ImmediatePayments[types.CashVoucher, types.NoDistribution, types.NoInstallments],
	p types.Payment[types.CashVoucher, types.NoInstallments],
) (types.Transaction, error) {
	return g.Charge(context.Background(), p, types.NoDistribution{})
}
