package merchant

import (
	"context"

	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

// TokenizePaymentSources exchanges a payment instrument for a vault token.
// The method type parameter is bounded to tokenizable instruments; the
// capability itself is orthogonal to flow shape. The returned token charges
// through the StoredCard variant.
type TokenizePaymentSources[M types.TokenizableMethod, D types.DistributionMode, I types.InstallmentsMode] interface {
	Gateway[D, I]

	// Tokenize stores the instrument in the provider vault and returns
	// the token standing in for it.
	Tokenize(ctx context.Context, method M) (secure.PaymentToken, error)
}
