package testpay

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

func testCard(t *testing.T) types.CreditCard {
	t.Helper()
	pan, err := secure.NewPAN("4242424242424242")
	require.NoError(t, err)
	cvv, err := secure.NewCVV("123")
	require.NoError(t, err)
	name, err := secure.NewCardHolderName("JOHN DOE")
	require.NoError(t, err)
	expiry, err := types.NewCardExpiry(12, 2031)
	require.NoError(t, err)
	return types.CreditCard{Number: pan, CVV: cvv, Expiry: expiry, HolderName: name}
}

func testPayment(t *testing.T, amount, key string) types.Payment[types.CreditCard, types.NoInstallments] {
	t.Helper()
	money, err := types.NewMoney(decimal.RequireFromString(amount), "USD")
	require.NoError(t, err)
	k, err := types.NewIdempotenceKey(key)
	require.NoError(t, err)
	return types.Payment[types.CreditCard, types.NoInstallments]{
		Method:         testCard(t),
		Amount:         money,
		IdempotenceKey: k,
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var merr *merchant.Error
	require.True(t, errors.As(err, &merr), "expected *merchant.Error, got %v", err)
	return merr.Code
}

func TestChargeSettlesImmediately(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Charge(ctx, testPayment(t, "25.00", "order-1"), types.NoDistribution{})
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, tx.Status)
	assert.Equal(t, types.FlowImmediate, tx.Flow)
	assert.True(t, decimal.RequireFromString("25.00").Equal(tx.Amount.Amount))

	got, err := g.Status(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, types.StatusCaptured, got.Status)
}

func TestChargeMetadataCarriesMaskedCardOnly(t *testing.T) {
	g := NewCard()

	tx, err := g.Charge(context.Background(), testPayment(t, "10.00", "order-1"), types.NoDistribution{})
	require.NoError(t, err)
	assert.Equal(t, "424242********4242", tx.Metadata["card"])
}

func TestCaptureFullWhenAmountIsNull(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "100.00", "order-2"), types.NoDistribution{})
	require.NoError(t, err)
	require.Equal(t, types.StatusAuthorized, tx.Status)

	captured, err := g.Capture(ctx, tx.ID, merchant.PartialAmount{}, types.NoDistribution{})
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, captured.Status)
	assert.True(t, decimal.RequireFromString("100.00").Equal(captured.Amount.Amount))
}

func TestCapturePartialAmount(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "100.00", "order-3"), types.NoDistribution{})
	require.NoError(t, err)

	partial := merchant.PartialAmount{
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("40.00")),
	}
	captured, err := g.Capture(ctx, tx.ID, partial, types.NoDistribution{})
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, captured.Status)
	assert.True(t, decimal.RequireFromString("40.00").Equal(captured.Amount.Amount))
}

func TestCaptureAboveAuthorizationFails(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "100.00", "order-4"), types.NoDistribution{})
	require.NoError(t, err)

	over := merchant.PartialAmount{
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("100.01")),
	}
	_, err = g.Capture(ctx, tx.ID, over, types.NoDistribution{})
	assert.Equal(t, merchant.ErrAmountExceedsAuthorized, errCode(t, err))

	// The failed capture must not consume the authorization.
	captured, err := g.Capture(ctx, tx.ID, merchant.PartialAmount{}, types.NoDistribution{})
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, captured.Status)
}

func TestCaptureTwiceFails(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "50.00", "order-5"), types.NoDistribution{})
	require.NoError(t, err)
	_, err = g.Capture(ctx, tx.ID, merchant.PartialAmount{}, types.NoDistribution{})
	require.NoError(t, err)

	_, err = g.Capture(ctx, tx.ID, merchant.PartialAmount{}, types.NoDistribution{})
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestEditAuthorizationChangesTheTotal(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "100.00", "order-6"), types.NoDistribution{})
	require.NoError(t, err)

	edited, err := g.EditAuthorization(ctx, tx.ID, decimal.RequireFromString("150.00"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.00").Equal(edited.Amount.Amount))

	// The raised total is now capturable.
	partial := merchant.PartialAmount{
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("150.00")),
	}
	captured, err := g.Capture(ctx, tx.ID, partial, types.NoDistribution{})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.00").Equal(captured.Amount.Amount))
}

func TestEditAuthorizationRejectsNonPositiveTotal(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "100.00", "order-7"), types.NoDistribution{})
	require.NoError(t, err)

	_, err = g.EditAuthorization(ctx, tx.ID, decimal.Zero)
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))
}

func TestRefundCapturedTransaction(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Charge(ctx, testPayment(t, "30.00", "order-8"), types.NoDistribution{})
	require.NoError(t, err)

	ref, err := types.NewMerchantReferenceID("dispute-8841")
	require.NoError(t, err)
	refunded, err := g.Refund(ctx, tx.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, types.StatusRefunded, refunded.Status)
	assert.Equal(t, "dispute-8841", refunded.Metadata["refund_reference"])
}

func TestRefundUncapturedTransactionFails(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "30.00", "order-9"), types.NoDistribution{})
	require.NoError(t, err)

	ref, err := types.NewMerchantReferenceID("dispute-0001")
	require.NoError(t, err)
	_, err = g.Refund(ctx, tx.ID, ref)
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestVoidReleasesAuthorization(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "60.00", "order-10"), types.NoDistribution{})
	require.NoError(t, err)

	voided, err := g.Void(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusVoided, voided.Status)

	_, err = g.Capture(ctx, tx.ID, merchant.PartialAmount{}, types.NoDistribution{})
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestVoidCapturedTransactionFails(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Charge(ctx, testPayment(t, "60.00", "order-11"), types.NoDistribution{})
	require.NoError(t, err)

	_, err = g.Void(ctx, tx.ID)
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestStatusUnknownTransaction(t *testing.T) {
	g := NewCard()

	id, err := types.NewTransactionID("tp_missing")
	require.NoError(t, err)
	_, err = g.Status(context.Background(), id)
	assert.Equal(t, merchant.ErrTransactionNotFound, errCode(t, err))
}

func TestRecoverUnknownKeyYieldsEmptySequence(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	key, err := types.NewIdempotenceKey("never-used")
	require.NoError(t, err)
	seq, err := g.Transactions(ctx, key)
	require.NoError(t, err, "a key matching nothing is an empty result, not a failure")

	_, ok, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Exhaustion is sticky.
	_, ok, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecoverFindsAllTransactionsForKey(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	first, err := g.Charge(ctx, testPayment(t, "10.00", "retried-order"), types.NoDistribution{})
	require.NoError(t, err)
	second, err := g.Charge(ctx, testPayment(t, "10.00", "retried-order"), types.NoDistribution{})
	require.NoError(t, err)
	_, err = g.Charge(ctx, testPayment(t, "99.00", "unrelated"), types.NoDistribution{})
	require.NoError(t, err)

	key, err := types.NewIdempotenceKey("retried-order")
	require.NoError(t, err)
	seq, err := g.Transactions(ctx, key)
	require.NoError(t, err)

	var ids []types.TransactionID
	for {
		tx, ok, err := seq.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		ids = append(ids, tx.ID)
	}
	assert.ElementsMatch(t, []types.TransactionID{first.ID, second.ID}, ids)
}

func TestRecoverSequenceHonorsContextCancellation(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	_, err := g.Charge(ctx, testPayment(t, "10.00", "order-12"), types.NoDistribution{})
	require.NoError(t, err)

	key, err := types.NewIdempotenceKey("order-12")
	require.NoError(t, err)
	seq, err := g.Transactions(ctx, key)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = seq.Next(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenizeIsStableForTheSameCard(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	first, err := g.Tokenize(ctx, testCard(t))
	require.NoError(t, err)
	second, err := g.Tokenize(ctx, testCard(t))
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	otherPAN, err := secure.NewPAN("5555555555554444")
	require.NoError(t, err)
	other := testCard(t)
	other.Number = otherPAN
	third, err := g.Tokenize(ctx, other)
	require.NoError(t, err)
	assert.False(t, first.Equal(third))
}

func TestAuthenticateReturnsChallenge(t *testing.T) {
	g := NewCard()

	action, err := g.Authenticate(context.Background(), testPayment(t, "20.00", "order-13"), types.BrowserInfo{
		UserAgent: "Mozilla/5.0",
		Language:  "en-US",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, action.RedirectURL)
	assert.Equal(t, "GET", action.Method)
}

func TestReturnedTransactionIsNotMutatedByLaterOperations(t *testing.T) {
	g := NewCard()
	ctx := context.Background()

	tx, err := g.Charge(ctx, testPayment(t, "30.00", "order-16"), types.NoDistribution{})
	require.NoError(t, err)
	fromStatus, err := g.Status(ctx, tx.ID)
	require.NoError(t, err)

	ref, err := types.NewMerchantReferenceID("dispute-0042")
	require.NoError(t, err)
	refunded, err := g.Refund(ctx, tx.ID, ref)
	require.NoError(t, err)
	require.Equal(t, "dispute-0042", refunded.Metadata["refund_reference"])

	// The values handed out before the refund are owned by the caller;
	// the refund must not reach back into them.
	assert.NotContains(t, tx.Metadata, "refund_reference")
	assert.NotContains(t, fromStatus.Metadata, "refund_reference")
	assert.Equal(t, types.StatusCaptured, tx.Status)

	// Mutating a returned map must not leak into the stored record.
	tx.Metadata["card"] = "overwritten"
	after, err := g.Status(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "424242********4242", after.Metadata["card"])
}

func splitRecipients(t *testing.T, shares ...string) types.DistributionWithRecipients {
	t.Helper()
	values := make([]types.DistributedValue, len(shares))
	for i, s := range shares {
		values[i] = types.DistributedValue{
			Recipient: fmt.Sprintf("seller-%d", i+1),
			Value:     decimal.RequireFromString(s),
		}
	}
	r, err := types.NewRecipients(values)
	require.NoError(t, err)
	return types.DistributionWithRecipients{Recipients: r}
}

func TestSplitChargeRequiresExactDistribution(t *testing.T) {
	g := NewSplit()
	ctx := context.Background()

	tx, err := g.Charge(ctx, testPayment(t, "100.00", "order-17"), splitRecipients(t, "70.00", "30.00"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, tx.Status)
	assert.Equal(t, "2", tx.Metadata["recipients"])

	// Shares summing below or above the amount are rejected.
	_, err = g.Charge(ctx, testPayment(t, "100.00", "order-18"), splitRecipients(t, "70.00", "29.99"))
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))
	_, err = g.Charge(ctx, testPayment(t, "100.00", "order-19"), splitRecipients(t, "70.00", "30.01"))
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))

	// An empty distribution never moves money.
	_, err = g.Charge(ctx, testPayment(t, "100.00", "order-20"), types.DistributionWithRecipients{})
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))
}

func TestSplitAdjustPaymentRewritesPendingDistribution(t *testing.T) {
	g := NewSplit()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "100.00", "order-21"), splitRecipients(t, "100.00"))
	require.NoError(t, err)

	adjusted, err := g.AdjustPayment(ctx, tx.ID, splitRecipients(t, "60.00", "40.00"))
	require.NoError(t, err)
	assert.Equal(t, "2", adjusted.Metadata["recipients"])

	got, err := g.Recipients(tx.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, decimal.RequireFromString("100.00").Equal(got.Total()))

	// The rewritten distribution still must cover the authorized amount.
	_, err = g.AdjustPayment(ctx, tx.ID, splitRecipients(t, "60.00", "39.00"))
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))

	// Once captured the distribution is settled and no longer adjustable.
	_, err = g.Capture(ctx, tx.ID, merchant.FullAmount{}, splitRecipients(t, "60.00", "40.00"))
	require.NoError(t, err)
	_, err = g.AdjustPayment(ctx, tx.ID, splitRecipients(t, "100.00"))
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestSplitCaptureVerifiesRedistribution(t *testing.T) {
	g := NewSplit()
	ctx := context.Background()

	tx, err := g.Authorize(ctx, testPayment(t, "50.00", "order-22"), splitRecipients(t, "50.00"))
	require.NoError(t, err)

	_, err = g.Capture(ctx, tx.ID, merchant.FullAmount{}, splitRecipients(t, "25.00"))
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))

	captured, err := g.Capture(ctx, tx.ID, merchant.FullAmount{}, splitRecipients(t, "25.00", "25.00"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, captured.Status)
}

type recordingMetrics struct {
	ops map[string]int
}

func (r *recordingMetrics) IncOperation(gateway, operation, outcome string) {
	if r.ops == nil {
		r.ops = make(map[string]int)
	}
	r.ops[gateway+"/"+operation+"/"+outcome]++
}

func (r *recordingMetrics) ObserveLatency(string, string, time.Duration) {}

func TestOperationsAreRecorded(t *testing.T) {
	rec := &recordingMetrics{}
	g := NewCard(WithMetrics(rec))
	ctx := context.Background()

	tx, err := g.Charge(ctx, testPayment(t, "10.00", "order-15"), types.NoDistribution{})
	require.NoError(t, err)
	_, err = g.Status(ctx, tx.ID)
	require.NoError(t, err)
	_, err = g.Void(ctx, tx.ID)
	require.Error(t, err)

	assert.Equal(t, 1, rec.ops["testpay-card/charge/ok"])
	assert.Equal(t, 1, rec.ops["testpay-card/status/ok"])
	assert.Equal(t, 1, rec.ops["testpay-card/void/"+merchant.ErrInvalidTransactionState])
}

func TestDeterministicIDsAndClock(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	g := NewCard(
		WithClock(func() time.Time { return at }),
		WithIDGenerator(func() string {
			n++
			return "tp_fixed_" + string(rune('0'+n))
		}),
	)

	tx, err := g.Charge(context.Background(), testPayment(t, "10.00", "order-14"), types.NoDistribution{})
	require.NoError(t, err)
	assert.Equal(t, "tp_fixed_1", tx.ID.String())
}
