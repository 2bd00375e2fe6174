package cryptogate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merchant "github.com/finbridge/merchant"
	"github.com/finbridge/merchant/inputs"
	"github.com/finbridge/merchant/types"
)

const (
	depositAddr = "0x52908400098527886E0F7030069857D2E4169EE7"
	senderAddr  = "0x8617E340B3D01FA5F11F306F4090FD50E238070D"
	chainHash   = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
)

func testGateway(t *testing.T, opts ...Option) *Gateway {
	t.Helper()
	g, err := New(depositAddr, opts...)
	require.NoError(t, err)
	return g
}

func testPayment(t *testing.T, amount, key string) types.Payment[types.CryptoPayment, types.NoInstallments] {
	t.Helper()
	p, err := inputs.Payment[types.CryptoPayment, types.NoInstallments]{
		Amount:         amount,
		Currency:       "ETH",
		IdempotenceKey: key,
		Method:         inputs.CryptoPayment{Wallet: senderAddr, Currency: "ETH"},
	}.Convert()
	require.NoError(t, err)
	return p
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var merr *merchant.Error
	require.True(t, errors.As(err, &merr), "expected *merchant.Error, got %v", err)
	return merr.Code
}

func TestNewRejectsMalformedDepositAddress(t *testing.T) {
	_, err := New("not-an-address")
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))
}

func TestInitiateIssuesPaymentRequest(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := testGateway(t, WithClock(func() time.Time { return at }))

	ext, err := g.Initiate(context.Background(), testPayment(t, "1.5", "invoice-1"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, ext.Transaction.Status)
	assert.Equal(t, types.FlowExternal, ext.Transaction.Flow)
	assert.Equal(t, types.CompletionQRCode, ext.PaymentData.Kind)
	assert.Equal(t, "ethereum:"+depositAddr+"?value=1500000000000000000", ext.PaymentData.Reference)
	assert.Equal(t, at.Add(30*time.Minute), ext.PaymentData.ExpiresAt)
	// Only the masked sender address reaches the transaction record.
	assert.Equal(t, "0***D", ext.Transaction.Metadata["sender"])
}

func TestInitiateRejectsUnsupportedCurrency(t *testing.T) {
	g := testGateway(t)

	p, err := inputs.Payment[types.CryptoPayment, types.NoInstallments]{
		Amount:         "100",
		Currency:       "BTC",
		IdempotenceKey: "invoice-2",
		Method:         inputs.CryptoPayment{Wallet: senderAddr, Currency: "BTC"},
	}.Convert()
	require.NoError(t, err)

	_, err = g.Initiate(context.Background(), p)
	assert.Equal(t, merchant.ErrUnsupportedCapability, errCode(t, err))
}

func TestInitiateRejectsSubWeiPrecision(t *testing.T) {
	g := testGateway(t)

	_, err := g.Initiate(context.Background(), testPayment(t, "0.0000000000000000001", "invoice-3"))
	assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err))
}

func TestPaymentDataRedisplay(t *testing.T) {
	g := testGateway(t)
	ctx := context.Background()

	ext, err := g.Initiate(ctx, testPayment(t, "1.5", "invoice-4"))
	require.NoError(t, err)

	data, err := g.PaymentData(ctx, ext.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, ext.PaymentData, data)
}

func TestSettleCompletesPendingPayment(t *testing.T) {
	g := testGateway(t)
	ctx := context.Background()

	ext, err := g.Initiate(ctx, testPayment(t, "1.5", "invoice-5"))
	require.NoError(t, err)

	require.NoError(t, g.Settle(ext.Transaction.ID, chainHash))

	tx, err := g.Status(ctx, ext.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCaptured, tx.Status)
	assert.Equal(t, chainHash, tx.Metadata["chain_tx"])

	// Settling twice is a state error.
	err = g.Settle(ext.Transaction.ID, chainHash)
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestInitiatedTransactionIsNotMutatedBySettle(t *testing.T) {
	g := testGateway(t)
	ctx := context.Background()

	ext, err := g.Initiate(ctx, testPayment(t, "1.5", "invoice-8"))
	require.NoError(t, err)
	require.NoError(t, g.Settle(ext.Transaction.ID, chainHash))

	// The transaction returned by Initiate is owned by the caller; the
	// settlement must not reach back into it.
	assert.Equal(t, types.StatusPending, ext.Transaction.Status)
	assert.NotContains(t, ext.Transaction.Metadata, "chain_tx")

	// Nor can the caller's copy corrupt the stored record.
	ext.Transaction.Metadata["sender"] = "overwritten"
	tx, err := g.Status(ctx, ext.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "0***D", tx.Metadata["sender"])
	assert.Equal(t, chainHash, tx.Metadata["chain_tx"])
}

func TestSettleRejectsMalformedHash(t *testing.T) {
	g := testGateway(t)
	ctx := context.Background()

	ext, err := g.Initiate(ctx, testPayment(t, "1.5", "invoice-6"))
	require.NoError(t, err)

	for _, bad := range []string{"", "0x1234", "88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"} {
		err := g.Settle(ext.Transaction.ID, bad)
		assert.Equal(t, merchant.ErrValidationFailed, errCode(t, err), "hash %q", bad)
	}
}

func TestExpireFailsLapsedPayment(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := at
	g := testGateway(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	ext, err := g.Initiate(ctx, testPayment(t, "1.5", "invoice-7"))
	require.NoError(t, err)

	// Still within the quote window.
	err = g.Expire(ext.Transaction.ID)
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))

	now = at.Add(31 * time.Minute)
	require.NoError(t, g.Expire(ext.Transaction.ID))

	tx, err := g.Status(ctx, ext.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, tx.Status)

	// A failed payment can no longer be settled.
	err = g.Settle(ext.Transaction.ID, chainHash)
	assert.Equal(t, merchant.ErrInvalidTransactionState, errCode(t, err))
}

func TestDepositIsChecksummed(t *testing.T) {
	g, err := New("0x52908400098527886e0f7030069857d2e4169ee7")
	require.NoError(t, err)
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", g.Deposit())
}

func TestStatusUnknownTransaction(t *testing.T) {
	g := testGateway(t)

	id, err := types.NewTransactionID("cg_missing")
	require.NoError(t, err)
	_, err = g.Status(context.Background(), id)
	assert.Equal(t, merchant.ErrTransactionNotFound, errCode(t, err))
}
