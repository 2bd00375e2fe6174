package inputs

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

func validTransaction() Transaction {
	return Transaction{
		ID:             "psp_0042",
		IdempotenceKey: "order-42",
		Status:         "captured",
		Amount:         "19.99",
		Currency:       "USD",
		Flow:           "immediate",
	}
}

func TestTransactionConvert(t *testing.T) {
	tx, err := validTransaction().Convert()
	require.NoError(t, err)
	assert.Equal(t, "psp_0042", tx.ID.String())
	assert.Equal(t, types.StatusCaptured, tx.Status)
	assert.Equal(t, types.FlowImmediate, tx.Flow)
	assert.True(t, decimal.RequireFromString("19.99").Equal(tx.Amount.Amount))
	assert.Empty(t, tx.Initiated)
}

func TestTransactionConvertWithInitiated(t *testing.T) {
	in := validTransaction()
	in.Initiated = "recurring"
	tx, err := in.Convert()
	require.NoError(t, err)
	assert.Equal(t, types.MITRecurring, tx.Initiated)
}

func TestTransactionConvertRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"unknown status", func(tx *Transaction) { tx.Status = "settled" }},
		{"unknown flow", func(tx *Transaction) { tx.Flow = "batch" }},
		{"unknown initiated", func(tx *Transaction) { tx.Initiated = "manual" }},
		{"malformed amount", func(tx *Transaction) { tx.Amount = "19.99 USD" }},
		{"negative amount", func(tx *Transaction) { tx.Amount = "-19.99" }},
		{"short id", func(tx *Transaction) { tx.ID = "x1" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validTransaction()
			tc.mutate(&in)
			_, err := in.Convert()
			var verr *secure.ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
		})
	}
}

func TestParseTransaction(t *testing.T) {
	in, err := ParseTransaction([]byte(`{
		"ID": "psp_0042",
		"IdempotenceKey": "order-42",
		"Status": "authorized",
		"Amount": "100.00",
		"Currency": "EUR",
		"Flow": "deferred"
	}`))
	require.NoError(t, err)
	tx, err := in.Convert()
	require.NoError(t, err)
	assert.Equal(t, types.StatusAuthorized, tx.Status)
}

func TestParseCreditCardRejectsMalformedJSON(t *testing.T) {
	_, err := ParseCreditCard([]byte(`{"Number": `))
	var verr *secure.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, secure.RuleFormat, verr.Rule)
	// Malformed payloads may hold card data; the error must not echo them.
	assert.NotContains(t, verr.Message, "Number")
}
