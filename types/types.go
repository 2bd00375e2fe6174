// Package types defines the canonical, validated data structures exchanged
// between client code and payment gateway adapters: money, identifiers,
// payment-method variants, and transaction records.
//
// Values in this package are owned and validated. Clients do not construct
// them field by field; they build the unvalidated shapes in package inputs
// and convert. Adapters receive these types and map them to provider wire
// formats.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbridge/merchant/secure"
)

// Currency is an ISO 4217 alpha-3 currency code.
type Currency string

// ParseCurrency validates the alpha-3 shape of a currency code. Whether the
// code is active is a catalog concern outside this layer.
func ParseCurrency(s string) (Currency, error) {
	if len(s) != 3 {
		return "", &secure.ValidationError{
			Type:    "Currency",
			Rule:    secure.RuleLength,
			Message: "Currency must be a three-letter ISO 4217 code",
		}
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", &secure.ValidationError{
				Type:    "Currency",
				Rule:    secure.RuleCharset,
				Message: "Currency must be three uppercase letters",
			}
		}
	}
	return Currency(s), nil
}

// Money is an amount in a specific currency. Amounts are decimal, never
// floating point.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney builds a non-negative amount in the given currency.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, &secure.ValidationError{
			Type:    "Money",
			Rule:    secure.RuleFormat,
			Message: "Money amount cannot be negative",
		}
	}
	if currency == "" {
		return Money{}, &secure.ValidationError{
			Type:    "Money",
			Rule:    secure.RuleFormat,
			Message: "Money requires a currency",
		}
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}

// Metadata carries free-form flow annotations on payments and transactions.
type Metadata map[string]string

// Clone returns an independent copy so converted values never share maps
// with their inputs.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func validateIdentifier(name, s string, min, max int) error {
	if len(s) < min || len(s) > max {
		return &secure.ValidationError{
			Type:    name,
			Rule:    secure.RuleLength,
			Message: fmt.Sprintf("%s length must be between %d and %d characters", name, min, max),
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c == '-' || c == '_' || c == '.' || c == ':'
		if !ok {
			return &secure.ValidationError{
				Type:    name,
				Rule:    secure.RuleCharset,
				Message: fmt.Sprintf("%s contains a character outside its allowed set", name),
			}
		}
	}
	return nil
}

// TransactionID is the unique identifier a gateway assigns to a transaction.
type TransactionID string

// NewTransactionID validates the identifier shape.
func NewTransactionID(raw string) (TransactionID, error) {
	if err := validateIdentifier("TransactionID", raw, 6, 255); err != nil {
		return "", err
	}
	return TransactionID(raw), nil
}

func (id TransactionID) String() string { return string(id) }

// IdempotenceKey is the client-supplied deduplication token accompanying a
// payment. It is not guaranteed unique: retries may produce duplicates, which
// is why recovery searches return a sequence rather than a single record.
type IdempotenceKey string

// NewIdempotenceKey validates the key shape.
func NewIdempotenceKey(raw string) (IdempotenceKey, error) {
	if err := validateIdentifier("IdempotenceKey", raw, 1, 255); err != nil {
		return "", err
	}
	return IdempotenceKey(raw), nil
}

func (k IdempotenceKey) String() string { return string(k) }

// MerchantReferenceID correlates a refund or adjustment with the merchant's
// own bookkeeping.
type MerchantReferenceID string

// NewMerchantReferenceID validates the reference shape.
func NewMerchantReferenceID(raw string) (MerchantReferenceID, error) {
	if err := validateIdentifier("MerchantReferenceID", raw, 1, 255); err != nil {
		return "", err
	}
	return MerchantReferenceID(raw), nil
}

func (r MerchantReferenceID) String() string { return string(r) }

// CustomerID identifies a customer within the merchant's own system.
type CustomerID string

// NewCustomerID validates the identifier shape.
func NewCustomerID(raw string) (CustomerID, error) {
	if err := validateIdentifier("CustomerID", raw, 1, 255); err != nil {
		return "", err
	}
	return CustomerID(raw), nil
}

func (c CustomerID) String() string { return string(c) }
