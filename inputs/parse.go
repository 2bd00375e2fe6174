package inputs

import (
	"encoding/json"

	"github.com/finbridge/merchant/secure"
)

// parseJSON unmarshals into an input shape without validating it; Convert
// remains the single validation point.
func parseJSON[T any](shape string, data []byte) (*T, error) {
	var in T
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &secure.ValidationError{
			Type:    shape,
			Rule:    secure.RuleFormat,
			Message: shape + " is not valid JSON",
		}
	}
	return &in, nil
}

// ParseCreditCard reads a CreditCard input from JSON.
func ParseCreditCard(data []byte) (*CreditCard, error) {
	return parseJSON[CreditCard]("CreditCard", data)
}

// ParseBankPayment reads a BankPayment input from JSON.
func ParseBankPayment(data []byte) (*BankPayment, error) {
	return parseJSON[BankPayment]("BankPayment", data)
}

// ParseSEPA reads a SEPA input from JSON.
func ParseSEPA(data []byte) (*SEPA, error) {
	return parseJSON[SEPA]("SEPA", data)
}

// ParseTransaction reads a Transaction input from JSON.
func ParseTransaction(data []byte) (*Transaction, error) {
	return parseJSON[Transaction]("Transaction", data)
}
