package inputs

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbridge/merchant/secure"
	"github.com/finbridge/merchant/types"
)

// Transaction is the adapter-facing input shape for building a canonical
// transaction record from provider response strings.
type Transaction struct {
	ID             string `validate:"required"`
	IdempotenceKey string `validate:"required"`
	Status         string `validate:"required"`
	Amount         string `validate:"required"`
	Currency       string `validate:"required,len=3"`
	Flow           string `validate:"required,oneof=immediate deferred external"`
	Initiated      string `validate:"omitempty,oneof=recurring installment unscheduled"`
	Metadata       map[string]string
}

var knownStatuses = map[types.TransactionStatus]struct{}{
	types.StatusAuthorized: {},
	types.StatusCaptured:   {},
	types.StatusPending:    {},
	types.StatusFailed:     {},
	types.StatusVoided:     {},
	types.StatusRefunded:   {},
}

// Convert validates every field and produces the owned transaction record.
func (in Transaction) Convert() (types.Transaction, error) {
	var zero types.Transaction
	if err := validate.Struct(in); err != nil {
		return zero, convErr("Transaction", err)
	}
	id, err := types.NewTransactionID(in.ID)
	if err != nil {
		return zero, err
	}
	key, err := types.NewIdempotenceKey(in.IdempotenceKey)
	if err != nil {
		return zero, err
	}
	status := types.TransactionStatus(in.Status)
	if _, ok := knownStatuses[status]; !ok {
		return zero, &secure.ValidationError{
			Type:    "Transaction",
			Rule:    secure.RuleFormat,
			Message: fmt.Sprintf("Transaction status %q is not a canonical status", in.Status),
		}
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return zero, &secure.ValidationError{
			Type:    "Transaction",
			Rule:    secure.RuleFormat,
			Message: "Transaction amount is not a valid decimal",
		}
	}
	currency, err := types.ParseCurrency(in.Currency)
	if err != nil {
		return zero, err
	}
	money, err := types.NewMoney(amount, currency)
	if err != nil {
		return zero, err
	}
	return types.Transaction{
		ID:             id,
		IdempotenceKey: key,
		Status:         status,
		Amount:         money,
		Flow:           types.Flow(in.Flow),
		Initiated:      types.MerchantInitiatedType(in.Initiated),
		Metadata:       types.Metadata(in.Metadata).Clone(),
	}, nil
}
