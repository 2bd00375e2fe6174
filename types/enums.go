package types

// TransactionStatus is the canonical status of a transaction. Statuses are
// plain classifiers and render unmasked.
type TransactionStatus string

const (
	StatusAuthorized TransactionStatus = "authorized"
	StatusCaptured   TransactionStatus = "captured"
	StatusPending    TransactionStatus = "pending"
	StatusFailed     TransactionStatus = "failed"
	StatusVoided     TransactionStatus = "voided"
	StatusRefunded   TransactionStatus = "refunded"
)

// IsFinal reports whether the status can no longer change.
func (s TransactionStatus) IsFinal() bool {
	switch s {
	case StatusFailed, StatusVoided, StatusRefunded:
		return true
	}
	return false
}

func (s TransactionStatus) String() string { return string(s) }

// Flow is the completion shape of a payment operation.
type Flow string

const (
	// FlowImmediate settles authorization and capture as one atomic step.
	FlowImmediate Flow = "immediate"
	// FlowDeferred separates authorization from capture.
	FlowDeferred Flow = "deferred"
	// FlowExternal completes asynchronously via redirect, voucher, or
	// webhook; completion is observed through status lookup.
	FlowExternal Flow = "external"
)

func (f Flow) String() string { return string(f) }

// MerchantInitiatedType classifies transactions the merchant initiates with
// stored credentials, without the customer present.
type MerchantInitiatedType string

const (
	MITRecurring   MerchantInitiatedType = "recurring"
	MITInstallment MerchantInitiatedType = "installment"
	MITUnscheduled MerchantInitiatedType = "unscheduled"
)

// AccountType classifies a bank account for ACH-style debits.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
)

// AccountHolderType classifies the legal owner of a bank account.
type AccountHolderType string

const (
	HolderPersonal AccountHolderType = "personal"
	HolderBusiness AccountHolderType = "business"
)
