package merchant

import "fmt"

// Error codes carried by Error. Adapters map provider-specific failures onto
// these categories; codes are stable strings so callers can branch without
// parsing messages.
const (
	// ErrValidationFailed wraps an input or primitive validation failure
	// surfaced through a gateway boundary.
	ErrValidationFailed = "validation_failed"

	// ErrUnsupportedCapability reports use of a capability the bound types
	// do not support. Static binding prevents this within compiled code;
	// the code exists only for residual dynamic-dispatch boundaries and
	// must be surfaced, never swallowed.
	ErrUnsupportedCapability = "unsupported_capability"

	// ErrNetwork reports a transport failure talking to the provider.
	ErrNetwork = "network_error"

	// ErrProviderRejected reports a decline or rejection by the provider.
	ErrProviderRejected = "provider_rejected"

	// ErrFraudSuspected reports a fraud-screening block.
	ErrFraudSuspected = "fraud_suspected"

	// ErrTransactionNotFound reports a lookup for an unknown transaction.
	ErrTransactionNotFound = "transaction_not_found"

	// ErrInvalidTransactionState reports an operation applied to a
	// transaction whose status does not permit it, e.g. capturing a
	// voided authorization.
	ErrInvalidTransactionState = "invalid_transaction_state"

	// ErrAmountExceedsAuthorized reports a capture or adjustment above
	// the authorized amount.
	ErrAmountExceedsAuthorized = "amount_exceeds_authorized"
)

// Error is the error value every flow method returns on failure. Messages
// follow the same masking discipline as the primitives: they never contain
// exposed Tier 1-2 content.
type Error struct {
	// Code is one of the Err* constants.
	Code string
	// Message is a human-readable description safe for logs.
	Message string
	// Cause is the underlying error, if any. Opaque adapter-defined
	// errors travel here.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
