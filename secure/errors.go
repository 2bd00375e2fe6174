package secure

// Validation rule identifiers carried by ValidationError. Stable strings so
// callers can branch on the violated invariant without parsing messages.
const (
	RuleLength   = "length"
	RuleCharset  = "charset"
	RuleChecksum = "checksum"
	RuleFormat   = "format"
)

// ValidationError reports a violated structural invariant during wrapper
// construction. Construction is all-or-nothing: no partially built wrapper
// ever exists alongside this error. The message names the type and the rule,
// never any fragment of the rejected input.
type ValidationError struct {
	// Type is the wrapper type name, e.g. "PAN".
	Type string
	// Rule is one of the Rule* constants.
	Rule string
	// Message is a human-readable description safe for logs.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
