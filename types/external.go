package types

import "time"

// ExternalPaymentKind classifies how the customer completes an external
// payment.
type ExternalPaymentKind string

const (
	CompletionRedirect     ExternalPaymentKind = "redirect"
	CompletionVoucher      ExternalPaymentKind = "voucher"
	CompletionQRCode       ExternalPaymentKind = "qr_code"
	CompletionBankTransfer ExternalPaymentKind = "bank_transfer"
)

// ExternalPaymentData is everything the client needs to guide the customer
// through completing an external payment: a redirect target, a voucher
// reference, or QR payload, with an expiry after which the attempt is void.
type ExternalPaymentData struct {
	Kind        ExternalPaymentKind
	RedirectURL string
	Reference   string
	ExpiresAt   time.Time
}

// ExternalPayment is the result of initiating an external flow. The
// transaction stays pending until the customer completes payment; completion
// is observed through status lookup, never through a return value.
type ExternalPayment struct {
	Transaction Transaction
	PaymentData ExternalPaymentData
}

// RequiredAction describes a 3-D Secure challenge the customer must pass
// before authorization can proceed.
type RequiredAction struct {
	RedirectURL string
	// Method is the HTTP method for the challenge redirect, usually GET
	// for 3DS2 and POST for legacy flows.
	Method string
}

// BrowserInfo is the customer browser fingerprint a 3-D Secure
// authentication requires.
type BrowserInfo struct {
	AcceptHeader   string
	UserAgent      string
	Language       string
	ColorDepth     int
	ScreenHeight   int
	ScreenWidth    int
	TimezoneOffset int
	JavaEnabled    bool
}
