package secure

var tokenClass = &class{
	name:     "PaymentToken",
	tier:     Tier2,
	minLen:   10,
	maxLen:   255,
	charset:  isTokenChar,
	sanitize: trimSpace,
}

// PaymentToken is a vault token issued in exchange for a payment method
// (Tier 2). Tokens are opaque provider identifiers, but they grant charging
// power, so they get the same first-6/last-4 discipline as a PAN.
type PaymentToken struct {
	value
}

// NewPaymentToken validates raw and wraps it.
func NewPaymentToken(raw string) (PaymentToken, error) {
	v, err := newValue(tokenClass, raw)
	if err != nil {
		return PaymentToken{}, err
	}
	return PaymentToken{v}, nil
}

// Equal compares content in constant time.
func (t PaymentToken) Equal(o PaymentToken) bool {
	return t.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (t PaymentToken) Clone() PaymentToken {
	return PaymentToken{t.value.clone()}
}
