package secure

var cvvClass = &class{
	name:    "CVV",
	tier:    Tier1,
	minLen:  3,
	maxLen:  4,
	charset: isDigit,
}

// CVV is a Card Verification Value (Tier 1).
//
// The CVV must never survive an authorization: it is fully redacted in every
// rendering, and callers are expected to Destroy it immediately after the
// gateway call returns.
type CVV struct {
	value
}

// NewCVV validates raw and wraps it.
func NewCVV(raw string) (CVV, error) {
	v, err := newValue(cvvClass, raw)
	if err != nil {
		return CVV{}, err
	}
	return CVV{v}, nil
}

// Equal compares content in constant time.
func (c CVV) Equal(o CVV) bool {
	return c.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (c CVV) Clone() CVV {
	return CVV{c.value.clone()}
}
