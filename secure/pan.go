package secure

var panClass = &class{
	name:     "PAN",
	tier:     Tier2,
	minLen:   12,
	maxLen:   19,
	charset:  isDigit,
	check:    luhn("PAN"),
	sanitize: stripSeparators,
}

// PAN is a Primary Account Number (Tier 2).
//
// Construction enforces only universal invariants: digits, ISO/IEC 7812
// length bounds, and the Luhn check. Full BIN-range validation is a catalog
// concern that lives outside this layer.
//
// The masked rendering shows the first six and last four digits behind a
// fixed-width mask, as permitted by PCI DSS; the true length is never
// inferable from it. Destroy must be called once the value is no longer
// needed so the backing memory is wiped.
type PAN struct {
	value
}

// NewPAN validates raw (separators tolerated) and wraps it.
func NewPAN(raw string) (PAN, error) {
	v, err := newValue(panClass, raw)
	if err != nil {
		return PAN{}, err
	}
	return PAN{v}, nil
}

// FirstSix reveals the issuer identification digits, as permitted by PCI DSS.
func (p PAN) FirstSix() string {
	return string(p.buf[:6])
}

// LastFour reveals the trailing digits, as permitted by PCI DSS.
func (p PAN) LastFour() string {
	return string(p.buf[len(p.buf)-4:])
}

// Equal compares content in constant time.
func (p PAN) Equal(o PAN) bool {
	return p.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer. Retries may need their
// own copy; the clone never shares memory with the original.
func (p PAN) Clone() PAN {
	return PAN{p.value.clone()}
}
