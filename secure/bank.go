package secure

import "strings"

var accountNumberClass = &class{
	name:     "AccountNumber",
	tier:     Tier2,
	minLen:   4,
	maxLen:   17,
	charset:  isDigit,
	sanitize: stripSeparators,
}

// AccountNumber is a bank account number (Tier 2).
//
// Account numbers can be shorter than ten digits; such values fall back to
// the Tier 1 constant mask so that nothing of a short number is revealed.
type AccountNumber struct {
	value
}

// NewAccountNumber validates raw (separators tolerated) and wraps it.
func NewAccountNumber(raw string) (AccountNumber, error) {
	v, err := newValue(accountNumberClass, raw)
	if err != nil {
		return AccountNumber{}, err
	}
	return AccountNumber{v}, nil
}

// Equal compares content in constant time.
func (a AccountNumber) Equal(o AccountNumber) bool {
	return a.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (a AccountNumber) Clone() AccountNumber {
	return AccountNumber{a.value.clone()}
}

var ibanClass = &class{
	name:    "IBAN",
	tier:    Tier2,
	minLen:  15,
	maxLen:  34,
	charset: isUpperAlnum,
	check:   mod97("IBAN"),
	sanitize: func(s string) string {
		return strings.ToUpper(stripSeparators(s))
	},
}

// IBAN is an International Bank Account Number (Tier 2), validated against
// the ISO 13616 mod-97 checksum. Country-specific BBAN layouts are a catalog
// concern outside this layer.
type IBAN struct {
	value
}

// NewIBAN validates raw (case and separators tolerated) and wraps it.
func NewIBAN(raw string) (IBAN, error) {
	v, err := newValue(ibanClass, raw)
	if err != nil {
		return IBAN{}, err
	}
	return IBAN{v}, nil
}

// Equal compares content in constant time.
func (i IBAN) Equal(o IBAN) bool {
	return i.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (i IBAN) Clone() IBAN {
	return IBAN{i.value.clone()}
}

var routingNumberClass = &class{
	name:     "RoutingNumber",
	tier:     Tier5,
	minLen:   9,
	maxLen:   9,
	charset:  isDigit,
	check:    abaChecksum("RoutingNumber"),
	sanitize: stripSeparators,
}

// RoutingNumber is a nine-digit ABA routing number (Tier 5). Routing numbers
// identify institutions, not customers, so they render unmasked; they still
// get checksum validation and the Expose discipline for wire serialization.
type RoutingNumber struct {
	value
}

// NewRoutingNumber validates raw and wraps it.
func NewRoutingNumber(raw string) (RoutingNumber, error) {
	v, err := newValue(routingNumberClass, raw)
	if err != nil {
		return RoutingNumber{}, err
	}
	return RoutingNumber{v}, nil
}

// Equal compares content in constant time.
func (r RoutingNumber) Equal(o RoutingNumber) bool {
	return r.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (r RoutingNumber) Clone() RoutingNumber {
	return RoutingNumber{r.value.clone()}
}
