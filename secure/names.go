package secure

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		c == ' ' || c == '\'' || c == '-' || c == '.'
}

var cardHolderNameClass = &class{
	name:     "CardHolderName",
	tier:     Tier3,
	minLen:   1,
	maxLen:   26,
	charset:  isNameChar,
	sanitize: trimSpace,
}

// CardHolderName is the name embossed on a payment card (Tier 3). The
// ISO/IEC 7813 track format caps it at 26 characters. A single-character
// name masks as first+last of the same character, never as a rendering that
// would reveal its length.
type CardHolderName struct {
	value
}

// NewCardHolderName validates raw and wraps it.
func NewCardHolderName(raw string) (CardHolderName, error) {
	v, err := newValue(cardHolderNameClass, raw)
	if err != nil {
		return CardHolderName{}, err
	}
	return CardHolderName{v}, nil
}

// Equal compares content in constant time.
func (n CardHolderName) Equal(o CardHolderName) bool {
	return n.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (n CardHolderName) Clone() CardHolderName {
	return CardHolderName{n.value.clone()}
}

var fullNameClass = &class{
	name:     "FullName",
	tier:     Tier3,
	minLen:   1,
	maxLen:   70,
	charset:  isNameChar,
	sanitize: trimSpace,
}

// FullName is an account holder's legal name (Tier 3), used by bank debit
// and SEPA instruments where no embossing limit applies.
type FullName struct {
	value
}

// NewFullName validates raw and wraps it.
func NewFullName(raw string) (FullName, error) {
	v, err := newValue(fullNameClass, raw)
	if err != nil {
		return FullName{}, err
	}
	return FullName{v}, nil
}

// Equal compares content in constant time.
func (n FullName) Equal(o FullName) bool {
	return n.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (n FullName) Clone() FullName {
	return FullName{n.value.clone()}
}
