package secure

var streetClass = &class{
	name:     "StreetAddress",
	tier:     Tier1,
	minLen:   3,
	maxLen:   200,
	charset:  isAddressChar,
	sanitize: trimSpace,
}

// StreetAddress is the street line of an address (Tier 1). It pinpoints a
// physical location, so the mask reveals nothing.
type StreetAddress struct {
	value
}

// NewStreetAddress validates raw and wraps it.
func NewStreetAddress(raw string) (StreetAddress, error) {
	v, err := newValue(streetClass, raw)
	if err != nil {
		return StreetAddress{}, err
	}
	return StreetAddress{v}, nil
}

var postalClass = &class{
	name:     "PostalCode",
	tier:     Tier3,
	minLen:   3,
	maxLen:   10,
	charset:  isAddressChar,
	sanitize: trimSpace,
}

// PostalCode is the postal code of an address (Tier 3). Combined with other
// data it narrows down to a person, so only the outermost characters stay
// visible for correlation.
type PostalCode struct {
	value
}

// NewPostalCode validates raw and wraps it.
func NewPostalCode(raw string) (PostalCode, error) {
	v, err := newValue(postalClass, raw)
	if err != nil {
		return PostalCode{}, err
	}
	return PostalCode{v}, nil
}

var cityClass = &class{
	name:     "City",
	tier:     Tier5,
	minLen:   1,
	maxLen:   100,
	sanitize: trimSpace,
}

// City is the locality of an address (Tier 5). A city names a broad area
// that cannot identify an individual, so it passes through unmasked.
type City struct {
	value
}

// NewCity validates raw and wraps it.
func NewCity(raw string) (City, error) {
	v, err := newValue(cityClass, raw)
	if err != nil {
		return City{}, err
	}
	return City{v}, nil
}

var nationalIDClass = &class{
	name:     "NationalID",
	tier:     Tier3,
	minLen:   7,
	maxLen:   18,
	charset:  isAlnum,
	sanitize: stripIDSeparators,
}

// NationalID is a national identification number (Tier 3). The structural
// minimum of seven characters keeps the first-and-last window from
// disclosing a meaningful part of the number.
type NationalID struct {
	value
}

// NewNationalID validates raw and wraps it. Common separators (spaces,
// dashes, dots, underscores, apostrophes) are stripped before validation.
func NewNationalID(raw string) (NationalID, error) {
	v, err := newValue(nationalIDClass, raw)
	if err != nil {
		return NationalID{}, err
	}
	return NationalID{v}, nil
}

// Equal compares content in constant time.
func (n NationalID) Equal(o NationalID) bool {
	return n.value.equal(o.value)
}
