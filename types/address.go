package types

import (
	"time"

	"github.com/finbridge/merchant/secure"
)

// CountryCode is an ISO 3166 code: a two-letter country, optionally
// followed by a dash and a region subdivision (e.g. "PT", "US-CA"). A
// country or region names a broad area, so the code is not protected.
type CountryCode string

// ParseCountryCode validates the code shape.
func ParseCountryCode(s string) (CountryCode, error) {
	bad := func(rule, msg string) error {
		return &secure.ValidationError{Type: "CountryCode", Rule: rule, Message: msg}
	}
	country, region, hasRegion := splitDash(s)
	if len(country) != 2 {
		return "", bad(secure.RuleLength, "CountryCode requires a two-letter country part")
	}
	for i := 0; i < len(country); i++ {
		if country[i] < 'A' || country[i] > 'Z' {
			return "", bad(secure.RuleCharset, "CountryCode country part must be two uppercase letters")
		}
	}
	if hasRegion {
		if len(region) < 1 || len(region) > 3 {
			return "", bad(secure.RuleLength, "CountryCode region part must be 1-3 characters")
		}
		for i := 0; i < len(region); i++ {
			c := region[i]
			ok := c >= '0' && c <= '9' || c >= 'A' && c <= 'Z'
			if !ok {
				return "", bad(secure.RuleCharset, "CountryCode region part must be uppercase alphanumeric")
			}
		}
	}
	return CountryCode(s), nil
}

func splitDash(s string) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// Address is a validated postal address. Protection is applied at the field
// level: the street line and postal code identify a person, the
// country-region-city part does not.
type Address struct {
	Country    CountryCode
	City       secure.City
	PostalCode secure.PostalCode
	Line       secure.StreetAddress
}

// Destroy wipes the protected fields. The address must not be used
// afterwards.
func (a Address) Destroy() {
	a.City.Destroy()
	a.PostalCode.Destroy()
	a.Line.Destroy()
}

// BirthDate is a date of birth. It identifies a person, so the fields are
// unexported and every default rendering is fully masked; adapters read the
// parts through the accessors at the serialization boundary.
type BirthDate struct {
	day   int
	month int
	year  int
}

// NewBirthDate validates that the date exists on the calendar and falls in
// a plausible range for a living customer.
func NewBirthDate(day, month, year int) (BirthDate, error) {
	bad := func(msg string) error {
		return &secure.ValidationError{Type: "BirthDate", Rule: secure.RuleFormat, Message: msg}
	}
	if year < 1909 || year > 2050 {
		return BirthDate{}, bad("BirthDate year is out of the supported range")
	}
	if month < 1 || month > 12 {
		return BirthDate{}, bad("BirthDate month must be 1-12")
	}
	// time.Date normalizes overflow, so a roundtrip mismatch means the day
	// does not exist in that month.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return BirthDate{}, bad("BirthDate day does not exist in that month")
	}
	return BirthDate{day: day, month: month, year: year}, nil
}

// Day returns the day of the month.
func (b BirthDate) Day() int { return b.day }

// Month returns the month.
func (b BirthDate) Month() int { return b.month }

// Year returns the year.
func (b BirthDate) Year() int { return b.year }

func (b BirthDate) String() string { return "BirthDate(***)" }

// GoString covers the %#v verb with the same masked rendering.
func (b BirthDate) GoString() string { return b.String() }

// MarshalJSON emits the mask so accidental serialization never carries the
// date.
func (b BirthDate) MarshalJSON() ([]byte, error) {
	return []byte(`"***"`), nil
}
