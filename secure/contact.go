package secure

import "strings"

var emailClass = &class{
	name:     "EmailAddress",
	tier:     Tier3,
	minLen:   3,
	maxLen:   254,
	sanitize: trimSpace,
	check: func(s string) error {
		at := strings.IndexByte(s, '@')
		if at <= 0 || at == len(s)-1 || strings.IndexByte(s[at+1:], '@') >= 0 {
			return &ValidationError{
				Type:    "EmailAddress",
				Rule:    RuleFormat,
				Message: "EmailAddress must contain exactly one '@' with text on both sides",
			}
		}
		if strings.ContainsAny(s, " \t\r\n") {
			return &ValidationError{
				Type:    "EmailAddress",
				Rule:    RuleCharset,
				Message: "EmailAddress must not contain whitespace",
			}
		}
		return nil
	},
}

// EmailAddress is a customer e-mail (Tier 3). Only the shape is validated
// here; deliverability is not this layer's concern.
type EmailAddress struct {
	value
}

// NewEmailAddress validates raw and wraps it.
func NewEmailAddress(raw string) (EmailAddress, error) {
	v, err := newValue(emailClass, raw)
	if err != nil {
		return EmailAddress{}, err
	}
	return EmailAddress{v}, nil
}

// Equal compares content in constant time.
func (e EmailAddress) Equal(o EmailAddress) bool {
	return e.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (e EmailAddress) Clone() EmailAddress {
	return EmailAddress{e.value.clone()}
}

var phoneClass = &class{
	name:   "PhoneNumber",
	tier:   Tier4,
	minLen: 5,
	maxLen: 16,
	sanitize: func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '-' || r == '(' || r == ')' {
				return -1
			}
			return r
		}, strings.TrimSpace(s))
	},
	check: func(s string) error {
		for i := 0; i < len(s); i++ {
			if s[i] == '+' && i == 0 {
				continue
			}
			if !isDigit(s[i]) {
				return &ValidationError{
					Type:    "PhoneNumber",
					Rule:    RuleCharset,
					Message: "PhoneNumber must contain only digits with an optional leading '+'",
				}
			}
		}
		return nil
	},
}

// PhoneNumber is a subscriber number in E.164-like form (Tier 4), used by
// direct carrier billing. The masked rendering reveals length only.
type PhoneNumber struct {
	value
}

// NewPhoneNumber validates raw (spacing and punctuation tolerated) and
// wraps it.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	v, err := newValue(phoneClass, raw)
	if err != nil {
		return PhoneNumber{}, err
	}
	return PhoneNumber{v}, nil
}

// Equal compares content in constant time.
func (p PhoneNumber) Equal(o PhoneNumber) bool {
	return p.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (p PhoneNumber) Clone() PhoneNumber {
	return PhoneNumber{p.value.clone()}
}

var vpaClass = &class{
	name:     "VirtualPaymentAddress",
	tier:     Tier3,
	minLen:   3,
	maxLen:   255,
	sanitize: trimSpace,
	check: func(s string) error {
		at := strings.IndexByte(s, '@')
		if at <= 0 || at == len(s)-1 {
			return &ValidationError{
				Type:    "VirtualPaymentAddress",
				Rule:    RuleFormat,
				Message: "VirtualPaymentAddress must look like handle@provider",
			}
		}
		return nil
	},
}

// VirtualPaymentAddress is an instant-payment alias such as a UPI handle
// (Tier 3).
type VirtualPaymentAddress struct {
	value
}

// NewVirtualPaymentAddress validates raw and wraps it.
func NewVirtualPaymentAddress(raw string) (VirtualPaymentAddress, error) {
	v, err := newValue(vpaClass, raw)
	if err != nil {
		return VirtualPaymentAddress{}, err
	}
	return VirtualPaymentAddress{v}, nil
}

// Equal compares content in constant time.
func (a VirtualPaymentAddress) Equal(o VirtualPaymentAddress) bool {
	return a.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (a VirtualPaymentAddress) Clone() VirtualPaymentAddress {
	return VirtualPaymentAddress{a.value.clone()}
}
