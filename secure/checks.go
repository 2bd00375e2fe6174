package secure

import "fmt"

// luhn validates the ISO/IEC 7812 Mod 10 check digit over an all-digit input.
func luhn(name string) func(string) error {
	return func(s string) error {
		sum := 0
		double := false
		for i := len(s) - 1; i >= 0; i-- {
			d := int(s[i] - '0')
			if double {
				d *= 2
				if d > 9 {
					d -= 9
				}
			}
			sum += d
			double = !double
		}
		if sum%10 != 0 {
			return &ValidationError{
				Type:    name,
				Rule:    RuleChecksum,
				Message: fmt.Sprintf("%s failed the Luhn check", name),
			}
		}
		return nil
	}
}

// mod97 validates the ISO 13616 IBAN checksum. The input must already be
// uppercase alphanumeric with the country code and check digits in front.
func mod97(name string) func(string) error {
	return func(s string) error {
		// Move the first four characters to the end, then interpret
		// letters as 10..35 and reduce modulo 97 incrementally.
		rearranged := s[4:] + s[:4]
		rem := 0
		for i := 0; i < len(rearranged); i++ {
			c := rearranged[i]
			if c >= 'A' && c <= 'Z' {
				n := int(c-'A') + 10
				rem = (rem*100 + n) % 97
			} else {
				rem = (rem*10 + int(c-'0')) % 97
			}
		}
		if rem != 1 {
			return &ValidationError{
				Type:    name,
				Rule:    RuleChecksum,
				Message: fmt.Sprintf("%s failed the mod-97 check", name),
			}
		}
		return nil
	}
}

// abaChecksum validates the 3-7-1 weighted checksum of a nine-digit ABA
// routing number.
func abaChecksum(name string) func(string) error {
	weights := [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}
	return func(s string) error {
		sum := 0
		for i := 0; i < 9; i++ {
			sum += int(s[i]-'0') * weights[i]
		}
		if sum%10 != 0 {
			return &ValidationError{
				Type:    name,
				Rule:    RuleChecksum,
				Message: fmt.Sprintf("%s failed the ABA check", name),
			}
		}
		return nil
	}
}
