// Package secure provides newtype wrappers for sensitive financial data.
//
// Every wrapper owns its byte content exclusively, validates structural
// invariants at construction time, and masks itself in all default formatting
// paths (fmt verbs, JSON marshaling, logging). Raw content is reachable only
// through the Expose method, which takes a closure so that call sites remain
// auditable with a plain grep.
//
// Each wrapper type is assigned exactly one protection tier at definition
// time. The tier controls what the masked rendering reveals and whether the
// backing memory is wiped by Destroy.
package secure

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tier is the protection level assigned to a wrapper type. It is a property
// of the type, fixed at definition time, never of an individual value.
type Tier int

const (
	// Tier1 renders as a constant mask regardless of content or length.
	Tier1 Tier = iota + 1
	// Tier2 reveals the first six and last four characters behind a
	// fixed-width mask, falling back to Tier1 masking for short values.
	Tier2
	// Tier3 reveals only the uppercased first and last character.
	Tier3
	// Tier4 reveals only the content length.
	Tier4
	// Tier5 is unmasked.
	Tier5
)

const (
	// fixedMask is the constant-width mask used between revealed fragments.
	// The width never depends on the wrapped content, so the true length of
	// a Tier 1-3 value cannot be inferred from its masked rendering.
	fixedMask = "***"
	// panMask is the wider fixed mask used for Tier 2 account numbers.
	panMask = "********"
)

// class is the static descriptor shared by all values of one wrapper type.
type class struct {
	name     string
	tier     Tier
	minLen   int
	maxLen   int
	charset  func(byte) bool     // nil disables the charset rule
	check    func(string) error  // nil disables the extra structural rule
	sanitize func(string) string // nil keeps the input as-is
}

// value is the common storage embedded by every wrapper type. The buffer is
// owned exclusively; constructors always copy, Destroy always wipes.
type value struct {
	class *class
	buf   []byte
}

func newValue(c *class, raw string) (value, error) {
	s := raw
	if c.sanitize != nil {
		s = c.sanitize(s)
	}
	if len(s) < c.minLen || len(s) > c.maxLen {
		return value{}, &ValidationError{
			Type: c.name,
			Rule: RuleLength,
			Message: fmt.Sprintf("%s length must be between %d and %d characters",
				c.name, c.minLen, c.maxLen),
		}
	}
	if c.charset != nil {
		for i := 0; i < len(s); i++ {
			if !c.charset(s[i]) {
				return value{}, &ValidationError{
					Type:    c.name,
					Rule:    RuleCharset,
					Message: fmt.Sprintf("%s contains a character outside its allowed set", c.name),
				}
			}
		}
	}
	if c.check != nil {
		if err := c.check(s); err != nil {
			return value{}, err
		}
	}
	buf := make([]byte, len(s))
	copy(buf, s)
	return value{class: c, buf: buf}, nil
}

// PartialView returns the tier-appropriate masked rendering. It never calls
// Expose and is safe for logs, error correlation, and debugging.
func (v value) PartialView() string {
	if v.class == nil {
		return fixedMask
	}
	n := len(v.buf)
	switch v.class.tier {
	case Tier1:
		return fixedMask
	case Tier2:
		// Short validated values would leak everything through a
		// first-6/last-4 window, so they degrade to full redaction.
		if n < 10 {
			return fixedMask
		}
		return string(v.buf[:6]) + panMask + string(v.buf[n-4:])
	case Tier3:
		// First and last rune, not byte: a multi-byte leading character
		// must not decay into an invalid UTF-8 fragment in the mask.
		first, _ := utf8.DecodeRune(v.buf)
		last, _ := utf8.DecodeLastRune(v.buf)
		return string(unicode.ToUpper(first)) + fixedMask + string(unicode.ToUpper(last))
	case Tier4:
		return fmt.Sprintf("[%d chars]", n)
	default:
		return string(v.buf)
	}
}

// String renders the wrapper name around the masked content, never the raw
// content. Covers the %v and %s verbs.
func (v value) String() string {
	name := "Secret"
	if v.class != nil {
		name = v.class.name
	}
	return name + "(" + v.PartialView() + ")"
}

// GoString covers the %#v verb with the same masked rendering.
func (v value) GoString() string {
	return v.String()
}

// MarshalJSON emits the masked rendering so that accidental serialization of
// a wrapper never carries raw content. Adapters serialize via Expose.
func (v value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.PartialView())
}

// Expose passes the backing bytes to fn. This is the only path to raw
// content and the sole mechanism adapters may use to put the value on the
// wire. The slice must not be retained or copied outside fn; any transient
// structure built from it must guarantee its own wiping.
func (v value) Expose(fn func(raw []byte)) {
	fn(v.buf)
}

// Fingerprint returns a stable hex digest of the content, usable as a map
// key or correlation handle without surfacing the content itself.
func (v value) Fingerprint() string {
	sum := sha256.Sum256(v.buf)
	return hex.EncodeToString(sum[:])
}


func (v value) equal(o value) bool {
	if len(v.buf) != len(o.buf) {
		return false
	}
	return subtle.ConstantTimeCompare(v.buf, o.buf) == 1
}

// clone copies the backing buffer so the two values never share memory.
func (v value) clone() value {
	buf := make([]byte, len(v.buf))
	copy(buf, v.buf)
	return value{class: v.class, buf: buf}
}

// Destroy overwrites the backing memory. Required for Tier 1-2 types before
// a value goes out of scope; harmless for the rest, so it wipes everywhere.
// The value must not be used afterwards.
func (v value) Destroy() {
	for i := range v.buf {
		v.buf[i] = 0
	}
}

// --- shared sanitizers, charsets, checks ---

// separators tolerated in numeric inputs (PAN, IBAN, account numbers).
const separators = " -_"

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(separators, rune(s[i])) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAddressChar(c byte) bool {
	return isAlnum(c) || c == ' ' || c == '-'
}

// idSeparators are stripped from national identification numbers.
const idSeparators = " -_.'"

func stripIDSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(idSeparators, rune(s[i])) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isUpperAlnum(c byte) bool {
	return isDigit(c) || (c >= 'A' && c <= 'Z')
}

func isTokenChar(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		c == '-' || c == '_'
}
