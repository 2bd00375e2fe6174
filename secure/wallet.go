package secure

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var walletClass = &class{
	name:     "WalletAddress",
	tier:     Tier3,
	minLen:   20,
	maxLen:   128,
	sanitize: trimSpace,
	check:    checkWalletAddress,
}

// checkWalletAddress accepts either a checksummed/plain EVM address or a
// base58-looking address for non-EVM chains. Chain-specific ownership checks
// belong to the adapter.
func checkWalletAddress(s string) error {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if !common.IsHexAddress(s) {
			return &ValidationError{
				Type:    "WalletAddress",
				Rule:    RuleFormat,
				Message: "WalletAddress is not a valid hex-encoded EVM address",
			}
		}
		return nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isTokenChar(c) || c == '_' || c == '-' ||
			c == '0' || c == 'O' || c == 'I' || c == 'l' {
			return &ValidationError{
				Type:    "WalletAddress",
				Rule:    RuleCharset,
				Message: "WalletAddress is not valid base58",
			}
		}
	}
	return nil
}

// WalletAddress is a cryptocurrency destination address (Tier 3). EVM
// addresses are validated as 20-byte hex; anything else must at least be
// well-formed base58.
type WalletAddress struct {
	value
}

// NewWalletAddress validates raw and wraps it.
func NewWalletAddress(raw string) (WalletAddress, error) {
	v, err := newValue(walletClass, raw)
	if err != nil {
		return WalletAddress{}, err
	}
	return WalletAddress{v}, nil
}

// Equal compares content in constant time.
func (w WalletAddress) Equal(o WalletAddress) bool {
	return w.value.equal(o.value)
}

// Clone copies the value into a fresh backing buffer.
func (w WalletAddress) Clone() WalletAddress {
	return WalletAddress{w.value.clone()}
}
