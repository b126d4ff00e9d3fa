package types

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

var (
	implicitAccountPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
	decimalPattern         = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Uint64Ptr converts a uint64 to a pointer to a uint64
func Uint64Ptr(v uint64) *uint64 {
	return &v
}

// IsDecimal checks if a string is a canonical non-negative decimal number (no leading zeros)
func IsDecimal(s string) bool {
	return decimalPattern.MatchString(s)
}

// IsImplicitAccount checks if a string is a 64-character lowercase hex account
func IsImplicitAccount(s string) bool {
	return implicitAccountPattern.MatchString(s)
}

// IsEthereumAddress checks if a string is a valid Ethereum address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}
