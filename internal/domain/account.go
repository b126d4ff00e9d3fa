package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-nft-registry/internal/types"
)

const (
	minAccountIDLength = 2
	maxAccountIDLength = 64
)

// namedAccountPattern matches dot-separated lowercase alphanumeric parts where
// '-' and '_' may only appear between alphanumeric characters
var namedAccountPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// AccountID is a decoded account identity. Two AccountIDs are the same
// identity iff they are equal, so callers should only build them through
// ParseAccountID.
type AccountID string

// ParseAccountID decodes an account identity.
//
// Three forms are accepted:
//   - named accounts (e.g. "alice", "alice.registry", "app-1.alice")
//   - implicit accounts (64 lowercase hex characters)
//   - eth-implicit accounts ("0x" followed by 40 hex characters, any case)
//
// Eth-implicit accounts are normalized to lowercase, so a checksummed and a
// lowercase spelling of the same address decode to the same identity.
func ParseAccountID(s string) (AccountID, error) {
	if types.IsEthereumAddress(s) && strings.HasPrefix(s, "0x") {
		return AccountID(strings.ToLower(common.HexToAddress(s).Hex())), nil
	}

	if len(s) < minAccountIDLength || len(s) > maxAccountIDLength {
		return "", fmt.Errorf("%w: %q must be %d to %d characters", ErrInvalidAccountID, s, minAccountIDLength, maxAccountIDLength)
	}

	if types.IsImplicitAccount(s) {
		return AccountID(s), nil
	}

	if !namedAccountPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountID, s)
	}

	return AccountID(s), nil
}

// MustParseAccountID is ParseAccountID for constants and tests
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical form of the account identity
func (a AccountID) String() string {
	return string(a)
}

// IsZero reports whether the account identity is empty
func (a AccountID) IsZero() bool {
	return a == ""
}

// UnmarshalText decodes and validates an account identity from JSON or query input
func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// MarshalText returns the canonical form of the account identity
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a), nil
}
