package domain

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// maxBalanceBits bounds balances to the 128-bit range deposits are expressed in
const maxBalanceBits = 128

// Balance is an unsigned 128-bit amount of the smallest currency unit.
// It is encoded as a decimal string in JSON.
type Balance struct {
	v uint256.Int
}

// NewBalance creates a balance from a uint64 amount
func NewBalance(amount uint64) Balance {
	var b Balance
	b.v.SetUint64(amount)
	return b
}

// ParseBalance parses a decimal string into a balance
func ParseBalance(s string) (Balance, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Balance{}, fmt.Errorf("%w: %q: %v", ErrInvalidBalance, s, err)
	}
	if v.BitLen() > maxBalanceBits {
		return Balance{}, fmt.Errorf("%w: %q exceeds 128 bits", ErrInvalidBalance, s)
	}
	return Balance{v: *v}, nil
}

// MustParseBalance is ParseBalance for constants and tests
func MustParseBalance(s string) Balance {
	b, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the decimal representation
func (b Balance) String() string {
	return b.v.Dec()
}

// IsZero reports whether the balance is zero
func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Cmp compares b and o and returns -1, 0 or +1
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

// Sub returns b - o. It fails if o is greater than b.
func (b Balance) Sub(o Balance) (Balance, error) {
	var r Balance
	if _, underflow := r.v.SubOverflow(&b.v, &o.v); underflow {
		return Balance{}, fmt.Errorf("%w: %s - %s underflows", ErrInvalidBalance, b, o)
	}
	return r, nil
}

// MulUint64 returns b * n. It fails if the product leaves the 128-bit range.
func (b Balance) MulUint64(n uint64) (Balance, error) {
	var r Balance
	_, overflow := r.v.MulOverflow(&b.v, uint256.NewInt(n))
	if overflow || r.v.BitLen() > maxBalanceBits {
		return Balance{}, fmt.Errorf("%w: %s * %d overflows", ErrInvalidBalance, b, n)
	}
	return r, nil
}

// MarshalJSON encodes the balance as a decimal string
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a decimal string
func (b *Balance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: balance must be a decimal string", ErrInvalidBalance)
	}
	parsed, err := ParseBalance(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
