package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalance(t *testing.T) {
	b, err := ParseBalance("340282366920938463463374607431768211455")
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", b.String())

	_, err = ParseBalance("340282366920938463463374607431768211456")
	assert.ErrorIs(t, err, ErrInvalidBalance)

	_, err = ParseBalance("-1")
	assert.ErrorIs(t, err, ErrInvalidBalance)

	_, err = ParseBalance("ten")
	assert.ErrorIs(t, err, ErrInvalidBalance)
}

func TestBalanceArithmetic(t *testing.T) {
	price := MustParseBalance("10000000000000000000")

	cost, err := price.MulUint64(250)
	require.NoError(t, err)
	assert.Equal(t, "2500000000000000000000", cost.String())

	deposit := MustParseBalance("3000000000000000000000")
	assert.Equal(t, 1, deposit.Cmp(cost))

	refund, err := deposit.Sub(cost)
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000000", refund.String())

	_, err = cost.Sub(deposit)
	assert.ErrorIs(t, err, ErrInvalidBalance)

	huge := MustParseBalance("340282366920938463463374607431768211455")
	_, err = huge.MulUint64(2)
	assert.ErrorIs(t, err, ErrInvalidBalance)

	zero, err := cost.Sub(cost)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestBalanceJSON(t *testing.T) {
	data, err := json.Marshal(NewBalance(42))
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(data))

	var b Balance
	require.NoError(t, json.Unmarshal([]byte(`"1000000000000000000000000"`), &b))
	assert.Equal(t, "1000000000000000000000000", b.String())

	assert.Error(t, json.Unmarshal([]byte(`42`), &b))
}
