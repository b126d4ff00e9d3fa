package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"0", true},
		{"1", true},
		{"1234567890", true},
		{"01", false},
		{"", false},
		{"-1", false},
		{"1.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDecimal(tt.input))
		})
	}
}

func TestIsImplicitAccount(t *testing.T) {
	assert.True(t, IsImplicitAccount("98793cd91a3f870fb126f66285808c7e094afcfc4eda8a970f6648cdf0dbd6de"))
	assert.False(t, IsImplicitAccount("98793CD91A3F870FB126F66285808C7E094AFCFC4EDA8A970F6648CDF0DBD6DE"))
	assert.False(t, IsImplicitAccount("alice"))
}

func TestIsEthereumAddress(t *testing.T) {
	assert.True(t, IsEthereumAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.False(t, IsEthereumAddress("0x123"))
}
