package deposit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-registry/internal/domain"
)

func TestSettle(t *testing.T) {
	accountant := NewAccountant(domain.NewBalance(10))

	tests := []struct {
		name       string
		before     uint64
		after      uint64
		attached   domain.Balance
		wantErr    error
		wantRefund string
		wantCost   string
	}{
		{
			name:       "excess is refunded",
			before:     100,
			after:      150,
			attached:   domain.NewBalance(600),
			wantRefund: "100",
			wantCost:   "500",
		},
		{
			name:       "exact payment has no refund",
			before:     100,
			after:      150,
			attached:   domain.NewBalance(500),
			wantRefund: "0",
			wantCost:   "500",
		},
		{
			name:     "insufficient payment fails",
			before:   100,
			after:    150,
			attached: domain.NewBalance(499),
			wantErr:  domain.ErrInsufficientDeposit,
		},
		{
			name:       "no growth refunds everything",
			before:     100,
			after:      100,
			attached:   domain.NewBalance(7),
			wantRefund: "7",
			wantCost:   "0",
		},
		{
			name:     "shrinking usage is rejected",
			before:   100,
			after:    90,
			attached: domain.NewBalance(1000),
			wantErr:  domain.ErrStorageReleased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlement, err := accountant.Settle(tt.before, tt.after, tt.attached)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, settlement.Required.String())
			assert.Equal(t, tt.wantRefund, settlement.Refund.String())
			assert.Equal(t, tt.wantRefund != "0", settlement.HasRefund())
			assert.Equal(t, tt.after-tt.before, settlement.DeltaBytes)
		})
	}
}

func TestSettleOverflow(t *testing.T) {
	accountant := NewAccountant(domain.MustParseBalance("340282366920938463463374607431768211455"))
	_, err := accountant.Settle(0, 2, domain.NewBalance(1))
	assert.ErrorIs(t, err, domain.ErrInvalidBalance)
}
