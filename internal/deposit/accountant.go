// Package deposit settles the storage cost of a registry call against the
// payment attached to it.
package deposit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/logger"
)

// Settlement is the outcome of settling one call
type Settlement struct {
	DeltaBytes uint64
	Required   domain.Balance
	Attached   domain.Balance
	Refund     domain.Balance
}

// HasRefund reports whether part of the attached payment must be returned
func (s Settlement) HasRefund() bool {
	return !s.Refund.IsZero()
}

// Accountant converts byte-usage deltas into storage cost
type Accountant struct {
	pricePerByte domain.Balance
}

// NewAccountant creates an accountant charging pricePerByte for every byte of growth
func NewAccountant(pricePerByte domain.Balance) *Accountant {
	return &Accountant{pricePerByte: pricePerByte}
}

// PricePerByte returns the configured price of one byte
func (a *Accountant) PricePerByte() domain.Balance {
	return a.pricePerByte
}

// Cost returns the price of deltaBytes bytes
func (a *Accountant) Cost(deltaBytes uint64) (domain.Balance, error) {
	return a.pricePerByte.MulUint64(deltaBytes)
}

// Settle compares the storage growth between two usage snapshots with the
// attached payment. It fails with ErrStorageReleased when usage shrank and
// with ErrInsufficientDeposit when attached does not cover the cost.
func (a *Accountant) Settle(before, after uint64, attached domain.Balance) (Settlement, error) {
	if after < before {
		return Settlement{}, fmt.Errorf("%w: %d -> %d bytes", domain.ErrStorageReleased, before, after)
	}

	delta := after - before
	required, err := a.Cost(delta)
	if err != nil {
		return Settlement{}, fmt.Errorf("failed to price %d bytes: %w", delta, err)
	}

	if attached.Cmp(required) < 0 {
		return Settlement{}, fmt.Errorf("%w: must attach %s to cover %d bytes, attached %s",
			domain.ErrInsufficientDeposit, required, delta, attached)
	}

	refund, err := attached.Sub(required)
	if err != nil {
		return Settlement{}, err
	}

	logger.Debug("Settled storage deposit",
		zap.Uint64("delta_bytes", delta),
		zap.String("required", required.String()),
		zap.String("attached", attached.String()),
		zap.String("refund", refund.String()))

	return Settlement{
		DeltaBytes: delta,
		Required:   required,
		Attached:   attached,
		Refund:     refund,
	}, nil
}
