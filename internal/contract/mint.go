package contract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/events"
	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/types"
)

// NftMint mints a token for receiver with caller-supplied metadata
func (r *registry) NftMint(ctx context.Context, call Call, receiver domain.AccountID, metadata domain.TokenMetadata) (*MintResult, error) {
	var result *MintResult
	err := r.execute(ctx, call, "nft_mint", func(sc *scope) error {
		var err error
		result, err = r.mintToken(sc, receiver, func(domain.TokenID) domain.TokenMetadata {
			return metadata
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Mint mints a token for receiver with stock metadata pointing at the shared media
func (r *registry) Mint(ctx context.Context, call Call, receiver domain.AccountID) (*MintResult, error) {
	var result *MintResult
	err := r.execute(ctx, call, "mint", func(sc *scope) error {
		var err error
		result, err = r.mintToken(sc, receiver, r.stockMetadata)
		return err
	})
	if err != nil {
		return nil, err
	}

	result.Message = domain.MSG_TOKEN_MINTED
	return result, nil
}

func (r *registry) stockMetadata(tokenID domain.TokenID) domain.TokenMetadata {
	return domain.TokenMetadata{
		Title:       types.StringPtr(domain.STOCK_TITLE_PREFIX + string(tokenID)),
		Description: types.StringPtr(domain.STOCK_DESCRIPTION),
		Media:       types.StringPtr(r.cfg.StockMedia),
	}
}

// mintToken allocates the next identifier, writes the token, its metadata and
// the owner index entry, stages the mint event and settles the storage cost
// against the attached deposit
func (r *registry) mintToken(sc *scope, receiver domain.AccountID, metadataFor func(domain.TokenID) domain.TokenMetadata) (*MintResult, error) {
	if receiver.IsZero() {
		return nil, fmt.Errorf("%w: receiver is required", domain.ErrInvalidAccountID)
	}
	if sc.call.Payer().IsZero() {
		return nil, domain.ErrMissingCaller
	}

	before := sc.tx.StorageUsage()

	st, err := r.state.load(sc.tx)
	if err != nil {
		return nil, err
	}

	tokenID := domain.TokenIDFromSequence(st.NextTokenSeq)

	// The sequence and the metadata store advance together; a stored entry
	// under the next identifier means they have diverged.
	taken, err := r.state.tokenMetadataByID.Contains(sc.tx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check metadata for %s: %w", tokenID, err)
	}
	if taken {
		return nil, fmt.Errorf("%w: metadata for %s already stored", domain.ErrTokenAlreadyExists, tokenID)
	}

	exists, err := r.state.tokensByID.Contains(sc.tx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token %s: %w", tokenID, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenAlreadyExists, tokenID)
	}

	token := domain.NewToken(receiver)
	if _, err := r.state.tokensByID.Insert(sc.tx, tokenID, *token); err != nil {
		return nil, fmt.Errorf("failed to insert token %s: %w", tokenID, err)
	}
	if _, err := r.state.tokenMetadataByID.Insert(sc.tx, tokenID, metadataFor(tokenID)); err != nil {
		return nil, fmt.Errorf("failed to insert metadata for %s: %w", tokenID, err)
	}
	if err := r.state.addTokenToOwner(sc.tx, receiver, tokenID); err != nil {
		return nil, err
	}

	st.NextTokenSeq++
	if err := r.state.registry.Set(sc.tx, *st); err != nil {
		return nil, fmt.Errorf("failed to advance token sequence: %w", err)
	}

	if err := r.emit(sc, events.NewMintLog(receiver, []domain.TokenID{tokenID}, nil)); err != nil {
		return nil, err
	}

	settlement, err := r.accountant.Settle(before, sc.tx.StorageUsage(), sc.call.AttachedDeposit)
	if err != nil {
		return nil, err
	}
	if settlement.HasRefund() {
		if err := r.refund(sc, sc.call.Payer(), settlement.Refund, tokenID); err != nil {
			return nil, err
		}
	}

	logger.InfoCtx(sc.ctx, "Minted token",
		zap.String("token_id", string(tokenID)),
		zap.String("owner_id", receiver.String()),
		zap.Uint64("delta_bytes", settlement.DeltaBytes),
		zap.String("storage_cost", settlement.Required.String()))

	return &MintResult{
		TokenID:    tokenID,
		Refund:     settlement.Refund,
		DeltaBytes: settlement.DeltaBytes,
	}, nil
}
