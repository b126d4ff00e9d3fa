package contract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/events"
	"github.com/feral-file/ff-nft-registry/internal/logger"
)

// NftUpdate replaces the metadata of tokenID wholesale. Only the current
// owner may call it. The call is not billed for storage.
func (r *registry) NftUpdate(ctx context.Context, call Call, tokenID domain.TokenID, metadata domain.TokenMetadata) (*UpdateResult, error) {
	err := r.execute(ctx, call, "nft_update", func(sc *scope) error {
		if !call.AttachedDeposit.IsZero() {
			return fmt.Errorf("%w: nft_update", domain.ErrDepositNotAccepted)
		}
		if call.Signer.IsZero() {
			return domain.ErrMissingCaller
		}

		if _, err := r.state.load(sc.tx); err != nil {
			return err
		}

		token, ok, err := r.state.tokensByID.Get(sc.tx, tokenID)
		if err != nil {
			return fmt.Errorf("failed to get token %s: %w", tokenID, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTokenNotFound, tokenID)
		}

		if call.Signer != token.OwnerID {
			return fmt.Errorf("%w: %s is owned by %s", domain.ErrUnauthorized, tokenID, token.OwnerID)
		}

		if _, err := r.state.tokenMetadataByID.Insert(sc.tx, tokenID, metadata); err != nil {
			return fmt.Errorf("failed to overwrite metadata for %s: %w", tokenID, err)
		}

		if err := r.emit(sc, events.NewMetadataUpdateLog([]domain.TokenID{tokenID}, nil)); err != nil {
			return err
		}

		logger.InfoCtx(sc.ctx, "Updated token metadata", zap.String("token_id", string(tokenID)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateResult{Message: domain.MSG_NFT_UPDATED}, nil
}
