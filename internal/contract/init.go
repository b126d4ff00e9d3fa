package contract

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/logger"
)

// Init initializes the registry. It can only succeed once.
func (r *registry) Init(ctx context.Context, owner domain.AccountID, metadata domain.CollectionMetadata) error {
	if owner.IsZero() {
		return fmt.Errorf("%w: owner is required", domain.ErrInvalidAccountID)
	}
	if err := metadata.Validate(); err != nil {
		return err
	}
	if metadata.Icon != nil {
		if err := r.validateIcon(*metadata.Icon); err != nil {
			return err
		}
	}

	return r.execute(ctx, Call{Signer: owner}, "init", func(sc *scope) error {
		_, err := r.state.load(sc.tx)
		if err == nil {
			return domain.ErrAlreadyInitialized
		}
		if !errors.Is(err, domain.ErrNotInitialized) {
			return err
		}

		if err := r.state.registry.Set(sc.tx, registryState{OwnerID: owner}); err != nil {
			return fmt.Errorf("failed to save registry state: %w", err)
		}
		if err := r.state.collectionMetadata.Set(sc.tx, metadata); err != nil {
			return fmt.Errorf("failed to save collection metadata: %w", err)
		}

		logger.InfoCtx(sc.ctx, "Initialized registry",
			zap.String("owner_id", owner.String()),
			zap.String("name", metadata.Name),
			zap.String("symbol", metadata.Symbol))
		return nil
	})
}

// InitDefault initializes the registry with the built-in collection metadata
func (r *registry) InitDefault(ctx context.Context, owner domain.AccountID) error {
	return r.Init(ctx, owner, domain.DefaultCollectionMetadata())
}

// validateIcon checks that icon is a data URI whose payload is the image type it declares
func (r *registry) validateIcon(icon string) error {
	rest, ok := strings.CutPrefix(icon, "data:")
	if !ok {
		return fmt.Errorf("%w: icon must be a data URI", domain.ErrInvalidCollectionMetadata)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return fmt.Errorf("%w: icon data URI has no payload", domain.ErrInvalidCollectionMetadata)
	}

	declared, isBase64 := strings.CutSuffix(header, ";base64")
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = declared[:i]
	}
	if !strings.HasPrefix(declared, "image/") {
		return fmt.Errorf("%w: icon media type %q is not an image", domain.ErrInvalidCollectionMetadata, declared)
	}

	var data []byte
	if isBase64 {
		decoded, err := r.base64.Decode(payload)
		if err != nil {
			return fmt.Errorf("%w: icon payload is not base64: %v", domain.ErrInvalidCollectionMetadata, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return fmt.Errorf("%w: icon payload is not URL encoded: %v", domain.ErrInvalidCollectionMetadata, err)
		}
		data = []byte(unescaped)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(declared) {
		return fmt.Errorf("%w: icon declares %s but contains %s", domain.ErrInvalidCollectionMetadata, declared, detected.String())
	}
	return nil
}
