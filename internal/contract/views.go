package contract

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

// NftToken returns one token joined with its metadata
func (r *registry) NftToken(ctx context.Context, tokenID domain.TokenID) (*domain.TokenView, error) {
	var view *domain.TokenView
	err := r.store.View(ctx, func(rd store.Reader) error {
		var err error
		view, err = r.tokenView(rd, tokenID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// NftTokens lists tokens in identifier order
func (r *registry) NftTokens(ctx context.Context, page Page) ([]domain.TokenView, error) {
	var views []domain.TokenView
	err := r.store.View(ctx, func(rd store.Reader) error {
		ids, err := r.state.tokenMetadataByID.Keys(rd)
		if err != nil {
			return fmt.Errorf("failed to list tokens: %w", err)
		}
		views, err = r.tokenViews(rd, ids, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// NftTotalSupply returns the number of minted tokens
func (r *registry) NftTotalSupply(ctx context.Context) (uint64, error) {
	var total uint64
	err := r.store.View(ctx, func(rd store.Reader) error {
		var err error
		total, err = r.state.tokenMetadataByID.Len(rd)
		return err
	})
	return total, err
}

// NftSupplyForOwner returns the number of tokens held by account
func (r *registry) NftSupplyForOwner(ctx context.Context, account domain.AccountID) (uint64, error) {
	var supply uint64
	err := r.store.View(ctx, func(rd store.Reader) error {
		var err error
		supply, err = r.state.ownerTokens(account).Len(rd)
		return err
	})
	return supply, err
}

// NftTokensForOwner lists the tokens held by account in identifier order
func (r *registry) NftTokensForOwner(ctx context.Context, account domain.AccountID, page Page) ([]domain.TokenView, error) {
	var views []domain.TokenView
	err := r.store.View(ctx, func(rd store.Reader) error {
		ids, err := r.state.ownerTokens(account).Members(rd)
		if err != nil {
			return fmt.Errorf("failed to list tokens of %s: %w", account, err)
		}
		views, err = r.tokenViews(rd, ids, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// NftMetadata returns the collection metadata
func (r *registry) NftMetadata(ctx context.Context) (*domain.CollectionMetadata, error) {
	var metadata *domain.CollectionMetadata
	err := r.store.View(ctx, func(rd store.Reader) error {
		m, ok, err := r.state.collectionMetadata.Get(rd)
		if err != nil {
			return fmt.Errorf("failed to get collection metadata: %w", err)
		}
		if !ok {
			return domain.ErrNotInitialized
		}
		metadata = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return metadata, nil
}

// NftIsApproved reports whether account is approved for tokenID
func (r *registry) NftIsApproved(ctx context.Context, tokenID domain.TokenID, account domain.AccountID, approvalID *uint64) (bool, error) {
	var approved bool
	err := r.store.View(ctx, func(rd store.Reader) error {
		token, ok, err := r.state.tokensByID.Get(rd, tokenID)
		if err != nil {
			return fmt.Errorf("failed to get token %s: %w", tokenID, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTokenNotFound, tokenID)
		}
		approved = token.IsApproved(account, approvalID)
		return nil
	})
	return approved, err
}

// OwnerID returns the registry administrator
func (r *registry) OwnerID(ctx context.Context) (domain.AccountID, error) {
	var owner domain.AccountID
	err := r.store.View(ctx, func(rd store.Reader) error {
		st, err := r.state.load(rd)
		if err != nil {
			return err
		}
		owner = st.OwnerID
		return nil
	})
	return owner, err
}

func (r *registry) tokenView(rd store.Reader, tokenID domain.TokenID) (*domain.TokenView, error) {
	token, ok, err := r.state.tokensByID.Get(rd, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token %s: %w", tokenID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenNotFound, tokenID)
	}

	metadata, ok, err := r.state.tokenMetadataByID.Get(rd, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for %s: %w", tokenID, err)
	}
	if !ok {
		return nil, fmt.Errorf("token %s has no metadata", tokenID)
	}

	return &domain.TokenView{
		TokenID:            tokenID,
		OwnerID:            token.OwnerID,
		Metadata:           *metadata,
		ApprovedAccountIDs: token.ApprovedAccountIDs,
		Royalty:            token.Royalty,
	}, nil
}

// tokenViews sorts ids by identifier and returns the views of the requested page
func (r *registry) tokenViews(rd store.Reader, ids []domain.TokenID, page Page) ([]domain.TokenView, error) {
	domain.SortTokenIDs(ids)

	limit := page.Limit
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if page.FromIndex >= uint64(len(ids)) {
		return []domain.TokenView{}, nil
	}
	end := page.FromIndex + limit
	if end > uint64(len(ids)) || end < page.FromIndex {
		end = uint64(len(ids))
	}

	views := make([]domain.TokenView, 0, end-page.FromIndex)
	for _, id := range ids[page.FromIndex:end] {
		view, err := r.tokenView(rd, id)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
