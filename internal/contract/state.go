package contract

import (
	"fmt"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/collections"
	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

// Storage key prefixes. Each store owns one so keys never collide.
var (
	prefixTokensPerOwner     = collections.Prefix{0x01}
	prefixTokenPerOwnerInner = collections.Prefix{0x02}
	prefixTokensByID         = collections.Prefix{0x03}
	prefixTokenMetadataByID  = collections.Prefix{0x04}
	prefixCollectionMetadata = collections.Prefix{0x05}
	prefixRegistryState      = collections.Prefix{0x06}
)

// registryState holds the singleton fields of the registry
type registryState struct {
	OwnerID domain.AccountID `json:"owner_id"`
	// NextTokenSeq is the sequence number the next mint is assigned
	NextTokenSeq uint64 `json:"next_token_seq"`
}

// ownerSet marks that an owner's token set has been created
type ownerSet struct{}

// state groups the persistent collections of the registry
type state struct {
	registry           *collections.LazyOption[registryState]
	tokensPerOwner     *collections.LookupMap[domain.AccountID, ownerSet]
	tokensByID         *collections.LookupMap[domain.TokenID, domain.Token]
	tokenMetadataByID  *collections.UnorderedMap[domain.TokenID, domain.TokenMetadata]
	collectionMetadata *collections.LazyOption[domain.CollectionMetadata]
}

func newState(json adapter.JSON) *state {
	return &state{
		registry:           collections.NewLazyOption[registryState](prefixRegistryState, json),
		tokensPerOwner:     collections.NewLookupMap[domain.AccountID, ownerSet](prefixTokensPerOwner, json),
		tokensByID:         collections.NewLookupMap[domain.TokenID, domain.Token](prefixTokensByID, json),
		tokenMetadataByID:  collections.NewUnorderedMap[domain.TokenID, domain.TokenMetadata](prefixTokenMetadataByID, json),
		collectionMetadata: collections.NewLazyOption[domain.CollectionMetadata](prefixCollectionMetadata, json),
	}
}

// load returns the singleton state or ErrNotInitialized
func (s *state) load(r store.Reader) (*registryState, error) {
	st, ok, err := s.registry.Get(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry state: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotInitialized
	}
	return st, nil
}

// ownerTokens returns the token set of owner
func (s *state) ownerTokens(owner domain.AccountID) *collections.UnorderedSet[domain.TokenID] {
	return collections.NewUnorderedSet[domain.TokenID](prefixTokenPerOwnerInner.Child(owner.String()))
}

// addTokenToOwner creates the owner's set on first use and adds tokenID to it
func (s *state) addTokenToOwner(tx store.Txn, owner domain.AccountID, tokenID domain.TokenID) error {
	exists, err := s.tokensPerOwner.Contains(tx, owner)
	if err != nil {
		return fmt.Errorf("failed to look up owner set: %w", err)
	}
	if !exists {
		if _, err := s.tokensPerOwner.Insert(tx, owner, ownerSet{}); err != nil {
			return fmt.Errorf("failed to create owner set: %w", err)
		}
	}

	if _, err := s.ownerTokens(owner).Insert(tx, tokenID); err != nil {
		return fmt.Errorf("failed to add token to owner set: %w", err)
	}
	return nil
}

// removeTokenFromOwner removes tokenID from the owner's set. An emptied set is left in place.
func (s *state) removeTokenFromOwner(tx store.Txn, owner domain.AccountID, tokenID domain.TokenID) error {
	removed, err := s.ownerTokens(owner).Remove(tx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to remove token from owner set: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s is not held by %s", domain.ErrTokenNotFound, tokenID, owner)
	}
	return nil
}
