// Package contract implements the token registry: minting, ownership
// indexing, metadata storage and the call boundary that makes every mutating
// operation all-or-nothing.
package contract

import (
	"context"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/deposit"
	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/events"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

const (
	// DefaultPageLimit is used by paginated views when no limit is given
	DefaultPageLimit = 50
)

// Call carries the identity and payment the host attaches to one invocation
type Call struct {
	// Signer is the identity that authorized the call
	Signer domain.AccountID
	// Predecessor is the identity that made the call; refunds go to it.
	// It defaults to Signer when empty.
	Predecessor     domain.AccountID
	AttachedDeposit domain.Balance
}

// Payer returns the identity refunds are sent to
func (c Call) Payer() domain.AccountID {
	if c.Predecessor.IsZero() {
		return c.Signer
	}
	return c.Predecessor
}

// MintResult is returned by successful mints
type MintResult struct {
	TokenID    domain.TokenID `json:"token_id"`
	Message    string         `json:"message,omitempty"`
	Refund     domain.Balance `json:"refund"`
	DeltaBytes uint64         `json:"delta_bytes"`
}

// UpdateResult is returned by successful metadata updates
type UpdateResult struct {
	Message string `json:"message"`
}

// Page selects a window of an ordered listing
type Page struct {
	FromIndex uint64
	Limit     uint64
}

// Registry defines the registry operations
//
//go:generate mockgen -source=contract.go -destination=../mocks/registry.go -package=mocks -mock_names=Registry=MockRegistry
type Registry interface {
	// Init initializes the registry with an owner and collection metadata
	Init(ctx context.Context, owner domain.AccountID, metadata domain.CollectionMetadata) error
	// InitDefault initializes the registry with the built-in collection metadata
	InitDefault(ctx context.Context, owner domain.AccountID) error
	// NftMint mints a token for receiver with caller-supplied metadata
	NftMint(ctx context.Context, call Call, receiver domain.AccountID, metadata domain.TokenMetadata) (*MintResult, error)
	// Mint mints a token for receiver with stock metadata
	Mint(ctx context.Context, call Call, receiver domain.AccountID) (*MintResult, error)
	// NftUpdate overwrites the metadata of a token owned by the caller
	NftUpdate(ctx context.Context, call Call, tokenID domain.TokenID, metadata domain.TokenMetadata) (*UpdateResult, error)

	// NftToken returns one token joined with its metadata
	NftToken(ctx context.Context, tokenID domain.TokenID) (*domain.TokenView, error)
	// NftTokens lists tokens in identifier order
	NftTokens(ctx context.Context, page Page) ([]domain.TokenView, error)
	// NftTotalSupply returns the number of minted tokens
	NftTotalSupply(ctx context.Context) (uint64, error)
	// NftSupplyForOwner returns the number of tokens held by account
	NftSupplyForOwner(ctx context.Context, account domain.AccountID) (uint64, error)
	// NftTokensForOwner lists the tokens held by account in identifier order
	NftTokensForOwner(ctx context.Context, account domain.AccountID, page Page) ([]domain.TokenView, error)
	// NftMetadata returns the collection metadata
	NftMetadata(ctx context.Context) (*domain.CollectionMetadata, error)
	// NftIsApproved reports whether account is approved for tokenID
	NftIsApproved(ctx context.Context, tokenID domain.TokenID, account domain.AccountID, approvalID *uint64) (bool, error)
	// OwnerID returns the registry administrator
	OwnerID(ctx context.Context) (domain.AccountID, error)
}

// Config holds the registry configuration
type Config struct {
	// StockMedia is the media reference given to tokens minted through Mint
	StockMedia string
}

type registry struct {
	store      store.Store
	state      *state
	accountant *deposit.Accountant
	encoder    *events.Encoder
	sink       events.Sink
	json       adapter.JSON
	base64     adapter.Base64
	clock      adapter.Clock
	cfg        Config
}

// New creates a registry over st
func New(
	st store.Store,
	accountant *deposit.Accountant,
	sink events.Sink,
	json adapter.JSON,
	base64 adapter.Base64,
	clock adapter.Clock,
	cfg Config,
) Registry {
	if cfg.StockMedia == "" {
		cfg.StockMedia = domain.STOCK_MEDIA_CID
	}

	return &registry{
		store:      st,
		state:      newState(json),
		accountant: accountant,
		encoder:    events.NewEncoder(json),
		sink:       sink,
		json:       json,
		base64:     base64,
		clock:      clock,
		cfg:        cfg,
	}
}
