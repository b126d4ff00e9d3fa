package rest

import (
	"errors"

	"github.com/feral-file/ff-nft-registry/internal/contract"
	"github.com/feral-file/ff-nft-registry/internal/domain"
)

// NftMintRequest is the body of POST /api/v1/nft/mint
type NftMintRequest struct {
	ReceiverID      domain.AccountID      `json:"receiver_id" binding:"required"`
	Metadata        *domain.TokenMetadata `json:"metadata"`
	AttachedDeposit domain.Balance        `json:"attached_deposit"`
}

// Validate checks the request body
func (r *NftMintRequest) Validate() error {
	if r.Metadata == nil {
		return errors.New("metadata is required")
	}
	return nil
}

// MintRequest is the body of POST /api/v1/mint
type MintRequest struct {
	ReceiverID      domain.AccountID `json:"receiver_id" binding:"required"`
	AttachedDeposit domain.Balance   `json:"attached_deposit"`
}

// UpdateMetadataRequest is the body of PUT /api/v1/tokens/:token_id/metadata
type UpdateMetadataRequest struct {
	Metadata        *domain.TokenMetadata `json:"metadata"`
	AttachedDeposit domain.Balance        `json:"attached_deposit"`
}

// Validate checks the request body
func (r *UpdateMetadataRequest) Validate() error {
	if r.Metadata == nil {
		return errors.New("metadata is required")
	}
	return nil
}

// MutationResponse is returned by the mutating endpoints
type MutationResponse struct {
	TokenID *domain.TokenID `json:"token_id,omitempty"`
	Message string          `json:"message,omitempty"`
	Refund  domain.Balance  `json:"refund"`
}

func newMintResponse(res *contract.MintResult) MutationResponse {
	tokenID := res.TokenID
	return MutationResponse{
		TokenID: &tokenID,
		Message: res.Message,
		Refund:  res.Refund,
	}
}

// TokenListResponse is returned by GET /api/v1/tokens
type TokenListResponse struct {
	Tokens    []domain.TokenView `json:"tokens"`
	FromIndex uint64             `json:"from_index"`
	Limit     uint64             `json:"limit"`
	Total     uint64             `json:"total"`
}

// OwnerTokensResponse is returned by GET /api/v1/owners/:account_id/tokens
type OwnerTokensResponse struct {
	OwnerID   domain.AccountID   `json:"owner_id"`
	Tokens    []domain.TokenView `json:"tokens"`
	FromIndex uint64             `json:"from_index"`
	Limit     uint64             `json:"limit"`
	Supply    uint64             `json:"supply"`
}

// CollectionResponse is returned by GET /api/v1/collection
type CollectionResponse struct {
	OwnerID     domain.AccountID          `json:"owner_id"`
	Metadata    domain.CollectionMetadata `json:"metadata"`
	TotalSupply uint64                    `json:"total_supply"`
}
