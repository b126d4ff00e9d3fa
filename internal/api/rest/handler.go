package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-nft-registry/internal/api/middleware"
	"github.com/feral-file/ff-nft-registry/internal/contract"
	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/types"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// NftMint mints a token with caller-supplied metadata
	// POST /api/v1/nft/mint
	NftMint(c *gin.Context)

	// Mint mints a token with stock metadata
	// POST /api/v1/mint
	Mint(c *gin.Context)

	// UpdateMetadata replaces the metadata of a token owned by the caller
	// PUT /api/v1/tokens/:token_id/metadata
	UpdateMetadata(c *gin.Context)

	// GetToken retrieves a single token
	// GET /api/v1/tokens/:token_id
	GetToken(c *gin.Context)

	// ListTokens lists tokens in identifier order
	// GET /api/v1/tokens?from_index=<index>&limit=<limit>
	ListTokens(c *gin.Context)

	// ListOwnerTokens lists the tokens held by an account
	// GET /api/v1/owners/:account_id/tokens?from_index=<index>&limit=<limit>
	ListOwnerTokens(c *gin.Context)

	// GetCollection retrieves the collection metadata and supply
	// GET /api/v1/collection
	GetCollection(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

type handler struct {
	registry contract.Registry
}

// NewHandler creates a new REST API handler
func NewHandler(registry contract.Registry) Handler {
	return &handler{registry: registry}
}

// NftMint mints a token for the receiver with the metadata in the body
func (h *handler) NftMint(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		respondUnauthorized(c, "Caller identity is required")
		return
	}

	var req NftMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call := contract.Call{Signer: caller, AttachedDeposit: req.AttachedDeposit}
	res, err := h.registry.NftMint(c.Request.Context(), call, req.ReceiverID, *req.Metadata)
	if err != nil {
		respondRegistryError(c, err, "nft_mint")
		return
	}

	c.JSON(http.StatusCreated, newMintResponse(res))
}

// Mint mints a token for the receiver with stock metadata
func (h *handler) Mint(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		respondUnauthorized(c, "Caller identity is required")
		return
	}

	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	call := contract.Call{Signer: caller, AttachedDeposit: req.AttachedDeposit}
	res, err := h.registry.Mint(c.Request.Context(), call, req.ReceiverID)
	if err != nil {
		respondRegistryError(c, err, "mint")
		return
	}

	c.JSON(http.StatusCreated, newMintResponse(res))
}

// UpdateMetadata overwrites the metadata of a token owned by the caller
func (h *handler) UpdateMetadata(c *gin.Context) {
	caller, ok := middleware.CallerID(c)
	if !ok {
		respondUnauthorized(c, "Caller identity is required")
		return
	}

	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	var req UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	call := contract.Call{Signer: caller, AttachedDeposit: req.AttachedDeposit}
	res, err := h.registry.NftUpdate(c.Request.Context(), call, tokenID, *req.Metadata)
	if err != nil {
		respondRegistryError(c, err, "nft_update")
		return
	}

	c.JSON(http.StatusOK, MutationResponse{Message: res.Message})
}

// GetToken retrieves a single token joined with its metadata
func (h *handler) GetToken(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	view, err := h.registry.NftToken(c.Request.Context(), tokenID)
	if err != nil {
		respondRegistryError(c, err, "nft_token")
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListTokens lists tokens in identifier order
func (h *handler) ListTokens(c *gin.Context) {
	params, err := ParsePageQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.registry.NftTokens(ctx, params.Page())
	if err != nil {
		respondRegistryError(c, err, "nft_tokens")
		return
	}

	total, err := h.registry.NftTotalSupply(ctx)
	if err != nil {
		respondRegistryError(c, err, "nft_total_supply")
		return
	}

	c.JSON(http.StatusOK, TokenListResponse{
		Tokens:    tokens,
		FromIndex: params.FromIndex,
		Limit:     params.Limit,
		Total:     total,
	})
}

// ListOwnerTokens lists the tokens held by an account together with its supply
func (h *handler) ListOwnerTokens(c *gin.Context) {
	account, err := domain.ParseAccountID(c.Param("account_id"))
	if err != nil {
		respondBadRequest(c, "Invalid account ID", err.Error())
		return
	}

	params, err := ParsePageQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.registry.NftTokensForOwner(ctx, account, params.Page())
	if err != nil {
		respondRegistryError(c, err, "nft_tokens_for_owner")
		return
	}

	supply, err := h.registry.NftSupplyForOwner(ctx, account)
	if err != nil {
		respondRegistryError(c, err, "nft_supply_for_owner")
		return
	}

	c.JSON(http.StatusOK, OwnerTokensResponse{
		OwnerID:   account,
		Tokens:    tokens,
		FromIndex: params.FromIndex,
		Limit:     params.Limit,
		Supply:    supply,
	})
}

// GetCollection retrieves the collection metadata, owner and total supply
func (h *handler) GetCollection(c *gin.Context) {
	ctx := c.Request.Context()

	metadata, err := h.registry.NftMetadata(ctx)
	if err != nil {
		respondRegistryError(c, err, "nft_metadata")
		return
	}

	owner, err := h.registry.OwnerID(ctx)
	if err != nil {
		respondRegistryError(c, err, "owner_id")
		return
	}

	total, err := h.registry.NftTotalSupply(ctx)
	if err != nil {
		respondRegistryError(c, err, "nft_total_supply")
		return
	}

	c.JSON(http.StatusOK, CollectionResponse{
		OwnerID:     owner,
		Metadata:    *metadata,
		TotalSupply: total,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-nft-registry",
	})
}

// tokenIDParam reads the token_id path parameter and responds 400 when it is not a decimal identifier
func tokenIDParam(c *gin.Context) (domain.TokenID, bool) {
	tokenID := c.Param("token_id")
	if !types.IsDecimal(tokenID) {
		respondBadRequest(c, "Invalid token ID", tokenID)
		return "", false
	}
	return domain.TokenID(tokenID), true
}
