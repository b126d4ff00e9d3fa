package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-nft-registry/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Mutations act for the authenticated caller
		v1.POST("/nft/mint", middleware.Auth(authCfg), handler.NftMint)
		v1.POST("/mint", middleware.Auth(authCfg), handler.Mint)
		v1.PUT("/tokens/:token_id/metadata", middleware.Auth(authCfg), handler.UpdateMetadata)

		// Views (public read access)
		v1.GET("/tokens/:token_id", handler.GetToken)
		v1.GET("/tokens", handler.ListTokens)
		v1.GET("/owners/:account_id/tokens", handler.ListOwnerTokens)
		v1.GET("/collection", handler.GetCollection)
	}
}
