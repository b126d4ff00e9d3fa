package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-nft-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-registry/internal/logger"
)

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError sends a 422 Unprocessable Entity response
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(details))
}

// respondUnauthorized sends a 401 Unauthorized response
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError(message))
}

// respondRegistryError classifies err and sends the matching response.
// Unclassified errors are logged and reported as 500.
func respondRegistryError(c *gin.Context, err error, operation string) {
	status, apiErr := apierrors.FromDomainError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", operation))
	} else {
		logger.InfoCtx(c.Request.Context(), "Registry call rejected",
			zap.String("operation", operation),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.JSON(status, apiErr)
}
