package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "ramadanwatch/internal/errors"
)

// APIKeyHeader carries the reload key.
const APIKeyHeader = "X-API-Key"

// ReloadAuth guards the reload endpoint with a shared API key. With no key
// configured the endpoint is disabled and every request gets 503.
func ReloadAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWith(c, apperrors.ErrReloadDisabled)
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWith(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode,
		gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}})
}
