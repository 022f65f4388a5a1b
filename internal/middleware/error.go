package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "ramadanwatch/internal/errors"
	"ramadanwatch/internal/logger"
)

// ErrorHandler converts errors set on the Gin context with c.Error into JSON
// error responses. AppErrors keep their code and message; anything else is
// logged and returned as a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		if appErr, ok := apperrors.As(err); ok {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			abortWith(c, appErr)
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		abortWith(c, apperrors.ErrInternalServer)
	}
}

// Recovery turns panics into a logged 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		abortWith(c, apperrors.ErrInternalServer)
	})
}
