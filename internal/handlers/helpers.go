package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "ramadanwatch/internal/errors"
	"ramadanwatch/internal/export"
	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/pricing"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// viewQuery holds the filter parameters shared by the dashboard endpoints.
type viewQuery struct {
	Category string `form:"category" binding:"omitempty,price_category"`
	Format   string `form:"format" binding:"omitempty,export_format"`
}

// parseWeek reads the week query parameter. Missing means 0, the latest week.
func parseWeek(c *gin.Context) (int, error) {
	raw := c.Query("week")
	if raw == "" {
		return 0, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidWeek, "week must be a non-negative integer")
	}
	return week, nil
}

// bindViewQuery binds category and format, mapping validation failures to
// their specific error codes.
func bindViewQuery(c *gin.Context) (pricing.Category, export.Format, error) {
	var q viewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Tag() {
			case "price_category":
				return "", "", apperrors.ErrInvalidCategory
			case "export_format":
				return "", "", apperrors.ErrInvalidFormat
			}
		}
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	category, _ := pricing.ParseCategory(q.Category)
	format, _ := export.ParseFormat(q.Format)
	return category, format, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
