// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ramadanwatch/internal/export"
	"ramadanwatch/internal/pricing"
)

var once sync.Once

// Register registers all custom validators with the Gin binding engine.
// Calling it more than once is a no-op.
func Register() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("price_category", validatePriceCategory)
			_ = v.RegisterValidation("export_format", validateExportFormat)
		}
	})
}

func validatePriceCategory(fl validator.FieldLevel) bool {
	_, ok := pricing.ParseCategory(fl.Field().String())
	return ok
}

func validateExportFormat(fl validator.FieldLevel) bool {
	_, ok := export.ParseFormat(fl.Field().String())
	return ok
}
