// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gold_purity", validateGoldPurity)
		_ = v.RegisterValidation("stock_tx_type", validateStockTxType)
		_ = v.RegisterValidation("sector", validateSector)
	}
}

// validateGoldPurity accepts only the two karat grades the system supports.
func validateGoldPurity(fl validator.FieldLevel) bool {
	switch fl.Field().Int() {
	case 22, 24:
		return true
	}
	return false
}

func validateStockTxType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell":
		return true
	}
	return false
}

func validateSector(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed_deposit", "gold", "real_estate":
		return true
	}
	return false
}
