package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// decimalGTZero validates that a decimal.Decimal field is strictly positive.
// The standard numeric validators do not understand decimal's internal
// representation, so money amounts need their own rule.
func decimalGTZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}

// registerCustomValidators attaches application validations to gin's binding
// engine. Called once during route registration.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dgt0", decimalGTZero)
	}
}
