// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	"net/http"

	validatorLib "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator wraps a go-playground validator instance.
type Validator struct {
	validate *validatorLib.Validate
}

// New creates an echo-compatible validator.
func New() *Validator {
	return &Validator{validate: validatorLib.New()}
}

// Validate checks the struct tags of the bound request payload. Failures
// surface as 400 with the validator's message.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
