// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "minishop/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator.Validate instance for Echo.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates a CustomValidator with struct-tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{validate: playground.New()}
}

// Validate implements echo.Validator. Violations surface as the domain's
// validation error so the error handler maps them to 422.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
