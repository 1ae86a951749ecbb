package contract

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "messenger/errors"
)

var validate = validator.New()

// Validate checks a request struct against its validation tags. Failures
// are reported as the validation error kind so callers can map them
// without inspecting validator internals.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
