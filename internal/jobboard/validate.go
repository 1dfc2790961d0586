package jobboard

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/garnizeh/jobboard/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and reports the first failing
// field as invalid input.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.New(apperr.ErrInvalidInput, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
	}
	return apperr.Wrap(apperr.ErrInvalidInput, "invalid input", err)
}
