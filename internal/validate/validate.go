package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a struct field to the validation rule it broke. It is
// returned as the Errors payload of a 422 response.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(fe))
}

// StructFields validates v against its `validate` struct tags and returns a
// [FieldErrors] describing every violation, or nil when v is valid.
func StructFields(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrs[fieldErr.Field()] = fmt.Sprintf(
			"failed on the '%s' rule",
			fieldErr.Tag(),
		)
	}

	return fieldErrs
}
