package validate

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func IsEmail(s string) bool {
	return validate.Var(s, "required,email,max=254") == nil
}

// Struct checks the `validate` tags of a request DTO.
func Struct(v any) error {
	return validate.Struct(v)
}
