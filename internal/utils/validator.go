// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("notblank", validators.NotBlank)
	validate.RegisterValidation("username", validateUsername)

	// Report fields by their JSON name so messages match request bodies.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUsername(fl validator.FieldLevel) bool {
	username := strings.TrimSpace(fl.Field().String())
	return len(username) > 0 && len(username) <= 64
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FirstValidationError returns the first failing field in struct
// declaration order.
func FirstValidationError(err error) (ValidationError, bool) {
	errs := GetValidationErrors(err)
	if len(errs) == 0 {
		return ValidationError{}, false
	}
	return errs[0], true
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "Missing required field: " + e.Field()
	case "gte", "min":
		return e.Field() + " must be at least " + e.Param()
	case "lte", "max":
		return e.Field() + " must be at most " + e.Param()
	case "username":
		return "Username must be 1-64 characters"
	default:
		return e.Field() + " is invalid"
	}
}
