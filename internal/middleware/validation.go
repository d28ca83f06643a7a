package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

var setupValidatorOnce sync.Once

// SetupValidator makes gin's validator report JSON field names
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s.", e.Param())
	case "max":
		return fmt.Sprintf("Ensure this value is at most %s.", e.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// validationError converts validator output into a field-naming error
// carrying every field failure in its details.
func validationError(verrs validator.ValidationErrors) error {
	fields := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, dto.FieldError{Field: fe.Field(), Message: formatValidationError(fe)})
	}
	if len(fields) == 0 {
		return apperrors.NewValidationError("", "Invalid request body.")
	}
	first := fields[0]
	return apperrors.NewValidationError(first.Field, fmt.Sprintf("%s: %s", first.Field, first.Message)).
		WithDetails(map[string]interface{}{"fields": fields})
}

// BindingError maps a request binding failure onto the error taxonomy
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validationError(verrs)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.NewValidationError(typeErr.Field, fmt.Sprintf("%s: Incorrect type. Expected %s.", typeErr.Field, typeErr.Type.String()))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperrors.NewBadRequestError(fmt.Sprintf("JSON parse error - %s", syntaxErr.Error()))
	}
	return apperrors.NewBadRequestError("Invalid request body.")
}
