package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a binding error into a structured error detail
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		fields := NewValidationErrors()
		for _, e := range validationErrors {
			fields.AddError(e.Field(), formatFieldError(e))
		}
		return detail.WithDetails(fields.Errors)
	}
	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "len":
		return e.Field() + " must be exactly " + e.Param() + " characters"
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
