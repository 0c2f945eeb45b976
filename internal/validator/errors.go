package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a business validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// ToValidationErrors converts go-playground validation errors into our error type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errors
	}

	errors = append(errors, ValidationError{
		Field:   "request",
		Message: err.Error(),
		Rule:    "invalid",
	})
	return errors
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", err.Param())
	case "url":
		return "must be a valid URL"
	case "workshop_title":
		return "must be between 3 and 200 characters"
	case "seat_count":
		return "must be between 1 and 1000"
	case "price_range":
		return "must be between 0 and 100000"
	case "future_date":
		return "must be in the future"
	case "workshop_mode":
		return "must be online, offline, or hybrid"
	case "registration_mode":
		return "must be automated or manual"
	case "workshop_status":
		return "must be pending, approved, or rejected"
	case "enterprise_status":
		return "must be pending, approved, or rejected"
	case "registration_status":
		return "must be pending, approved, rejected, or confirmed"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
