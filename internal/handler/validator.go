package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a configured validator.Validate carrying the custom
// rules the request structs use
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator builds the shared validator. Repeat calls are no-ops, so
// eager initialization at startup and lazy initialization from tests both
// see the same instance.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()

		// Folder names with leading/trailing whitespace collapse to their
		// trimmed form in the registry, so only reject the all-blank case here
		_ = v.RegisterValidation("notblank", validateNotBlank)

		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator, initializing it on first use
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct runs tag validation against s
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError converts validation failures into a field-to-message
// map safe to return to clients. Only the lowercased field name and a short
// hint are exposed, never struct internals.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errs[strings.ToLower(e.Field())] = messageForTag(e)
	}

	return errs
}

// messageForTag picks the user-facing hint for a failed validation tag
func messageForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "This field cannot be blank"
	case "url":
		return "Must be a valid URL"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", e.Param())
	case "min":
		return fmt.Sprintf("Must have at least %s entries", e.Param())
	default:
		return "Invalid value"
	}
}

// validateNotBlank rejects strings that are empty after trimming
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
