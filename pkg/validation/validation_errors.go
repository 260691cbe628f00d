package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a wire field name to every message recorded against it,
// so the caller can highlight all offending inputs at once.
type FieldErrors map[string][]string

// Add appends a message to a field's list.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Collect converts a validator error into field-keyed messages. Errors that
// are not validator.ValidationErrors surface under the "_" key.
func Collect(err error) FieldErrors {
	fields := FieldErrors{}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields.Add("_", err.Error())
		return fields
	}

	for _, e := range validationErrors {
		fields.Add(fieldKey(e), message(e))
	}
	return fields
}

// fieldKey strips the struct prefix from the namespace, keeping nested
// paths like "experience[2].start_date".
func fieldKey(e validator.FieldError) string {
	ns := e.Namespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return e.Field()
}

// message renders a single human-readable reason for a failed rule.
func message(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "is required"

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return fmt.Sprintf("must have at most %s entries", param)

	case "gte":
		return fmt.Sprintf("must be at least %s", param)

	case "lte":
		return fmt.Sprintf("must be at most %s", param)

	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "uuid":
		return "must be a valid UUID"

	case "valid_phone":
		return "must look like a phone number (digits, optional +, optional separators)"

	case "year_month":
		return "must be in YYYY-MM format"

	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}
