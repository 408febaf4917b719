package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps intake struct field names to the labels the form shows.
var FieldLabels = map[string]string{
	"FullName":         "Full Name",
	"Email":            "Email Address",
	"PhoneNumber":      "Phone Number",
	"YearsExperience":  "Years of Experience",
	"DesiredPositions": "Desired Position(s)",
	"CurrentLocation":  "Current Location",
	"TechStack":        "Tech Stack",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", label, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, e.Param())
	case "intake_email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "valid_position":
		return fmt.Sprintf("%s must be chosen from the offered options", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
