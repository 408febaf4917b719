package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-screening-backend/internal/domain"
)

// Matches local@domain.tld; intentionally simple, the form only needs to
// reject obvious non-addresses.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
	_ = v.RegisterValidation("intake_email", IntakeEmail)
	_ = v.RegisterValidation("valid_position", ValidPosition)
}

// NotBlank rejects strings that are empty after trimming whitespace.
// "required" alone lets "   " through.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IntakeEmail validates the intake form's email format
func IntakeEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// ValidPosition checks membership in the fixed desired-position options
// rendered by the intake multi-select.
func ValidPosition(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, option := range domain.DesiredPositionOptions {
		if option == val {
			return true
		}
	}
	return false
}
