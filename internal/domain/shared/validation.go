package shared

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	phoneRegex = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// IsValidPhone reports whether s looks like a phone number
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// RequireText validates a required free-text field after trimming.
// A max of 0 disables the upper bound.
func RequireText(code, field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return NewValidationError(code, fmt.Sprintf("%s is required", field))
	}
	if min > 0 && n < min {
		return NewValidationError(code, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	if max > 0 && n > max {
		return NewValidationError(code, fmt.Sprintf("%s cannot exceed %d characters", field, max))
	}
	return nil
}

// MaxText validates an optional free-text field length
func MaxText(code, field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewValidationError(code, fmt.Sprintf("%s cannot exceed %d characters", field, max))
	}
	return nil
}
