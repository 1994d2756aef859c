package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// Alert types are lowercase identifiers like "cpu_high"
	alertTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{2,63}$`)
)

// SanitizeString removes control characters and trims whitespace.
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateAlertType checks that an alert type is a well-formed
// lowercase identifier.
func ValidateAlertType(alertType string) error {
	alertType = SanitizeString(alertType)

	if alertType == "" {
		return errors.New("alert type cannot be empty")
	}

	if !alertTypeRegex.MatchString(alertType) {
		return errors.New("alert type must start with a letter and contain only lowercase letters, numbers, and underscores")
	}

	return nil
}

// ValidateAlertMessage bounds and sanitizes a human-readable message.
func ValidateAlertMessage(message string) error {
	message = SanitizeString(message)

	if message == "" {
		return errors.New("alert message cannot be empty")
	}

	if len(message) > 500 {
		return errors.New("alert message must not exceed 500 characters")
	}

	return nil
}

// ValidatePassword checks that a password meets minimum strength
// requirements before hashing.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return errors.New("password must not exceed 128 characters")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}

	return nil
}

// ValidateThresholds checks that alert and critical thresholds are
// consistent with each other.
func ValidateThresholds(alert, critical float64) error {
	if alert < 0 {
		return errors.New("alert threshold cannot be negative")
	}

	if critical > 0 && critical < alert {
		return errors.New("critical threshold must be greater than or equal to alert threshold")
	}

	return nil
}
