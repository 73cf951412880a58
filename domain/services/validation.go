package services

import (
	"fmt"
	"strings"
)

// maliciousPatterns are substrings that should never appear in a Discord ID:
// SQL and script injection tokens, template/path traversal, control bytes.
var maliciousPatterns = []string{
	"';", "'--", "DROP", "SELECT", "INSERT", "UPDATE", "DELETE",
	"<SCRIPT", "JAVASCRIPT:", "${", "../", "..\\",
	"\x00", "\x01", "\x02",
}

// validateDiscordID validates a Discord snowflake ID for format and basic
// injection hardening. Snowflakes are ~18 digits; the 10-100 range allows
// for edge cases without accepting arbitrary payloads.
func validateDiscordID(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}

	valueUpper := strings.ToUpper(value)
	for _, pattern := range maliciousPatterns {
		if strings.Contains(valueUpper, pattern) {
			return NewValidationError(fieldName, fmt.Sprintf("invalid %s format", fieldName))
		}
	}

	if !isDigits(value) {
		return NewValidationError(fieldName, fmt.Sprintf("invalid %s format", fieldName))
	}

	if len(value) < 10 || len(value) > 100 {
		return NewValidationError(fieldName, fmt.Sprintf("invalid %s format", fieldName))
	}

	return nil
}

// validateRequired checks that a free-form field (e.g. a username) is not blank.
func validateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
