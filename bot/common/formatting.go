package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatBalance formats a bytes amount with thousand separators
func FormatBalance(balance int64) string {
	// Convert to string
	str := fmt.Sprintf("%d", balance)
	negative := false
	if strings.HasPrefix(str, "-") {
		negative = true
		str = str[1:]
	}

	// Add commas for thousands
	n := len(str)
	if n <= 3 {
		if negative {
			return "-" + str
		}
		return str
	}

	var result strings.Builder
	if negative {
		result.WriteRune('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatDiscordTimestamp renders a time as a Discord relative timestamp tag
func FormatDiscordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}

// TruncateString shortens a string to max runes, appending an ellipsis
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
