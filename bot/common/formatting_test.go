package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		balance  int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10000, "10,000"},
		{1234567, "1,234,567"},
		{-42, "-42"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBalance(tt.balance))
	}
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "<t:1710547200:R>", FormatDiscordTimestamp(ts))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exactly10!", TruncateString("exactly10!", 10))
	assert.Equal(t, "truncated…", TruncateString("truncated here", 10))

	// Multi-byte runes must not be split
	assert.Equal(t, "héll…", TruncateString("héllo wörld", 5))
}
