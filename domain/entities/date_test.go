package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.March, 15), date)

	_, err = ParseDate("not a date")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-40")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	date := NewDate(2024, time.March, 5)

	data, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, date.Equal(decoded))
}

func TestDate_DateOfNormalizesToUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, NewDate(2024, time.March, 16), DateOf(ts))
}

func TestDate_IsZero(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, NewDate(2024, time.January, 1).IsZero())
}
