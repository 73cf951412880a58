package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesBalance_DecodeBackendPayload(t *testing.T) {
	payload := `{
		"guild_id": "123456789012345678",
		"user_id": "111111111111111111",
		"balance": 250,
		"total_received": 400,
		"total_sent": 150,
		"streak_count": 12,
		"last_daily": "2024-03-15",
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": "2024-03-15T08:30:00Z"
	}`

	var balance BytesBalance
	require.NoError(t, json.Unmarshal([]byte(payload), &balance))

	assert.Equal(t, int64(250), balance.Balance)
	assert.Equal(t, 12, balance.StreakCount)
	require.NotNil(t, balance.LastDaily)
	assert.Equal(t, NewDate(2024, time.March, 15), *balance.LastDaily)
}

func TestBytesBalance_DecodeNullLastDaily(t *testing.T) {
	payload := `{"guild_id": "123456789012345678", "user_id": "111111111111111111", "balance": 100, "last_daily": null}`

	var balance BytesBalance
	require.NoError(t, json.Unmarshal([]byte(payload), &balance))
	assert.Nil(t, balance.LastDaily)
}

func TestBytesBalance_ClaimedOn(t *testing.T) {
	day := NewDate(2024, time.March, 15)
	balance := &BytesBalance{LastDaily: &day}

	assert.True(t, balance.ClaimedOn(NewDate(2024, time.March, 15)))
	assert.False(t, balance.ClaimedOn(NewDate(2024, time.March, 16)))

	neverClaimed := &BytesBalance{}
	assert.False(t, neverClaimed.ClaimedOn(day))
}

func TestBytesBalance_HasSufficientBalance(t *testing.T) {
	balance := &BytesBalance{Balance: 100}

	assert.True(t, balance.HasSufficientBalance(100))
	assert.True(t, balance.HasSufficientBalance(1))
	assert.False(t, balance.HasSufficientBalance(101))
}

func TestBytesConfig_TransferCap(t *testing.T) {
	assert.Equal(t, int64(500), (&BytesConfig{MaxTransfer: 500}).TransferCap())
	assert.Equal(t, int64(0), (&BytesConfig{MaxTransfer: 0}).TransferCap())
	// Negative means unrestricted, not a cap of a negative amount
	assert.Equal(t, int64(0), (&BytesConfig{MaxTransfer: -1}).TransferCap())
}

func TestBytesTransaction_SystemGrant(t *testing.T) {
	grant := &BytesTransaction{ReceiverID: "111111111111111111", Amount: 10}
	assert.True(t, grant.IsSystemGrant())

	transfer := &BytesTransaction{GiverID: "222222222222222222", ReceiverID: "111111111111111111", Amount: 10}
	assert.False(t, transfer.IsSystemGrant())
	assert.True(t, transfer.Involves("222222222222222222"))
	assert.True(t, transfer.Involves("111111111111111111"))
	assert.False(t, transfer.Involves("333333333333333333"))
}

func TestFailedTransfer(t *testing.T) {
	result := FailedTransfer("nope")
	assert.False(t, result.Success)
	assert.Equal(t, "nope", result.Reason)
	assert.Nil(t, result.Transaction)
}
