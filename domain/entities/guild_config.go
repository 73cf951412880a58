package entities

import (
	"time"
)

// BytesConfig holds a guild's economy-wide settings. Read-mostly: guild
// administrators change it through the backend, and it is cached with a
// longer TTL than balances.
type BytesConfig struct {
	GuildID         string    `json:"guild_id"`
	StartingBalance int64     `json:"starting_balance"`
	DailyAmount     int64     `json:"daily_amount"`
	MaxTransfer     int64     `json:"max_transfer"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TransferCap returns the guild's transfer ceiling, or 0 when the guild
// has not restricted transfers beyond the global cap.
func (c *BytesConfig) TransferCap() int64 {
	if c.MaxTransfer < 0 {
		return 0
	}
	return c.MaxTransfer
}
