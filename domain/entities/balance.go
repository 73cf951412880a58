package entities

import (
	"time"
)

// BytesBalance represents a user's bytes account within a guild.
// It is only ever mutated by the backend through claim and transfer
// operations; this side treats it as a read model.
type BytesBalance struct {
	GuildID       string    `json:"guild_id"`
	UserID        string    `json:"user_id"`
	Balance       int64     `json:"balance"`
	TotalReceived int64     `json:"total_received"`
	TotalSent     int64     `json:"total_sent"`
	StreakCount   int       `json:"streak_count"`
	LastDaily     *Date     `json:"last_daily,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasSufficientBalance checks if the user can cover an amount.
func (b *BytesBalance) HasSufficientBalance(amount int64) bool {
	return b.Balance >= amount
}

// ClaimedOn reports whether the user's last successful daily claim
// happened on the given calendar day.
func (b *BytesBalance) ClaimedOn(day Date) bool {
	return b.LastDaily != nil && b.LastDaily.Equal(day)
}

// HasActiveStreak reports whether the user has an unbroken claim streak.
func (b *BytesBalance) HasActiveStreak() bool {
	return b.StreakCount > 0
}
