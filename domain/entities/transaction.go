package entities

import (
	"time"
)

// BytesTransaction is an immutable record of one transfer or daily claim.
// GiverID is empty for system-granted rewards.
type BytesTransaction struct {
	ID               string    `json:"id"`
	GuildID          string    `json:"guild_id"`
	GiverID          string    `json:"giver_id,omitempty"`
	GiverUsername    string    `json:"giver_username,omitempty"`
	ReceiverID       string    `json:"receiver_id"`
	ReceiverUsername string    `json:"receiver_username,omitempty"`
	Amount           int64     `json:"amount"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsSystemGrant reports whether the transaction was credited by the system
// rather than sent by another user.
func (t *BytesTransaction) IsSystemGrant() bool {
	return t.GiverID == ""
}

// Involves reports whether the given user is either side of the transaction.
func (t *BytesTransaction) Involves(userID string) bool {
	return t.GiverID == userID || t.ReceiverID == userID
}
