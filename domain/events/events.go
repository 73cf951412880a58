package events

// EventType represents different types of economy events in the system
type EventType string

const (
	EventTypeDailyClaimed     EventType = "daily_claimed"
	EventTypeBytesTransferred EventType = "bytes_transferred"
	EventTypeStreakReset      EventType = "streak_reset"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// DailyClaimedEvent records a successful daily reward claim
type DailyClaimedEvent struct {
	GuildID    string `json:"guild_id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Earned     int64  `json:"earned"`
	Streak     int    `json:"streak"`
	Multiplier int    `json:"multiplier"`
}

func (e DailyClaimedEvent) Type() EventType {
	return EventTypeDailyClaimed
}

// BytesTransferredEvent records a completed peer-to-peer transfer
type BytesTransferredEvent struct {
	GuildID       string `json:"guild_id"`
	TransactionID string `json:"transaction_id"`
	GiverID       string `json:"giver_id"`
	ReceiverID    string `json:"receiver_id"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason,omitempty"`
}

func (e BytesTransferredEvent) Type() EventType {
	return EventTypeBytesTransferred
}

// StreakResetEvent records an admin streak reset for the audit trail
type StreakResetEvent struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	AdminID string `json:"admin_id"`
}

func (e StreakResetEvent) Type() EventType {
	return EventTypeStreakReset
}
