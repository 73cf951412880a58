package entities

// LeaderboardEntry is one ranked row of a guild's bytes leaderboard.
// Derived and ephemeral: recomputed from current balances, never persisted.
// Rank is assigned in the order the backend returns entries; the backend is
// the source of truth for ordering.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Balance       int64  `json:"balance"`
	TotalReceived int64  `json:"total_received"`
	StreakCount   int    `json:"streak_count"`
}
