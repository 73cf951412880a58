package interfaces

import (
	"context"
	"time"

	"smarterdev/domain/entities"
	"smarterdev/domain/events"
)

// Cache is a key/value store with TTL and pattern-based invalidation.
// Get returns (nil, nil) on a miss. The service treats every cache failure
// as best-effort: errors are logged and swallowed, never propagated.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	InvalidatePattern(ctx context.Context, pattern string) error
}

// EventPublisher publishes domain events for the audit trail and downstream
// consumers. Publishing is best-effort from the service's point of view.
type EventPublisher interface {
	Publish(event events.Event) error
}

// ServiceStats is a point-in-time snapshot of the service's in-memory
// performance counters.
type ServiceStats struct {
	BalanceRequests int64
	DailyClaims     int64
	Transfers       int64
	CacheHits       int64
	CacheMisses     int64
	CacheHitRate    float64
	CacheEnabled    bool
}

// BytesUser is the minimal view of a Discord user the transfer operation
// needs; satisfied by the command layer's resolved member objects.
type BytesUser interface {
	ID() string
	Username() string
}

// BytesService is the single point of business-rule enforcement for every
// bytes economy operation.
type BytesService interface {
	GetBalance(ctx context.Context, guildID, userID string, useCache bool) (*entities.BytesBalance, error)
	ClaimDaily(ctx context.Context, guildID, userID, username string) (*entities.DailyClaimResult, error)
	TransferBytes(ctx context.Context, guildID string, giver, receiver BytesUser, amount int64, reason string) (*entities.TransferResult, error)
	TransferBytesByID(ctx context.Context, guildID, giverID, giverUsername, receiverID, receiverUsername string, amount int64, reason string) (*entities.TransferResult, error)
	GetConfig(ctx context.Context, guildID string, useCache bool) (*entities.BytesConfig, error)
	GetLeaderboard(ctx context.Context, guildID string, limit int, useCache bool) ([]*entities.LeaderboardEntry, error)
	GetTransactionHistory(ctx context.Context, guildID, userID string, limit int, useCache bool) ([]*entities.BytesTransaction, error)
	ResetStreak(ctx context.Context, guildID, userID, adminID string) (*entities.BytesBalance, error)
	GetServiceStats() ServiceStats
}
