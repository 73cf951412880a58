package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"smarterdev/domain/entities"
	"smarterdev/domain/events"
	"smarterdev/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// Cache TTLs per derived view.
const (
	cacheTTLBalance      = 5 * time.Minute
	cacheTTLLeaderboard  = time.Minute
	cacheTTLConfig       = 10 * time.Minute
	cacheTTLTransactions = 2 * time.Minute
)

const (
	// maxTransferAmount is the global per-transfer ceiling. Guilds may
	// configure a stricter max_transfer; the narrower of the two gates.
	maxTransferAmount = 10000

	// maxReasonLength bounds the free-form transfer reason.
	maxReasonLength = 200
)

// bytesService implements interfaces.BytesService. It is the sole caller of
// the backend client and cache for bytes economy concerns: every operation
// validates inputs, consults the cache, falls through to the backend on a
// miss, applies business rules, and keeps derived cache views consistent.
type bytesService struct {
	client    interfaces.BackendClient
	cache     interfaces.Cache          // nil disables caching
	publisher interfaces.EventPublisher // nil disables event publishing
	streaks   *StreakService

	balanceRequests atomic.Int64
	dailyClaims     atomic.Int64
	transfers       atomic.Int64
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64
}

// NewBytesService creates a bytes economy service. cache and publisher are
// optional capabilities; passing nil yields a correct, uncached, silent
// service.
func NewBytesService(client interfaces.BackendClient, cache interfaces.Cache, publisher interfaces.EventPublisher) interfaces.BytesService {
	return &bytesService{
		client:    client,
		cache:     cache,
		publisher: publisher,
		streaks:   NewStreakService(),
	}
}

// GetBalance returns a user's bytes balance, served from cache when allowed.
func (s *bytesService) GetBalance(ctx context.Context, guildID, userID string, useCache bool) (*entities.BytesBalance, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}
	if err := validateDiscordID("user_id", userID); err != nil {
		return nil, err
	}

	cacheKey := balanceCacheKey(guildID, userID)
	if useCache {
		var cached entities.BytesBalance
		if s.cacheGet(ctx, cacheKey, &cached) {
			log.WithFields(log.Fields{
				"guild_id": guildID,
				"user_id":  userID,
			}).Debug("Cache hit for balance")
			return &cached, nil
		}
	}

	s.balanceRequests.Add(1)
	s.logOperation("get_balance", log.Fields{"guild_id": guildID, "user_id": userID})

	resp, err := s.client.Get(ctx, fmt.Sprintf("/guilds/%s/bytes/balance/%s", guildID, userID), nil)
	if err != nil {
		s.logError("get_balance", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to get balance", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ResourceNotFoundError{ResourceType: "user_balance", Identifier: guildID + ":" + userID}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorDetail()}
	}

	var balance entities.BytesBalance
	if err := resp.DecodeJSON(&balance); err != nil {
		s.logError("get_balance", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to get balance", err)
	}

	if useCache {
		s.cacheSet(ctx, cacheKey, &balance, cacheTTLBalance)
	}

	return &balance, nil
}

// dailyClaimResponse mirrors the backend's daily claim payload.
type dailyClaimResponse struct {
	Balance      entities.BytesBalance `json:"balance"`
	RewardAmount int64                 `json:"reward_amount"`
	StreakBonus  int                   `json:"streak_bonus"`
	NextClaimAt  *time.Time            `json:"next_claim_at"`
}

// ClaimDaily claims the user's daily bytes reward. A second claim on the
// same UTC day yields AlreadyClaimedError; the failed attempt leaves the
// user's cached balance untouched.
func (s *bytesService) ClaimDaily(ctx context.Context, guildID, userID, username string) (*entities.DailyClaimResult, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}
	if err := validateDiscordID("user_id", userID); err != nil {
		return nil, err
	}
	if err := validateRequired("username", username); err != nil {
		return nil, err
	}

	s.dailyClaims.Add(1)
	s.logOperation("claim_daily", log.Fields{
		"guild_id": guildID,
		"user_id":  userID,
		"username": username,
	})

	resp, err := s.client.Post(ctx, fmt.Sprintf("/guilds/%s/bytes/daily/%s", guildID, userID), nil)
	if err != nil {
		s.logError("claim_daily", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to claim daily reward", err)
	}

	if resp.StatusCode == http.StatusConflict {
		return nil, &AlreadyClaimedError{GuildID: guildID, UserID: userID}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorDetail()}
	}

	var claim dailyClaimResponse
	if err := resp.DecodeJSON(&claim); err != nil {
		s.logError("claim_daily", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to claim daily reward", err)
	}

	multiplier := claim.StreakBonus
	if multiplier < 1 {
		multiplier = 1
	}
	nextClaimAt := s.streaks.NextClaimTime(time.Now())
	if claim.NextClaimAt != nil {
		nextClaimAt = claim.NextClaimAt.UTC()
	}

	result := &entities.DailyClaimResult{
		Success:     true,
		Balance:     &claim.Balance,
		Earned:      claim.RewardAmount,
		Streak:      claim.Balance.StreakCount,
		Multiplier:  multiplier,
		NextClaimAt: nextClaimAt,
	}

	// The new balance and every cached leaderboard view are stale now.
	s.cacheInvalidate(ctx, balanceCacheKey(guildID, userID))
	s.cacheInvalidatePattern(ctx, leaderboardCachePattern(guildID))

	s.publishEvent(events.DailyClaimedEvent{
		GuildID:    guildID,
		UserID:     userID,
		Username:   username,
		Earned:     claim.RewardAmount,
		Streak:     claim.Balance.StreakCount,
		Multiplier: multiplier,
	})

	return result, nil
}

// TransferBytes transfers bytes between two resolved users. It merely
// extracts IDs and usernames and delegates to TransferBytesByID.
func (s *bytesService) TransferBytes(ctx context.Context, guildID string, giver, receiver interfaces.BytesUser, amount int64, reason string) (*entities.TransferResult, error) {
	return s.TransferBytesByID(ctx, guildID, giver.ID(), giver.Username(), receiver.ID(), receiver.Username(), amount, reason)
}

// transferRequest is the backend's transfer creation payload.
type transferRequest struct {
	GiverID          string `json:"giver_id"`
	GiverUsername    string `json:"giver_username"`
	ReceiverID       string `json:"receiver_id"`
	ReceiverUsername string `json:"receiver_username"`
	Amount           int64  `json:"amount"`
	Reason           string `json:"reason,omitempty"`
}

// TransferBytesByID executes a peer-to-peer transfer. User-correctable
// conditions (self-transfer, bad amount, backend-rejected-but-not-funds)
// come back as soft results; malformed input and insufficient funds are
// hard errors so callers can render distinct messages.
func (s *bytesService) TransferBytesByID(ctx context.Context, guildID, giverID, giverUsername, receiverID, receiverUsername string, amount int64, reason string) (*entities.TransferResult, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}
	if err := validateDiscordID("giver_id", giverID); err != nil {
		return nil, err
	}
	if err := validateDiscordID("receiver_id", receiverID); err != nil {
		return nil, err
	}
	if err := validateRequired("giver_username", giverUsername); err != nil {
		return nil, err
	}
	if err := validateRequired("receiver_username", receiverUsername); err != nil {
		return nil, err
	}

	if giverID == receiverID {
		return entities.FailedTransfer("You can't send bytes to yourself!"), nil
	}
	if amount <= 0 {
		return entities.FailedTransfer("Transfer amount must be positive!"), nil
	}
	if amount > maxTransferAmount {
		return entities.FailedTransfer("Transfer amount too large! Maximum is 10,000 bytes."), nil
	}

	// The guild may configure a stricter ceiling than the global cap. The
	// config fetch is best-effort: a config outage must not block transfers
	// that the global cap already allows.
	if cfg, err := s.GetConfig(ctx, guildID, true); err == nil {
		if guildCap := cfg.TransferCap(); guildCap > 0 && amount > guildCap {
			return entities.FailedTransfer(fmt.Sprintf("Transfer amount exceeds this server's limit of %d bytes.", guildCap)), nil
		}
	} else {
		log.WithFields(log.Fields{"guild_id": guildID}).WithError(err).Debug("Skipping guild transfer cap check")
	}

	s.transfers.Add(1)
	s.logOperation("transfer_bytes", log.Fields{
		"guild_id":    guildID,
		"giver_id":    giverID,
		"receiver_id": receiverID,
		"amount":      amount,
	})

	// Pre-check the giver's balance with fresh data. This is a fail-fast
	// optimization: the backend re-validates at transfer time and stays the
	// final arbiter under concurrent transfers.
	giverBalance, err := s.GetBalance(ctx, guildID, giverID, false)
	if err != nil {
		return nil, err
	}
	if !giverBalance.HasSufficientBalance(amount) {
		return nil, &InsufficientBalanceError{
			Required:  amount,
			Available: giverBalance.Balance,
			Operation: "transfer",
		}
	}

	body := transferRequest{
		GiverID:          giverID,
		GiverUsername:    giverUsername,
		ReceiverID:       receiverID,
		ReceiverUsername: receiverUsername,
		Amount:           amount,
		Reason:           truncateReason(reason),
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf("/guilds/%s/bytes/transactions", guildID), body)
	if err != nil {
		s.logError("transfer_bytes", err, log.Fields{
			"guild_id":    guildID,
			"giver_id":    giverID,
			"receiver_id": receiverID,
			"amount":      amount,
		})
		return nil, newServiceError("failed to transfer bytes", err)
	}

	if resp.StatusCode >= 400 {
		message := resp.ErrorDetail()
		if strings.Contains(strings.ToLower(message), "insufficient balance") {
			return nil, &InsufficientBalanceError{
				Required:  amount,
				Available: giverBalance.Balance,
				Operation: "transfer",
			}
		}
		return entities.FailedTransfer(message), nil
	}

	var transaction entities.BytesTransaction
	if err := resp.DecodeJSON(&transaction); err != nil {
		s.logError("transfer_bytes", err, log.Fields{"guild_id": guildID, "giver_id": giverID})
		return nil, newServiceError("failed to transfer bytes", err)
	}

	// Computed locally to skip a round trip; the transfer already succeeded
	// server-side, so a receiver-balance fetch failure is not a failure here.
	newGiverBalance := giverBalance.Balance - amount
	var newReceiverBalance *int64
	if receiverBalance, err := s.GetBalance(ctx, guildID, receiverID, false); err == nil {
		value := receiverBalance.Balance
		newReceiverBalance = &value
	} else {
		log.WithFields(log.Fields{
			"guild_id":    guildID,
			"receiver_id": receiverID,
		}).WithError(err).Debug("Could not fetch receiver balance after transfer")
	}

	s.cacheInvalidate(ctx, balanceCacheKey(guildID, giverID))
	s.cacheInvalidate(ctx, balanceCacheKey(guildID, receiverID))
	s.cacheInvalidatePattern(ctx, leaderboardCachePattern(guildID))
	s.cacheInvalidatePattern(ctx, transactionsCachePattern(guildID))

	s.publishEvent(events.BytesTransferredEvent{
		GuildID:       guildID,
		TransactionID: transaction.ID,
		GiverID:       giverID,
		ReceiverID:    receiverID,
		Amount:        amount,
		Reason:        truncateReason(reason),
	})

	return &entities.TransferResult{
		Success:            true,
		Transaction:        &transaction,
		NewGiverBalance:    newGiverBalance,
		NewReceiverBalance: newReceiverBalance,
	}, nil
}

// GetConfig returns the guild's economy configuration.
func (s *bytesService) GetConfig(ctx context.Context, guildID string, useCache bool) (*entities.BytesConfig, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}

	cacheKey := configCacheKey(guildID)
	if useCache {
		var cached entities.BytesConfig
		if s.cacheGet(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	s.logOperation("get_config", log.Fields{"guild_id": guildID})

	resp, err := s.client.Get(ctx, fmt.Sprintf("/guilds/%s/bytes/config", guildID), nil)
	if err != nil {
		s.logError("get_config", err, log.Fields{"guild_id": guildID})
		return nil, newServiceError("failed to get config", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ResourceNotFoundError{ResourceType: "guild_config", Identifier: guildID}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorDetail()}
	}

	var config entities.BytesConfig
	if err := resp.DecodeJSON(&config); err != nil {
		s.logError("get_config", err, log.Fields{"guild_id": guildID})
		return nil, newServiceError("failed to get config", err)
	}

	if useCache {
		s.cacheSet(ctx, cacheKey, &config, cacheTTLConfig)
	}

	return &config, nil
}

// GetLeaderboard returns the guild's top balances, ranked 1..N in backend
// order. This layer does not re-sort.
func (s *bytesService) GetLeaderboard(ctx context.Context, guildID string, limit int, useCache bool) ([]*entities.LeaderboardEntry, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		return nil, NewValidationError("limit", "limit must be between 1 and 100")
	}

	cacheKey := leaderboardCacheKey(guildID, limit)
	if useCache {
		var cached []*entities.LeaderboardEntry
		if s.cacheGet(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	s.logOperation("get_leaderboard", log.Fields{"guild_id": guildID, "limit": limit})

	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	resp, err := s.client.Get(ctx, fmt.Sprintf("/guilds/%s/bytes/leaderboard", guildID), query)
	if err != nil {
		s.logError("get_leaderboard", err, log.Fields{"guild_id": guildID, "limit": limit})
		return nil, newServiceError("failed to get leaderboard", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorDetail()}
	}

	var payload struct {
		Users []*entities.LeaderboardEntry `json:"users"`
	}
	if err := resp.DecodeJSON(&payload); err != nil {
		s.logError("get_leaderboard", err, log.Fields{"guild_id": guildID, "limit": limit})
		return nil, newServiceError("failed to get leaderboard", err)
	}

	entries := payload.Users
	if entries == nil {
		entries = []*entities.LeaderboardEntry{}
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}

	if useCache {
		s.cacheSet(ctx, cacheKey, entries, cacheTTLLeaderboard)
	}

	return entries, nil
}

// GetTransactionHistory returns recent transactions for the guild, optionally
// filtered to one user. Order is as returned by the backend (newest first).
func (s *bytesService) GetTransactionHistory(ctx context.Context, guildID, userID string, limit int, useCache bool) ([]*entities.BytesTransaction, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}
	if userID != "" {
		if err := validateDiscordID("user_id", userID); err != nil {
			return nil, err
		}
	}
	if limit <= 0 || limit > 100 {
		return nil, NewValidationError("limit", "limit must be between 1 and 100")
	}

	cacheKey := transactionsCacheKey(guildID, userID, limit)
	if useCache {
		var cached []*entities.BytesTransaction
		if s.cacheGet(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	s.logOperation("get_transaction_history", log.Fields{
		"guild_id": guildID,
		"user_id":  userID,
		"limit":    limit,
	})

	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if userID != "" {
		query.Set("user_id", userID)
	}
	resp, err := s.client.Get(ctx, fmt.Sprintf("/guilds/%s/bytes/transactions", guildID), query)
	if err != nil {
		s.logError("get_transaction_history", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to get transaction history", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorDetail()}
	}

	var payload struct {
		Transactions []*entities.BytesTransaction `json:"transactions"`
	}
	if err := resp.DecodeJSON(&payload); err != nil {
		s.logError("get_transaction_history", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to get transaction history", err)
	}

	transactions := payload.Transactions
	if transactions == nil {
		transactions = []*entities.BytesTransaction{}
	}

	if useCache {
		s.cacheSet(ctx, cacheKey, transactions, cacheTTLTransactions)
	}

	return transactions, nil
}

// ResetStreak resets a user's daily claim streak. Admin permission gating is
// the command layer's responsibility; this layer only records who did it.
func (s *bytesService) ResetStreak(ctx context.Context, guildID, userID, adminID string) (*entities.BytesBalance, error) {
	if err := validateDiscordID("guild_id", guildID); err != nil {
		return nil, err
	}
	if err := validateDiscordID("user_id", userID); err != nil {
		return nil, err
	}
	if err := validateDiscordID("admin_id", adminID); err != nil {
		return nil, err
	}

	s.logOperation("reset_streak", log.Fields{
		"guild_id": guildID,
		"user_id":  userID,
		"admin_id": adminID,
	})

	resp, err := s.client.Post(ctx, fmt.Sprintf("/guilds/%s/bytes/reset-streak/%s", guildID, userID), nil)
	if err != nil {
		s.logError("reset_streak", err, log.Fields{"guild_id": guildID, "user_id": userID, "admin_id": adminID})
		return nil, newServiceError("failed to reset streak", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ResourceNotFoundError{ResourceType: "user_balance", Identifier: guildID + ":" + userID}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorDetail()}
	}

	var balance entities.BytesBalance
	if err := resp.DecodeJSON(&balance); err != nil {
		s.logError("reset_streak", err, log.Fields{"guild_id": guildID, "user_id": userID})
		return nil, newServiceError("failed to reset streak", err)
	}

	s.cacheInvalidate(ctx, balanceCacheKey(guildID, userID))

	s.publishEvent(events.StreakResetEvent{
		GuildID: guildID,
		UserID:  userID,
		AdminID: adminID,
	})

	return &balance, nil
}

// GetServiceStats returns a snapshot of the in-memory performance counters.
// No backend or cache interaction, no failure mode.
func (s *bytesService) GetServiceStats() interfaces.ServiceStats {
	hits := s.cacheHits.Load()
	misses := s.cacheMisses.Load()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return interfaces.ServiceStats{
		BalanceRequests: s.balanceRequests.Load(),
		DailyClaims:     s.dailyClaims.Load(),
		Transfers:       s.transfers.Load(),
		CacheHits:       hits,
		CacheMisses:     misses,
		CacheHitRate:    hitRate,
		CacheEnabled:    s.cache != nil,
	}
}

// Cache helpers. All of them tolerate a nil cache and swallow cache errors:
// a cache failure must never fail the surrounding operation.

func (s *bytesService) cacheGet(ctx context.Context, key string, v any) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WithField("key", key).WithError(err).Warn("Cache read failed, treating as miss")
		s.cacheMisses.Add(1)
		return false
	}
	if data == nil {
		s.cacheMisses.Add(1)
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.WithField("key", key).WithError(err).Warn("Corrupted cache entry, treating as miss")
		s.cacheMisses.Add(1)
		return false
	}

	s.cacheHits.Add(1)
	return true
}

func (s *bytesService) cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.WithField("key", key).WithError(err).Warn("Failed to serialize cache entry")
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		log.WithField("key", key).WithError(err).Warn("Cache write failed")
	}
}

func (s *bytesService) cacheInvalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		log.WithField("key", key).WithError(err).Warn("Cache invalidation failed")
	}
}

func (s *bytesService) cacheInvalidatePattern(ctx context.Context, pattern string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePattern(ctx, pattern); err != nil {
		log.WithField("pattern", pattern).WithError(err).Warn("Cache pattern invalidation failed")
	}
}

func (s *bytesService) publishEvent(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		log.WithField("event_type", event.Type()).WithError(err).Warn("Failed to publish economy event")
	}
}

func (s *bytesService) logOperation(operation string, fields log.Fields) {
	log.WithFields(fields).WithField("operation", operation).Debug("Executing bytes operation")
}

func (s *bytesService) logError(operation string, err error, fields log.Fields) {
	log.WithFields(fields).WithFields(log.Fields{
		"operation": operation,
		"error":     err,
	}).Error("Bytes operation failed")
}

// Cache key builders.

func balanceCacheKey(guildID, userID string) string {
	return fmt.Sprintf("bytes:balance:%s:%s", guildID, userID)
}

func configCacheKey(guildID string) string {
	return fmt.Sprintf("bytes:config:%s", guildID)
}

func leaderboardCacheKey(guildID string, limit int) string {
	return fmt.Sprintf("bytes:leaderboard:%s:%d", guildID, limit)
}

func leaderboardCachePattern(guildID string) string {
	return fmt.Sprintf("bytes:leaderboard:%s:*", guildID)
}

func transactionsCacheKey(guildID, userID string, limit int) string {
	scope := userID
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("bytes:transactions:%s:%s:%d", guildID, scope, limit)
}

func transactionsCachePattern(guildID string) string {
	return fmt.Sprintf("bytes:transactions:%s:*", guildID)
}

// truncateReason trims on runes, not bytes, so a multi-byte character at
// the boundary is dropped whole instead of being split into invalid UTF-8.
func truncateReason(reason string) string {
	runes := []rune(reason)
	if len(runes) > maxReasonLength {
		return string(runes[:maxReasonLength])
	}
	return reason
}
