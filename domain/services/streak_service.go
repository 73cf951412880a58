package services

import (
	"sort"
	"time"
)

// streakMultipliers maps streak-day thresholds to reward multipliers.
var streakMultipliers = map[int]int{
	7:  2,
	14: 4,
	30: 10,
	60: 20,
}

// StreakService contains pure streak reward logic: mapping a streak length
// to a multiplier and computing claim eligibility windows. Stateless and
// deterministic, safe for concurrent use.
type StreakService struct {
	thresholds []int // descending
}

// NewStreakService creates a new StreakService.
func NewStreakService() *StreakService {
	thresholds := make([]int, 0, len(streakMultipliers))
	for threshold := range streakMultipliers {
		thresholds = append(thresholds, threshold)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(thresholds)))
	return &StreakService{thresholds: thresholds}
}

// Multiplier returns the reward multiplier for a streak length: the
// multiplier of the highest threshold at or below the streak, or 1 when the
// streak is below every threshold. Total over non-negative integers.
func (s *StreakService) Multiplier(streak int) int {
	for _, threshold := range s.thresholds {
		if streak >= threshold {
			return streakMultipliers[threshold]
		}
	}
	return 1
}

// NextThreshold returns the next streak threshold above the current streak
// and the multiplier it unlocks, or (0, 0) when the streak is already at or
// past the highest threshold.
func (s *StreakService) NextThreshold(streak int) (days int, multiplier int) {
	next := 0
	for _, threshold := range s.thresholds {
		if streak < threshold {
			next = threshold
		}
	}
	if next == 0 {
		return 0, 0
	}
	return next, streakMultipliers[next]
}

// NextClaimTime returns the UTC instant the next daily claim becomes
// eligible after a claim at the given time: midnight UTC of the next day.
func (s *StreakService) NextClaimTime(claimedAt time.Time) time.Time {
	y, m, d := claimedAt.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
