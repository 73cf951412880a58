package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreakService_Multiplier(t *testing.T) {
	service := NewStreakService()

	tests := []struct {
		name     string
		streak   int
		expected int
	}{
		{"zero streak", 0, 1},
		{"first day", 1, 1},
		{"just below first threshold", 6, 1},
		{"first threshold", 7, 2},
		{"between first and second", 13, 2},
		{"second threshold", 14, 4},
		{"just below third", 29, 4},
		{"third threshold", 30, 10},
		{"just below fourth", 59, 10},
		{"fourth threshold", 60, 20},
		{"far past highest threshold", 365, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Multiplier(tt.streak))
		})
	}
}

func TestStreakService_Multiplier_NonDecreasing(t *testing.T) {
	service := NewStreakService()

	previous := 0
	for streak := 0; streak <= 200; streak++ {
		multiplier := service.Multiplier(streak)
		assert.GreaterOrEqual(t, multiplier, previous, "multiplier dropped at streak %d", streak)
		assert.Contains(t, []int{1, 2, 4, 10, 20}, multiplier, "unexpected multiplier at streak %d", streak)
		previous = multiplier
	}
}

func TestStreakService_NextThreshold(t *testing.T) {
	service := NewStreakService()

	tests := []struct {
		name           string
		streak         int
		wantDays       int
		wantMultiplier int
	}{
		{"fresh streak targets first threshold", 0, 7, 2},
		{"at first threshold targets second", 7, 14, 4},
		{"mid-range targets third", 20, 30, 10},
		{"just below top targets top", 59, 60, 20},
		{"at top has no next threshold", 60, 0, 0},
		{"past top has no next threshold", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, multiplier := service.NextThreshold(tt.streak)
			assert.Equal(t, tt.wantDays, days)
			assert.Equal(t, tt.wantMultiplier, multiplier)
		})
	}
}

func TestStreakService_NextClaimTime(t *testing.T) {
	service := NewStreakService()

	claimed := time.Date(2024, 3, 15, 18, 30, 45, 0, time.UTC)
	next := service.NextClaimTime(claimed)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), next)

	// A claim one minute before midnight still unlocks at the very next midnight
	lateClaim := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), service.NextClaimTime(lateClaim))

	// Month rollover
	endOfMonth := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), service.NextClaimTime(endOfMonth))
}
