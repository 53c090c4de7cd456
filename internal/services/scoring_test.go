package services

import (
	"testing"
	"time"

	"fieldbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingBand(t *testing.T) {
	assert.Equal(t, "Excellent", RatingBand(100))
	assert.Equal(t, "Excellent", RatingBand(90))
	assert.Equal(t, "Good", RatingBand(89))
	assert.Equal(t, "Good", RatingBand(75))
	assert.Equal(t, "Average", RatingBand(74))
	assert.Equal(t, "Average", RatingBand(60))
	assert.Equal(t, "Poor", RatingBand(59))
	assert.Equal(t, "Poor", RatingBand(0))
}

func TestOwnerScoreClamped(t *testing.T) {
	cfg := DefaultScoringConfig()

	// Pathological inputs stay inside [0, 100].
	huge := perfMetrics{TotalRevenue: 1 << 40, TotalBookings: 1 << 20, AverageRating: 5, CancellationRate: 0}
	score := cfg.OwnerScore(huge, 250)
	assert.LessOrEqual(t, score, 100)
	assert.GreaterOrEqual(t, score, 0)

	zero := cfg.OwnerScore(perfMetrics{}, 0)
	assert.Equal(t, 0, zero)
}

func TestOwnerScoreComposition(t *testing.T) {
	cfg := DefaultScoringConfig()
	// revenue 50000/1000 -> 50, bookings 20*2 -> 40, occupancy 60, rating 4*20 -> 80.
	// The mean 57.5 rounds to 58 rather than truncating.
	m := perfMetrics{TotalRevenue: 50000, TotalBookings: 20, AverageRating: 4}
	assert.Equal(t, 58, cfg.OwnerScore(m, 60))
}

func TestStrengthAndWeaknessRules(t *testing.T) {
	cfg := DefaultScoringConfig()

	strong := perfMetrics{TotalRevenue: 50000, TotalBookings: 300, AverageRating: 4.7, CancellationRate: 5}
	strengths := evalRules(strengthRules, cfg, strong)
	assert.Len(t, strengths, 3)
	assert.Empty(t, evalRules(weaknessRules, cfg, strong))

	weak := perfMetrics{TotalRevenue: 5000, TotalBookings: 50, AverageRating: 3.2, CancellationRate: 25}
	weaknesses := evalRules(weaknessRules, cfg, weak)
	assert.Len(t, weaknesses, 3)
	assert.Empty(t, evalRules(strengthRules, cfg, weak))

	// An unrated period triggers neither the rating strength nor weakness.
	unrated := perfMetrics{TotalRevenue: 50000, TotalBookings: 300, AverageRating: 0, CancellationRate: 5}
	assert.Len(t, evalRules(strengthRules, cfg, unrated), 2)
	assert.Empty(t, evalRules(weaknessRules, cfg, unrated))
}

func TestBuildRecommendationsOrderedByPriority(t *testing.T) {
	cfg := DefaultScoringConfig()
	m := perfMetrics{TotalRevenue: 5000, TotalBookings: 50, AverageRating: 3.0, CancellationRate: 25}

	recs := BuildRecommendations(cfg, m)
	require.NotEmpty(t, recs)
	last := 0
	for _, r := range recs {
		p := priorityOrder[r.Priority]
		assert.GreaterOrEqual(t, p, last)
		last = p
	}
	assert.Equal(t, "high", recs[0].Priority)
	assert.NotEmpty(t, recs[0].ActionItems)
}

func TestBuildRecommendationsHealthyOwner(t *testing.T) {
	cfg := DefaultScoringConfig()
	m := perfMetrics{TotalRevenue: 90000, TotalBookings: 400, AverageRating: 4.8, CancellationRate: 3}
	assert.Empty(t, BuildRecommendations(cfg, m))
}

func TestBuildFieldPerformance(t *testing.T) {
	cfg := DefaultScoringConfig()
	rng := DateRange{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	fields := []models.Field{
		{ID: 1, Name: "Main Pitch", Venue: &models.Venue{Address: sp("12 Arena Way")}},
		{ID: 2, Name: "Court B", Venue: &models.Venue{Address: sp("12 Arena Way")}},
	}
	current := []models.Booking{
		confirmedPaid(1, day(2024, time.March, 5), 2000, withField(1, "Main Pitch", "12 Arena Way"), withSlots(18), withRating(5)),
		confirmedPaid(2, day(2024, time.March, 6), 1000, withField(1, "Main Pitch", "12 Arena Way"), withSlots(18, 19), withRating(4)),
		makeBooking(3, day(2024, time.March, 7), models.BookingStatusCancelled, withField(1, "Main Pitch", "12 Arena Way")),
	}
	previous := []models.Booking{
		confirmedPaid(4, day(2024, time.February, 25), 5000, withField(1, "Main Pitch", "12 Arena Way")),
	}

	perf := cfg.BuildFieldPerformance(fields, current, previous, rng)
	require.Len(t, perf, 2)

	main := perf[0]
	assert.Equal(t, "1", main.FieldID)
	assert.Equal(t, "12 Arena Way", main.Location)
	assert.Equal(t, 3, main.Bookings)
	assert.Equal(t, int64(3000), main.Revenue)
	assert.Equal(t, 4.5, main.AverageRating)
	assert.Equal(t, 2, main.ReviewCount)
	assert.Equal(t, "down", main.RevenueTrend)
	// revenue 3000/500 -> 6, occupancy 2*3 -> 6, satisfaction 4.5*20 -> 90.
	assert.Equal(t, 6, main.RevenueScore)
	assert.Equal(t, 6, main.OccupancyScore)
	assert.Equal(t, 90, main.SatisfactionScore)
	assert.Equal(t, (6+6+90)/3, main.PerformanceScore)
	require.NotEmpty(t, main.PeakHours)
	assert.Equal(t, 18, main.PeakHours[0].Hour)
	require.Len(t, main.Issues, 1)
	assert.Equal(t, "cancellation", main.Issues[0].Type)

	// An idle field still shows up, zeroed.
	idle := perf[1]
	assert.Equal(t, "2", idle.FieldID)
	assert.Equal(t, 0, idle.PerformanceScore)
	assert.Equal(t, int64(0), idle.Revenue)
}

func TestBuildFieldPerformanceRoundsFractionalSubScores(t *testing.T) {
	cfg := DefaultScoringConfig()
	rng := DateRange{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	fields := []models.Field{{ID: 1, Name: "Main Pitch", Venue: &models.Venue{Address: sp("12 Arena Way")}}}
	current := []models.Booking{
		confirmedPaid(1, day(2024, time.March, 5), 750, withField(1, "Main Pitch", "12 Arena Way"), withSlots(18), withRating(5)),
	}

	perf := cfg.BuildFieldPerformance(fields, current, nil, rng)
	require.Len(t, perf, 1)
	// revenue 750/500 -> 1.5, occupancy 1*3 -> 3, rating 5*20 -> 100.
	// The composite averages the exact sub-scores: round(104.5/3) = 35.
	assert.Equal(t, 35, perf[0].PerformanceScore)
	assert.Equal(t, 2, perf[0].RevenueScore)
	assert.Equal(t, 3, perf[0].OccupancyScore)
	assert.Equal(t, 100, perf[0].SatisfactionScore)
}

func TestBuildBenchmarks(t *testing.T) {
	cfg := DefaultScoringConfig()
	bm := cfg.BuildBenchmarks(70, 60000, 4.0)
	assert.Equal(t, 65.0, bm.Occupancy.Reference)
	assert.Equal(t, 5.0, bm.Occupancy.Difference)
	assert.Equal(t, 10000.0, bm.Revenue.Difference)
	assert.InDelta(t, -0.2, bm.Satisfaction.Difference, 0.001)
}

func TestBuildGrowthOpportunities(t *testing.T) {
	m := perfMetrics{TotalRevenue: 10000, AverageRating: 4.5}

	withLowOccupancy := BuildGrowthOpportunities(m, 30)
	assert.Len(t, withLowOccupancy, 3)

	withHighOccupancy := BuildGrowthOpportunities(m, 80)
	assert.Len(t, withHighOccupancy, 2)

	lowRated := BuildGrowthOpportunities(perfMetrics{TotalRevenue: 10000, AverageRating: 3.0}, 80)
	assert.Len(t, lowRated, 1)
}
