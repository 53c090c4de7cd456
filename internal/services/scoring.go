package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"fieldbook_backend/internal/models"
)

// ScoringConfig names every constant the performance scorer uses. Defaults
// reflect the platform's scoring model; tests override individual knobs.
type ScoringConfig struct {
	// Revenue units mapping money to score points: one point per unit.
	RevenueUnit      int64 // owner-wide
	FieldRevenueUnit int64 // per field

	// Booking-count multipliers mapping volume to score points.
	BookingVolumeFactor float64 // owner-wide
	OccupancyFactor     float64 // per field, applied to confirmed bookings

	// SatisfactionScale maps a 1-5 rating onto the 0-100 score scale.
	SatisfactionScale float64

	// SlotsPerDay is the capacity proxy used for occupancy rates.
	SlotsPerDay int

	// Rule thresholds for strengths and weaknesses.
	StrongRating         float64
	WeakRating           float64
	LowCancellationRate  float64
	HighCancellationRate float64
	StrongRevenue        int64
	LowBookingVolume     int

	// Industry reference values for the benchmark block.
	BenchmarkOccupancy    float64
	BenchmarkRevenue      float64
	BenchmarkSatisfaction float64
}

// DefaultScoringConfig returns the standard scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		RevenueUnit:           1000,
		FieldRevenueUnit:      500,
		BookingVolumeFactor:   2.0,
		OccupancyFactor:       3.0,
		SatisfactionScale:     20.0,
		SlotsPerDay:           24,
		StrongRating:          4.5,
		WeakRating:            4.0,
		LowCancellationRate:   10.0,
		HighCancellationRate:  15.0,
		StrongRevenue:         40000,
		LowBookingVolume:      200,
		BenchmarkOccupancy:    65.0,
		BenchmarkRevenue:      50000.0,
		BenchmarkSatisfaction: 4.2,
	}
}

// clampScore keeps a raw sub-score inside [0, 100]. Sub-scores stay
// fractional until the exposed value is rounded, so composites average the
// exact values.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// roundScore rounds a score to the nearest whole point.
func roundScore(v float64) int {
	return int(math.Round(v))
}

// RatingBand maps a composite score to its label.
func RatingBand(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Average"
	default:
		return "Poor"
	}
}

// perfMetrics is the metric set the rule tables evaluate.
type perfMetrics struct {
	TotalRevenue     int64
	TotalBookings    int
	AverageRating    float64
	CancellationRate float64
}

// OwnerScore computes the owner-wide composite: the rounded mean of the
// revenue, booking-volume, occupancy and satisfaction sub-scores, each
// clamped to [0, 100].
func (c ScoringConfig) OwnerScore(m perfMetrics, occupancyRate float64) int {
	revenueScore := clampScore(float64(m.TotalRevenue) / float64(c.RevenueUnit))
	bookingScore := clampScore(float64(m.TotalBookings) * c.BookingVolumeFactor)
	occupancyScore := clampScore(occupancyRate)
	satisfactionScore := clampScore(m.AverageRating * c.SatisfactionScale)
	return roundScore((revenueScore + bookingScore + occupancyScore + satisfactionScore) / 4)
}

// scoreRule is one entry of the strength/weakness tables.
type scoreRule struct {
	applies func(ScoringConfig, perfMetrics) bool
	message func(ScoringConfig, perfMetrics) string
}

var strengthRules = []scoreRule{
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.AverageRating >= c.StrongRating },
		message: func(c ScoringConfig, m perfMetrics) string {
			return fmt.Sprintf("High customer satisfaction (%.1f/5 average rating)", m.AverageRating)
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool {
			return m.TotalBookings > 0 && m.CancellationRate <= c.LowCancellationRate
		},
		message: func(c ScoringConfig, m perfMetrics) string {
			return fmt.Sprintf("Low cancellation rate (%.1f%%)", m.CancellationRate)
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.TotalRevenue > c.StrongRevenue },
		message: func(c ScoringConfig, m perfMetrics) string {
			return "Strong revenue performance for the period"
		},
	},
}

var weaknessRules = []scoreRule{
	{
		applies: func(c ScoringConfig, m perfMetrics) bool {
			return m.AverageRating > 0 && m.AverageRating < c.WeakRating
		},
		message: func(c ScoringConfig, m perfMetrics) string {
			return fmt.Sprintf("Customer satisfaction below target (%.1f/5)", m.AverageRating)
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.CancellationRate > c.HighCancellationRate },
		message: func(c ScoringConfig, m perfMetrics) string {
			return fmt.Sprintf("Elevated cancellation rate (%.1f%%)", m.CancellationRate)
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.TotalBookings < c.LowBookingVolume },
		message: func(c ScoringConfig, m perfMetrics) string {
			return "Booking volume below target for the period"
		},
	},
}

func evalRules(rules []scoreRule, c ScoringConfig, m perfMetrics) []string {
	var out []string
	for _, r := range rules {
		if r.applies(c, m) {
			out = append(out, r.message(c, m))
		}
	}
	return out
}

// recommendationRule pairs a trigger with a canned recommendation.
type recommendationRule struct {
	applies func(ScoringConfig, perfMetrics) bool
	build   func(ScoringConfig, perfMetrics) models.Recommendation
}

var priorityOrder = map[string]int{"high": 0, "medium": 1, "low": 2}

var recommendationRules = []recommendationRule{
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.CancellationRate > c.HighCancellationRate },
		build: func(c ScoringConfig, m perfMetrics) models.Recommendation {
			return models.Recommendation{
				Priority:       "high",
				Category:       "retention",
				Title:          "Reduce cancellations",
				Description:    fmt.Sprintf("Cancellation rate is %.1f%%, above the %.0f%% threshold.", m.CancellationRate, c.HighCancellationRate),
				ExpectedImpact: "Recover revenue currently lost to late cancellations",
				ActionItems: []string{
					"Introduce a partial-refund cancellation policy",
					"Send booking reminders 24 hours ahead",
					"Offer rescheduling instead of cancellation",
				},
			}
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool {
			return m.AverageRating > 0 && m.AverageRating < c.WeakRating
		},
		build: func(c ScoringConfig, m perfMetrics) models.Recommendation {
			return models.Recommendation{
				Priority:       "high",
				Category:       "quality",
				Title:          "Improve customer satisfaction",
				Description:    fmt.Sprintf("Average rating is %.1f, below the %.1f target.", m.AverageRating, c.WeakRating),
				ExpectedImpact: "Higher ratings drive repeat bookings and referrals",
				ActionItems: []string{
					"Review recent low-rating feedback",
					"Audit field condition and amenities",
					"Follow up with dissatisfied customers",
				},
			}
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.TotalBookings < c.LowBookingVolume },
		build: func(c ScoringConfig, m perfMetrics) models.Recommendation {
			return models.Recommendation{
				Priority:       "medium",
				Category:       "marketing",
				Title:          "Grow booking volume",
				Description:    "Booking volume is below the target for the period.",
				ExpectedImpact: "More bookings lift both revenue and occupancy scores",
				ActionItems: []string{
					"Run a first-booking discount campaign",
					"Promote underused weekday morning slots",
				},
			}
		},
	},
	{
		applies: func(c ScoringConfig, m perfMetrics) bool { return m.TotalRevenue <= c.StrongRevenue },
		build: func(c ScoringConfig, m perfMetrics) models.Recommendation {
			return models.Recommendation{
				Priority:       "low",
				Category:       "pricing",
				Title:          "Review slot pricing",
				Description:    "Revenue has room to grow against comparable venues.",
				ExpectedImpact: "Peak-hour pricing captures existing demand",
				ActionItems: []string{
					"Compare peak and off-peak utilization",
					"Trial higher weekend evening rates",
				},
			}
		},
	},
}

// BuildRecommendations evaluates the rule table and returns triggered
// recommendations ordered high, medium, low.
func BuildRecommendations(c ScoringConfig, m perfMetrics) []models.Recommendation {
	var out []models.Recommendation
	for _, r := range recommendationRules {
		if r.applies(c, m) {
			out = append(out, r.build(c, m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOrder[out[i].Priority] < priorityOrder[out[j].Priority]
	})
	return out
}

// averageRating returns the mean rating of rated bookings and how many
// carried a rating.
func averageRating(bookings []models.Booking) (float64, int) {
	sum, count := 0, 0
	for _, b := range bookings {
		if b.Rating != nil && *b.Rating > 0 {
			sum += *b.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return Round2(float64(sum) / float64(count)), count
}

// BuildFieldPerformance scores every owner field over the period. Fields with
// no activity still appear with zero scores. Ordered by performance score
// descending, field id ascending on ties.
func (c ScoringConfig) BuildFieldPerformance(fields []models.Field, current, previous []models.Booking, rng DateRange) []models.FieldPerformance {
	type fieldData struct {
		bookings  []models.Booking
		revenue   int64
		confirmed int
		cancelled int
	}
	byField := make(map[int64]*fieldData, len(fields))
	order := make([]int64, 0, len(fields))
	names := make(map[int64]models.Field, len(fields))
	for _, f := range fields {
		byField[f.ID] = &fieldData{}
		order = append(order, f.ID)
		names[f.ID] = f
	}

	for _, b := range current {
		if b.Field == nil {
			continue
		}
		fd, ok := byField[b.Field.ID]
		if !ok {
			continue
		}
		fd.bookings = append(fd.bookings, b)
		switch b.Status {
		case models.BookingStatusConfirmed:
			fd.confirmed++
			fd.revenue += BookingRevenue(b)
		case models.BookingStatusCancelled:
			fd.cancelled++
		}
	}

	prevRevenue := make(map[int64]int64)
	for _, b := range previous {
		if b.Field == nil {
			continue
		}
		prevRevenue[b.Field.ID] += BookingRevenue(b)
	}

	out := make([]models.FieldPerformance, 0, len(order))
	for _, id := range order {
		fd := byField[id]
		f := names[id]

		rating, reviews := averageRating(fd.bookings)
		revenueScore := clampScore(float64(fd.revenue) / float64(c.FieldRevenueUnit))
		occupancyScore := clampScore(float64(fd.confirmed) * c.OccupancyFactor)
		satisfactionScore := clampScore(rating * c.SatisfactionScale)
		composite := roundScore((revenueScore + occupancyScore + satisfactionScore) / 3)

		_, trend := Compare(fd.revenue, prevRevenue[id])

		out = append(out, models.FieldPerformance{
			FieldID:           strconv.FormatInt(id, 10),
			FieldName:         f.Name,
			Location:          venueLocation(f.Venue),
			Bookings:          len(fd.bookings),
			Revenue:           fd.revenue,
			OccupancyRate:     fieldOccupancy(fd.bookings, rng, c.SlotsPerDay),
			AverageRating:     rating,
			ReviewCount:       reviews,
			PerformanceScore:  composite,
			RevenueScore:      roundScore(revenueScore),
			OccupancyScore:    roundScore(occupancyScore),
			SatisfactionScore: roundScore(satisfactionScore),
			RevenueTrend:      trend,
			PeakHours:         fieldPeakHours(fd.bookings),
			Issues:            fieldIssues(fd.cancelled, len(fd.bookings), fd.bookings),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PerformanceScore > out[j].PerformanceScore })
	return out
}

func fieldOccupancy(bookings []models.Booking, rng DateRange, slotsPerDay int) float64 {
	capacity := rng.DayCount() * slotsPerDay
	if capacity == 0 {
		return 0
	}
	slots := 0
	for _, b := range bookings {
		if b.Status == models.BookingStatusConfirmed {
			slots += len(b.Slots)
		}
	}
	v := Round2(float64(slots) / float64(capacity) * 100)
	if v > 100 {
		v = 100
	}
	return v
}

func fieldPeakHours(bookings []models.Booking) []models.PeakHour {
	type bucket struct {
		count   int
		revenue float64
	}
	buckets := make(map[int]*bucket)
	for _, b := range bookings {
		if b.Status != models.BookingStatusConfirmed {
			continue
		}
		hours := bookingHours(b)
		if len(hours) == 0 {
			continue
		}
		share := float64(BookingRevenue(b)) / float64(len(hours))
		for _, h := range hours {
			bk, ok := buckets[h]
			if !ok {
				bk = &bucket{}
				buckets[h] = bk
			}
			bk.count++
			bk.revenue += share
		}
	}
	counts := make(map[int]int, len(buckets))
	for h, bk := range buckets {
		counts[h] = bk.count
	}
	out := make([]models.PeakHour, 0, 3)
	for _, h := range topHours(counts, 3) {
		out = append(out, models.PeakHour{
			Hour:     h,
			Bookings: buckets[h].count,
			Revenue:  int64(Round2(buckets[h].revenue)),
		})
	}
	return out
}

// fieldIssues flags repeated cancellations and low-rating feedback.
func fieldIssues(cancelled, total int, bookings []models.Booking) []models.FieldIssue {
	var issues []models.FieldIssue
	if total > 0 && cancelled > 0 {
		severity := "low"
		rate := float64(cancelled) / float64(total) * 100
		switch {
		case rate > 20:
			severity = "high"
		case rate > 10:
			severity = "medium"
		}
		issues = append(issues, models.FieldIssue{Type: "cancellation", Count: cancelled, Severity: severity})
	}
	complaints := 0
	for _, b := range bookings {
		if b.Rating != nil && *b.Rating <= 2 {
			complaints++
		}
	}
	if complaints > 0 {
		severity := "low"
		if complaints >= 5 {
			severity = "high"
		} else if complaints >= 2 {
			severity = "medium"
		}
		issues = append(issues, models.FieldIssue{Type: "complaint", Count: complaints, Severity: severity})
	}
	return issues
}

// BuildBenchmarks compares the owner's occupancy, revenue and satisfaction
// against the configured industry references.
func (c ScoringConfig) BuildBenchmarks(occupancy float64, revenue int64, rating float64) models.BenchmarkComparison {
	entry := func(reference, yours float64) models.BenchmarkEntry {
		return models.BenchmarkEntry{
			Reference:  reference,
			Yours:      yours,
			Difference: Round2(yours - reference),
		}
	}
	return models.BenchmarkComparison{
		Occupancy:    entry(c.BenchmarkOccupancy, occupancy),
		Revenue:      entry(c.BenchmarkRevenue, float64(revenue)),
		Satisfaction: entry(c.BenchmarkSatisfaction, rating),
	}
}

// BuildGrowthOpportunities derives candidate initiatives from the period's
// utilization profile.
func BuildGrowthOpportunities(m perfMetrics, occupancy float64) []models.GrowthOpportunity {
	var out []models.GrowthOpportunity
	if occupancy < 50 {
		out = append(out, models.GrowthOpportunity{
			Opportunity:      "Off-peak discounts for weekday mornings",
			PotentialRevenue: Round2(float64(m.TotalRevenue) * 0.15),
			Effort:           "low",
			Timeline:         "1 month",
		})
	}
	out = append(out, models.GrowthOpportunity{
		Opportunity:      "Monthly membership packages for regulars",
		PotentialRevenue: Round2(float64(m.TotalRevenue) * 0.20),
		Effort:           "medium",
		Timeline:         "3 months",
	})
	if m.AverageRating >= 4.0 {
		out = append(out, models.GrowthOpportunity{
			Opportunity:      "Corporate and league partnerships",
			PotentialRevenue: Round2(float64(m.TotalRevenue) * 0.30),
			Effort:           "high",
			Timeline:         "6 months",
		})
	}
	return out
}
