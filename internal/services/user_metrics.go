package services

import (
	"sort"
	"strconv"

	"fieldbook_backend/internal/models"
)

// Share of not-recently-active customers treated as reachable before they
// churn for good.
const atRiskShare = 0.15

type userActivity struct {
	name         string
	email        *string
	bookings     int
	spent        int64
	firstBooking string
	lastBooking  string
}

// collectUserActivity folds a snapshot into per-customer activity, keyed by
// user id. Cancelled bookings still mark activity; only confirmed revenue
// counts as spend.
func collectUserActivity(bookings []models.Booking) map[int64]*userActivity {
	users := make(map[int64]*userActivity)
	for _, b := range bookings {
		if b.UserID == nil {
			continue
		}
		ua, ok := users[*b.UserID]
		if !ok {
			ua = &userActivity{}
			if b.User != nil {
				ua.name = b.User.Name
				ua.email = b.User.Email
			}
			users[*b.UserID] = ua
		}
		ua.bookings++
		ua.spent += BookingRevenue(b)
		if b.Date != nil {
			day := b.Date.Format(dateLayout)
			if ua.firstBooking == "" || day < ua.firstBooking {
				ua.firstBooking = day
			}
			if day > ua.lastBooking {
				ua.lastBooking = day
			}
		}
	}
	return users
}

// SummarizeUsers computes the scalar user metrics of a period against its
// previous period. totalUsers is the owner's all-time distinct customer
// count; a customer is "new" when active now but absent from the previous
// period.
func SummarizeUsers(current, previous []models.Booking, totalUsers int) models.UserSummary {
	cur := collectUserActivity(current)
	prev := collectUserActivity(previous)

	var newUsers, returning int
	for id := range cur {
		if _, ok := prev[id]; ok {
			returning++
		} else {
			newUsers++
		}
	}
	var churned int
	for id := range prev {
		if _, ok := cur[id]; !ok {
			churned++
		}
	}

	var totalSpent int64
	var totalBookings int
	for _, ua := range cur {
		totalSpent += ua.spent
		totalBookings += ua.bookings
	}

	active := len(cur)
	inactive := totalUsers - active
	if inactive < 0 {
		inactive = 0
	}

	return models.UserSummary{
		TotalUsers:             totalUsers,
		NewUsers:               newUsers,
		ActiveUsers:            active,
		InactiveUsers:          inactive,
		ReturningUsers:         returning,
		ChurnRate:              Pct(churned, len(prev)),
		RetentionRate:          Pct(returning, len(prev)),
		AverageLifetimeValue:   SafeDiv(float64(totalSpent), float64(active)),
		AverageBookingsPerUser: SafeDiv(float64(totalBookings), float64(active)),
		AverageRevenuePerUser:  SafeDiv(float64(totalSpent), float64(active)),
	}
}

// UserGrowthSeries buckets the period by day: distinct active customers per
// day plus customers whose first booking of the snapshot falls on that day.
func UserGrowthSeries(bookings []models.Booking) []models.UserGrowthPoint {
	firstSeen := make(map[int64]string)
	activeByDay := make(map[string]map[int64]struct{})
	for _, b := range bookings {
		if b.UserID == nil || b.Date == nil {
			continue
		}
		day := b.Date.Format(dateLayout)
		if prev, ok := firstSeen[*b.UserID]; !ok || day < prev {
			firstSeen[*b.UserID] = day
		}
		set, ok := activeByDay[day]
		if !ok {
			set = make(map[int64]struct{})
			activeByDay[day] = set
		}
		set[*b.UserID] = struct{}{}
	}

	newByDay := make(map[string]int)
	for _, day := range firstSeen {
		newByDay[day]++
	}

	days := make([]string, 0, len(activeByDay))
	for d := range activeByDay {
		days = append(days, d)
	}
	sort.Strings(days)

	points := make([]models.UserGrowthPoint, 0, len(days))
	for _, d := range days {
		points = append(points, models.UserGrowthPoint{
			Date:        d,
			NewUsers:    newByDay[d],
			ActiveUsers: len(activeByDay[d]),
		})
	}
	return points
}

// SegmentUsers splits the owner's customer base into new / active / at-risk /
// inactive segments with per-segment averages.
func SegmentUsers(current, previous []models.Booking, totalUsers int) []models.UserSegment {
	cur := collectUserActivity(current)
	prev := collectUserActivity(previous)

	var newSpent, activeSpent int64
	var newBookings, activeBookings, newCount, activeCount int
	for id, ua := range cur {
		if _, ok := prev[id]; ok {
			activeCount++
			activeSpent += ua.spent
			activeBookings += ua.bookings
		} else {
			newCount++
			newSpent += ua.spent
			newBookings += ua.bookings
		}
	}

	dormant := totalUsers - len(cur)
	if dormant < 0 {
		dormant = 0
	}
	atRisk := int(float64(dormant) * atRiskShare)
	inactive := dormant - atRisk

	segments := []models.UserSegment{
		{
			Segment:         "new",
			Count:           newCount,
			AverageRevenue:  SafeDiv(float64(newSpent), float64(newCount)),
			AverageBookings: SafeDiv(float64(newBookings), float64(newCount)),
		},
		{
			Segment:         "active",
			Count:           activeCount,
			AverageRevenue:  SafeDiv(float64(activeSpent), float64(activeCount)),
			AverageBookings: SafeDiv(float64(activeBookings), float64(activeCount)),
		},
		{Segment: "at_risk", Count: atRisk},
		{Segment: "inactive", Count: inactive},
	}
	for i := range segments {
		segments[i].Percentage = Pct(segments[i].Count, totalUsers)
	}
	return segments
}

// MeasureEngagement counts distinct customers active on the period's last
// day, its last 7 days, and its last 30 days.
func MeasureEngagement(bookings []models.Booking, rng DateRange) models.EngagementMetrics {
	dayFloor := rng.End
	weekFloor := rng.End.AddDate(0, 0, -6)
	monthFloor := rng.End.AddDate(0, 0, -29)

	daily := make(map[int64]struct{})
	weekly := make(map[int64]struct{})
	monthly := make(map[int64]struct{})
	for _, b := range bookings {
		if b.UserID == nil || b.Date == nil {
			continue
		}
		d := dateOnly(*b.Date)
		if d.After(rng.End) {
			continue
		}
		if !d.Before(monthFloor) {
			monthly[*b.UserID] = struct{}{}
		}
		if !d.Before(weekFloor) {
			weekly[*b.UserID] = struct{}{}
		}
		if !d.Before(dayFloor) {
			daily[*b.UserID] = struct{}{}
		}
	}

	return models.EngagementMetrics{
		DailyActiveUsers:   len(daily),
		WeeklyActiveUsers:  len(weekly),
		MonthlyActiveUsers: len(monthly),
		DauWauRatio:        SafeDiv(float64(len(daily)), float64(len(weekly))),
		DauMauRatio:        SafeDiv(float64(len(daily)), float64(len(monthly))),
	}
}

// TopUsers returns the ten biggest spenders with their booking history
// bounds, spend descending, user id ascending on ties.
func TopUsers(bookings []models.Booking) []models.TopUser {
	users := collectUserActivity(bookings)

	ids := make([]int64, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	sort.SliceStable(ids, func(i, j int) bool { return users[ids[i]].spent > users[ids[j]].spent })
	if len(ids) > 10 {
		ids = ids[:10]
	}

	out := make([]models.TopUser, 0, len(ids))
	for _, id := range ids {
		ua := users[id]
		out = append(out, models.TopUser{
			CustomerID:    strconv.FormatInt(id, 10),
			CustomerName:  ua.name,
			Email:         ua.email,
			TotalBookings: ua.bookings,
			TotalSpent:    ua.spent,
			LastBooking:   ua.lastBooking,
			MemberSince:   ua.firstBooking,
		})
	}
	return out
}
