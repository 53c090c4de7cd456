package services

import (
	"testing"
	"time"

	"fieldbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeUsers(t *testing.T) {
	cur := day(2024, time.March, 10)
	prev := day(2024, time.February, 10)

	current := []models.Booking{
		confirmedPaid(1, cur, 100, withUser(1, "alice")),
		confirmedPaid(2, cur, 200, withUser(1, "alice")),
		confirmedPaid(3, cur, 300, withUser(2, "bob")),
	}
	previous := []models.Booking{
		confirmedPaid(4, prev, 100, withUser(1, "alice")),
		confirmedPaid(5, prev, 100, withUser(3, "carol")),
	}

	s := SummarizeUsers(current, previous, 10)
	assert.Equal(t, 10, s.TotalUsers)
	assert.Equal(t, 2, s.ActiveUsers)
	assert.Equal(t, 1, s.NewUsers)       // bob
	assert.Equal(t, 1, s.ReturningUsers) // alice
	assert.Equal(t, 8, s.InactiveUsers)
	assert.Equal(t, 50.0, s.ChurnRate)     // carol gone, 1 of 2
	assert.Equal(t, 50.0, s.RetentionRate) // alice stayed, 1 of 2
	assert.Equal(t, 300.0, s.AverageRevenuePerUser)
	assert.Equal(t, 1.5, s.AverageBookingsPerUser)
}

func TestSummarizeUsersNoPreviousActivity(t *testing.T) {
	s := SummarizeUsers([]models.Booking{
		confirmedPaid(1, day(2024, time.March, 10), 100, withUser(1, "alice")),
	}, nil, 1)
	assert.Equal(t, 1, s.NewUsers)
	assert.Equal(t, 0, s.ReturningUsers)
	assert.Equal(t, 0.0, s.ChurnRate)
	assert.Equal(t, 0.0, s.RetentionRate)
}

func TestUserGrowthSeries(t *testing.T) {
	d1 := day(2024, time.March, 10)
	d2 := day(2024, time.March, 11)
	bookings := []models.Booking{
		confirmedPaid(1, d1, 100, withUser(1, "alice")),
		confirmedPaid(2, d1, 100, withUser(2, "bob")),
		confirmedPaid(3, d2, 100, withUser(1, "alice")),
		confirmedPaid(4, d2, 100, withUser(3, "carol")),
	}

	growth := UserGrowthSeries(bookings)
	require.Len(t, growth, 2)
	assert.Equal(t, "2024-03-10", growth[0].Date)
	assert.Equal(t, 2, growth[0].NewUsers)
	assert.Equal(t, 2, growth[0].ActiveUsers)
	// alice is no longer new on day two.
	assert.Equal(t, 1, growth[1].NewUsers)
	assert.Equal(t, 2, growth[1].ActiveUsers)
}

func TestSegmentUsers(t *testing.T) {
	cur := day(2024, time.March, 10)
	prev := day(2024, time.February, 10)
	current := []models.Booking{
		confirmedPaid(1, cur, 100, withUser(1, "alice")),
		confirmedPaid(2, cur, 400, withUser(2, "bob")),
	}
	previous := []models.Booking{
		confirmedPaid(3, prev, 100, withUser(1, "alice")),
	}

	segments := SegmentUsers(current, previous, 100)
	require.Len(t, segments, 4)

	byName := map[string]models.UserSegment{}
	total := 0
	for _, s := range segments {
		byName[s.Segment] = s
		total += s.Count
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 1, byName["new"].Count)
	assert.Equal(t, 400.0, byName["new"].AverageRevenue)
	assert.Equal(t, 1, byName["active"].Count)
	// 98 dormant: 15% at risk, the rest inactive.
	assert.Equal(t, 14, byName["at_risk"].Count)
	assert.Equal(t, 84, byName["inactive"].Count)
}

func TestMeasureEngagement(t *testing.T) {
	rng := DateRange{Start: day(2024, time.February, 1), End: day(2024, time.March, 15)}
	bookings := []models.Booking{
		confirmedPaid(1, day(2024, time.March, 15), 100, withUser(1, "alice")), // last day
		confirmedPaid(2, day(2024, time.March, 12), 100, withUser(2, "bob")),   // last week
		confirmedPaid(3, day(2024, time.February, 20), 100, withUser(3, "carol")), // last 30 days
		confirmedPaid(4, day(2024, time.February, 2), 100, withUser(4, "dan")),    // outside all windows
	}

	e := MeasureEngagement(bookings, rng)
	assert.Equal(t, 1, e.DailyActiveUsers)
	assert.Equal(t, 2, e.WeeklyActiveUsers)
	assert.Equal(t, 3, e.MonthlyActiveUsers)
	assert.Equal(t, 0.5, e.DauWauRatio)
	assert.InDelta(t, 0.33, e.DauMauRatio, 0.01)
}

func TestTopUsers(t *testing.T) {
	d1 := day(2024, time.March, 5)
	d2 := day(2024, time.March, 12)
	bookings := []models.Booking{
		confirmedPaid(1, d1, 100, withUser(1, "alice")),
		confirmedPaid(2, d2, 300, withUser(1, "alice")),
		confirmedPaid(3, d1, 250, withUser(2, "bob")),
	}

	top := TopUsers(bookings)
	require.Len(t, top, 2)
	assert.Equal(t, "1", top[0].CustomerID)
	assert.Equal(t, int64(400), top[0].TotalSpent)
	assert.Equal(t, 2, top[0].TotalBookings)
	assert.Equal(t, "2024-03-05", top[0].MemberSince)
	assert.Equal(t, "2024-03-12", top[0].LastBooking)
	assert.Equal(t, "bob", top[1].CustomerName)
}
