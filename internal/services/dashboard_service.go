package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"fieldbook_backend/internal/models"
	"fieldbook_backend/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// dashboardMonths is how many calendar months the combined stats cover.
const dashboardMonths = 6

// DashboardService serves the owner dashboard: period-scoped scalar slices
// of the same snapshot data the full reports are computed from.
type DashboardService interface {
	Stats(ctx context.Context, ownerID int64) (*models.DashboardStats, error)
	RevenueByPeriod(ctx context.Context, ownerID int64, period string) (*models.RevenueByPeriod, error)
	BookingsByPeriod(ctx context.Context, ownerID int64, period string) (*models.BookingsByPeriod, error)
	UsersByPeriod(ctx context.Context, ownerID int64, period string) (*models.UsersByPeriod, error)
	TopFields(ctx context.Context, ownerID int64, limit int, sortBy string) ([]models.TopFieldItem, error)
}

type dashboardService struct {
	repo    repositories.ReportRepository
	scoring ScoringConfig
	now     func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(repo repositories.ReportRepository, scoring ScoringConfig) DashboardService {
	return &dashboardService{repo: repo, scoring: scoring, now: time.Now}
}

// Stats assembles the combined dashboard payload. The snapshot window covers
// the last six calendar months; fields and the customer count load
// concurrently with it.
func (s *dashboardService) Stats(ctx context.Context, ownerID int64) (*models.DashboardStats, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	today := dateOnly(s.now())
	windowStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(dashboardMonths - 1), 0)

	var (
		bookings   []models.Booking
		fields     []models.Field
		totalUsers int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.repo.FetchOwnerBookings(gctx, ownerID, windowStart, today)
		return err
	})
	g.Go(func() error {
		var err error
		fields, err = s.repo.GetOwnerFields(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		totalUsers, err = s.repo.CountOwnerUsers(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	return &models.DashboardStats{
		Revenue:  s.revenueStats(bookings, today),
		Users:    s.userStats(bookings, totalUsers, today),
		Bookings: s.bookingStats(bookings, today),
		Fields:   s.fieldStats(fields, bookings),
	}, nil
}

func (s *dashboardService) revenueStats(bookings []models.Booking, today time.Time) models.RevenueStats {
	weekStart := today.AddDate(0, 0, -6)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	monthly := make([]int64, dashboardMonths)
	monthIndex := make(map[string]int, dashboardMonths)
	for i := 0; i < dashboardMonths; i++ {
		m := monthStart.AddDate(0, -(dashboardMonths - 1 - i), 0)
		monthIndex[m.Format("2006-01")] = i
	}

	var total, todayRev, weekRev, monthRev, prevMonthRev int64
	for _, b := range bookings {
		r := BookingRevenue(b)
		if r == 0 || b.Date == nil {
			continue
		}
		d := dateOnly(*b.Date)
		total += r
		if d.Equal(today) {
			todayRev += r
		}
		if !d.Before(weekStart) {
			weekRev += r
		}
		if !d.Before(monthStart) {
			monthRev += r
		} else if !d.Before(prevMonthStart) {
			prevMonthRev += r
		}
		if i, ok := monthIndex[d.Format("2006-01")]; ok {
			monthly[i] += r
		}
	}

	change, trend := Compare(monthRev, prevMonthRev)
	return models.RevenueStats{
		Total:   total,
		Today:   todayRev,
		Week:    weekRev,
		Month:   monthRev,
		Monthly: monthly,
		Change:  change,
		Trend:   trend,
	}
}

func (s *dashboardService) userStats(bookings []models.Booking, totalUsers int, today time.Time) models.UserStats {
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	weekStart := today.AddDate(0, 0, -6)

	firstSeen := make(map[int64]time.Time)
	daily := make(map[int64]struct{})
	weekly := make(map[int64]struct{})
	for _, b := range bookings {
		if b.UserID == nil || b.Date == nil {
			continue
		}
		d := dateOnly(*b.Date)
		if prev, ok := firstSeen[*b.UserID]; !ok || d.Before(prev) {
			firstSeen[*b.UserID] = d
		}
		if d.Equal(today) {
			daily[*b.UserID] = struct{}{}
		}
		if !d.Before(weekStart) && !d.After(today) {
			weekly[*b.UserID] = struct{}{}
		}
	}

	var newThisMonth, newPrevMonth int
	for _, d := range firstSeen {
		if !d.Before(monthStart) {
			newThisMonth++
		} else if !d.Before(prevMonthStart) {
			newPrevMonth++
		}
	}

	change, trend := Compare(int64(newThisMonth), int64(newPrevMonth))
	return models.UserStats{
		Total:    totalUsers,
		NewUsers: newThisMonth,
		Daily:    len(daily),
		Weekly:   len(weekly),
		Change:   change,
		Trend:    trend,
	}
}

func (s *dashboardService) bookingStats(bookings []models.Booking, today time.Time) models.BookingStats {
	weekStart := today.AddDate(0, 0, -6)
	prevWeekStart := weekStart.AddDate(0, 0, -7)

	daily := make([]int, 7)
	activity := make([]models.BookingActivityPoint, 7)
	revenueByDay := make([]int64, 7)
	for i := range activity {
		activity[i].Date = weekStart.AddDate(0, 0, i).Format(dateLayout)
	}

	var total, thisWeek, prevWeek int
	for _, b := range bookings {
		total++
		if b.Date == nil {
			continue
		}
		d := dateOnly(*b.Date)
		if !d.Before(weekStart) && !d.After(today) {
			thisWeek++
			i := int(d.Sub(weekStart).Hours() / 24)
			daily[i]++
			activity[i].Bookings++
			revenueByDay[i] += BookingRevenue(b)
		} else if !d.Before(prevWeekStart) && d.Before(weekStart) {
			prevWeek++
		}
	}
	for i := range activity {
		activity[i].Revenue = revenueByDay[i]
		activity[i].AverageBookingValue = SafeDiv(float64(revenueByDay[i]), float64(activity[i].Bookings))
	}

	change, trend := Compare(int64(thisWeek), int64(prevWeek))
	return models.BookingStats{
		Total:    total,
		Daily:    daily,
		Activity: activity,
		Change:   change,
		Trend:    trend,
	}
}

func (s *dashboardService) fieldStats(fields []models.Field, bookings []models.Booking) models.FieldStats {
	stats := models.FieldStats{Total: len(fields)}
	for _, f := range fields {
		switch f.Status {
		case models.FieldStatusActive:
			stats.Active++
		case models.FieldStatusHidden:
			stats.Hidden++
		case models.FieldStatusMaintenance:
			stats.Maintenance++
		}
	}
	stats.TopFields = buildTopFields(fields, bookings, 5, "revenue")
	return stats
}

// RevenueByPeriod returns the dashboard revenue slice for one period token.
func (s *dashboardService) RevenueByPeriod(ctx context.Context, ownerID int64, period string) (*models.RevenueByPeriod, error) {
	pair, err := s.fetchPeriod(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}

	summary := Summarize(pair.current)
	prevSummary := Summarize(pair.previous)
	change, trend := Compare(summary.TotalRevenue, prevSummary.TotalRevenue)

	var series []models.DailyRevenuePoint
	for _, pt := range RevenueTimeSeries(pair.current, GroupByDay) {
		series = append(series, models.DailyRevenuePoint{
			Date:     pt.Date,
			Revenue:  pt.Revenue,
			Bookings: pt.Bookings,
		})
	}
	var fieldsOut []models.FieldRevenuePoint
	for _, fb := range FieldRevenueShares(pair.current, pair.previous) {
		fieldsOut = append(fieldsOut, models.FieldRevenuePoint{
			FieldID:    fb.FieldID,
			FieldName:  fb.FieldName,
			Location:   fb.Location,
			Revenue:    fb.Revenue,
			Percentage: fb.Percentage,
			Bookings:   fb.Bookings,
		})
	}

	return &models.RevenueByPeriod{
		Period:                period,
		TotalRevenue:          summary.TotalRevenue,
		PreviousPeriodRevenue: prevSummary.TotalRevenue,
		Change:                change,
		Trend:                 trend,
		TimeSeriesData:        series,
		FieldBreakdown:        fieldsOut,
	}, nil
}

// BookingsByPeriod returns the dashboard bookings slice for one period token.
func (s *dashboardService) BookingsByPeriod(ctx context.Context, ownerID int64, period string) (*models.BookingsByPeriod, error) {
	pair, err := s.fetchPeriod(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}

	summary := Summarize(pair.current)

	var activity []models.BookingActivityPoint
	for _, pt := range BookingTimeSeries(pair.current) {
		activity = append(activity, models.BookingActivityPoint{
			Date:                pt.Date,
			Bookings:            pt.Bookings,
			Revenue:             pt.Revenue,
			AverageBookingValue: SafeDiv(float64(pt.Revenue), float64(pt.Confirmed)),
		})
	}
	var fieldsOut []models.FieldBookingPoint
	for _, fb := range FieldBookingShares(pair.current, pair.rng, s.scoring.SlotsPerDay) {
		fieldsOut = append(fieldsOut, models.FieldBookingPoint{
			FieldID:    fb.FieldID,
			FieldName:  fb.FieldName,
			Bookings:   fb.TotalBookings,
			Percentage: Pct(fb.TotalBookings, summary.TotalBookings),
		})
	}

	return &models.BookingsByPeriod{
		Period:            period,
		TotalBookings:     summary.TotalBookings,
		ConfirmedBookings: summary.ConfirmedBookings,
		CancelledBookings: summary.CancelledBookings,
		PendingBookings:   summary.PendingBookings,
		CancellationRate:  summary.CancellationRate,
		Activity:          activity,
		FieldBreakdown:    fieldsOut,
	}, nil
}

// UsersByPeriod returns the dashboard users slice for one period token.
func (s *dashboardService) UsersByPeriod(ctx context.Context, ownerID int64, period string) (*models.UsersByPeriod, error) {
	pair, err := s.fetchPeriod(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.repo.CountOwnerUsers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	summary := SummarizeUsers(pair.current, pair.previous, totalUsers)
	return &models.UsersByPeriod{
		Period:         period,
		TotalUsers:     summary.TotalUsers,
		NewUsers:       summary.NewUsers,
		ActiveUsers:    summary.ActiveUsers,
		ReturningUsers: summary.ReturningUsers,
		RetentionRate:  summary.RetentionRate,
		UserGrowth:     UserGrowthSeries(pair.current),
	}, nil
}

// TopFields returns the owner's best fields for the current month, sorted by
// revenue or bookings.
func (s *dashboardService) TopFields(ctx context.Context, ownerID int64, limit int, sortBy string) ([]models.TopFieldItem, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	if limit <= 0 {
		limit = 5
	}
	today := dateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		bookings []models.Booking
		fields   []models.Field
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.repo.FetchOwnerBookings(gctx, ownerID, monthStart, today)
		return err
	})
	g.Go(func() error {
		var err error
		fields, err = s.repo.GetOwnerFields(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	return buildTopFields(fields, bookings, limit, sortBy), nil
}

func buildTopFields(fields []models.Field, bookings []models.Booking, limit int, sortBy string) []models.TopFieldItem {
	type fieldAgg struct {
		bookings   int
		revenue    int64
		ratingSum  int
		reviews    int
		priceSum   int64
		priceCount int
	}
	aggs := make(map[int64]*fieldAgg, len(fields))
	for _, f := range fields {
		aggs[f.ID] = &fieldAgg{}
	}
	for _, b := range bookings {
		if b.Field == nil {
			continue
		}
		agg, ok := aggs[b.Field.ID]
		if !ok {
			continue
		}
		if b.Status == models.BookingStatusConfirmed {
			agg.bookings++
			agg.revenue += BookingRevenue(b)
		}
		if b.Rating != nil && *b.Rating > 0 {
			agg.ratingSum += *b.Rating
			agg.reviews++
		}
		for _, bs := range b.Slots {
			if bs.Slot != nil && bs.Slot.Price != nil {
				agg.priceSum += *bs.Slot.Price
				agg.priceCount++
			}
		}
	}

	items := make([]models.TopFieldItem, 0, len(fields))
	for _, f := range fields {
		agg := aggs[f.ID]
		item := models.TopFieldItem{
			ID:           strconv.FormatInt(f.ID, 10),
			Name:         f.Name,
			Status:       models.FieldStatusName(f.Status),
			Bookings:     agg.bookings,
			Revenue:      agg.revenue,
			PricePerHour: SafeDiv(float64(agg.priceSum), float64(agg.priceCount)),
			IsVisible:    f.Status == models.FieldStatusActive,
			Reviews:      agg.reviews,
		}
		item.Location = venueLocation(f.Venue)
		if agg.reviews > 0 {
			r := Round2(float64(agg.ratingSum) / float64(agg.reviews))
			item.Rating = &r
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if sortBy == "bookings" {
			if items[i].Bookings != items[j].Bookings {
				return items[i].Bookings > items[j].Bookings
			}
		}
		return items[i].Revenue > items[j].Revenue
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// fetchPeriod resolves a dashboard period token and loads the current and
// previous snapshots concurrently.
func (s *dashboardService) fetchPeriod(ctx context.Context, ownerID int64, period string) (*snapshotPair, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	rng, err := ResolvePeriod(period, nil, nil, s.now())
	if err != nil {
		return nil, err
	}
	pair := &snapshotPair{rng: rng, prevRng: PreviousRange(rng)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pair.current, err = s.repo.FetchOwnerBookings(gctx, ownerID, pair.rng.Start, pair.rng.End)
		return err
	})
	g.Go(func() error {
		var err error
		pair.previous, err = s.repo.FetchOwnerBookings(gctx, ownerID, pair.prevRng.Start, pair.prevRng.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return pair, nil
}
