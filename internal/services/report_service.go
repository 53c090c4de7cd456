package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fieldbook_backend/internal/models"
	"fieldbook_backend/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedExport is returned for an export request naming an unknown
// report type or serialization format.
var ErrUnsupportedExport = errors.New("unsupported export request")

// ReportRequest carries the validated-at-the-edge inputs of a report call.
// Now defaults to the wall clock; tests pin it.
type ReportRequest struct {
	Period    string
	StartDate *time.Time
	EndDate   *time.Time
	GroupBy   string
	Now       time.Time
}

func (r ReportRequest) today() time.Time {
	if r.Now.IsZero() {
		return time.Now().UTC()
	}
	return r.Now
}

func (r ReportRequest) groupBy() string {
	if r.GroupBy == "" {
		return GroupByDay
	}
	return r.GroupBy
}

// ExportRequest asks for a serialized copy of an already-computed report.
type ExportRequest struct {
	ReportType string // revenue, bookings, users, performance
	Format     string // json
	ReportRequest
}

// ReportService assembles the owner reports. Every method returns either a
// complete report or an error, never a partial payload.
type ReportService interface {
	RevenueReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.RevenueReport, error)
	BookingReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.BookingReport, error)
	UserReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.UserReport, error)
	PerformanceReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.PerformanceReport, error)
	ExportReport(ctx context.Context, ownerID int64, req ExportRequest) (*models.ReportExport, error)
}

type reportService struct {
	repo    repositories.ReportRepository
	scoring ScoringConfig
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repositories.ReportRepository, scoring ScoringConfig) ReportService {
	return &reportService{repo: repo, scoring: scoring}
}

// snapshotPair holds the bookings of the requested period and of the
// comparison period immediately before it.
type snapshotPair struct {
	rng      DateRange
	prevRng  DateRange
	current  []models.Booking
	previous []models.Booking
}

// fetchSnapshots validates inputs, resolves the period and loads both
// snapshots concurrently.
func (s *reportService) fetchSnapshots(ctx context.Context, ownerID int64, req ReportRequest) (*snapshotPair, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	rng, err := ResolvePeriod(req.Period, req.StartDate, req.EndDate, req.today())
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

func reportID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, now.Format("20060102_150405"))
}

func (s *reportService) RevenueReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.RevenueReport, error) {
	pair, err := s.fetchSnapshots(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	summary := Summarize(pair.current)
	prevSummary := Summarize(pair.previous)
	change, trend := Compare(summary.TotalRevenue, prevSummary.TotalRevenue)

	series := RevenueTimeSeries(pair.current, req.groupBy())
	var peak, lowest *models.DayRevenue
	for _, pt := range series {
		if peak == nil || pt.Revenue > peak.Revenue {
			peak = &models.DayRevenue{Date: pt.Date, Revenue: pt.Revenue}
		}
		if lowest == nil || pt.Revenue < lowest.Revenue {
			lowest = &models.DayRevenue{Date: pt.Date, Revenue: pt.Revenue}
		}
	}

	days := pair.rng.DayCount()
	now := req.today()
	return &models.RevenueReport{
		ReportID:    reportID("rev", now),
		GeneratedAt: now,
		Period:      req.Period,
		StartDate:   pair.rng.Start.Format(dateLayout),
		EndDate:     pair.rng.End.Format(dateLayout),
		Summary: models.RevenueSummary{
			TotalRevenue:          summary.TotalRevenue,
			PreviousPeriodRevenue: prevSummary.TotalRevenue,
			Change:                change,
			Trend:                 trend,
			AverageDaily:          SafeDiv(float64(summary.TotalRevenue), float64(days)),
			AverageWeekly:         SafeDiv(float64(summary.TotalRevenue)*7, float64(days)),
			PeakDay:               peak,
			LowestDay:             lowest,
		},
		TimeSeriesData:         series,
		FieldBreakdown:         FieldRevenueShares(pair.current, pair.previous),
		HourlyBreakdown:        HourlyRevenueBreakdown(pair.current),
		WeekdayBreakdown:       WeekdayRevenueBreakdown(pair.current),
		PaymentMethodBreakdown: PaymentMethodShares(pair.current),
		TopCustomers:           TopCustomers(pair.current),
	}, nil
}

func (s *reportService) BookingReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.BookingReport, error) {
	pair, err := s.fetchSnapshots(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	summary := Summarize(pair.current)
	now := req.today()
	return &models.BookingReport{
		ReportID:    reportID("book", now),
		GeneratedAt: now,
		Period:      req.Period,
		StartDate:   pair.rng.Start.Format(dateLayout),
		EndDate:     pair.rng.End.Format(dateLayout),
		Summary: models.BookingSummary{
			TotalBookings:       summary.TotalBookings,
			ConfirmedBookings:   summary.ConfirmedBookings,
			CancelledBookings:   summary.CancelledBookings,
			CompletedBookings:   summary.ConfirmedBookings,
			PendingBookings:     summary.PendingBookings,
			CancellationRate:    summary.CancellationRate,
			ConfirmationRate:    summary.ConfirmationRate,
			AverageBookingValue: summary.AverageBookingValue,
			TotalRevenue:        summary.TotalRevenue,
		},
		TimeSeriesData:         BookingTimeSeries(pair.current),
		FieldBookings:          FieldBookingShares(pair.current, pair.rng, s.scoring.SlotsPerDay),
		HourlyDistribution:     HourlyBookingDistribution(pair.current),
		WeekdayDistribution:    WeekdayBookingDistribution(pair.current),
		DurationAnalysis:       AnalyzeDurations(pair.current),
		AdvanceBookingAnalysis: AnalyzeAdvanceBooking(pair.current),
		CancellationAnalysis:   AnalyzeCancellations(pair.current),
		PeakPeriods:            PeakPeriods(pair.current, pair.rng, s.scoring.SlotsPerDay),
	}, nil
}

func (s *reportService) UserReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.UserReport, error) {
	pair, err := s.fetchSnapshots(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.repo.CountOwnerUsers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	now := req.today()
	return &models.UserReport{
		ReportID:          reportID("user", now),
		GeneratedAt:       now,
		Period:            req.Period,
		StartDate:         pair.rng.Start.Format(dateLayout),
		EndDate:           pair.rng.End.Format(dateLayout),
		Summary:           SummarizeUsers(pair.current, pair.previous, totalUsers),
		UserGrowth:        UserGrowthSeries(pair.current),
		UserSegments:      SegmentUsers(pair.current, pair.previous, totalUsers),
		EngagementMetrics: MeasureEngagement(pair.current, pair.rng),
		TopUsers:          TopUsers(pair.current),
	}, nil
}

func (s *reportService) PerformanceReport(ctx context.Context, ownerID int64, req ReportRequest) (*models.PerformanceReport, error) {
	pair, err := s.fetchSnapshots(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	fields, err := s.repo.GetOwnerFields(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	summary := Summarize(pair.current)
	prevSummary := Summarize(pair.previous)
	rating, _ := averageRating(pair.current)
	prevRating, _ := averageRating(pair.previous)

	metrics := perfMetrics{
		TotalRevenue:     summary.TotalRevenue,
		TotalBookings:    summary.TotalBookings,
		AverageRating:    rating,
		CancellationRate: summary.CancellationRate,
	}
	prevMetrics := perfMetrics{
		TotalRevenue:     prevSummary.TotalRevenue,
		TotalBookings:    prevSummary.TotalBookings,
		AverageRating:    prevRating,
		CancellationRate: prevSummary.CancellationRate,
	}

	fieldPerf := s.scoring.BuildFieldPerformance(fields, pair.current, pair.previous, pair.rng)
	var occupancySum float64
	for _, fp := range fieldPerf {
		occupancySum += fp.OccupancyRate
	}
	avgOccupancy := SafeDiv(occupancySum, float64(len(fieldPerf)))
	prevOccupancy := snapshotOccupancy(pair.previous, fields, pair.prevRng, s.scoring.SlotsPerDay)

	score := s.scoring.OwnerScore(metrics, avgOccupancy)
	previousScore := s.scoring.OwnerScore(prevMetrics, prevOccupancy)

	now := req.today()
	return &models.PerformanceReport{
		ReportID:    reportID("perf", now),
		GeneratedAt: now,
		Period:      req.Period,
		StartDate:   pair.rng.Start.Format(dateLayout),
		EndDate:     pair.rng.End.Format(dateLayout),
		OverallPerformance: models.OverallPerformance{
			Score:         score,
			Rating:        RatingBand(score),
			PreviousScore: previousScore,
			Change:        score - previousScore,
			Strengths:     evalRules(strengthRules, s.scoring, metrics),
			Weaknesses:    evalRules(weaknessRules, s.scoring, metrics),
		},
		FieldPerformance: fieldPerf,
		KPIs: models.PerformanceKPIs{
			AverageOccupancyRate: avgOccupancy,
			AverageBookingValue:  summary.AverageBookingValue,
			CustomerSatisfaction: rating,
			CancellationRate:     summary.CancellationRate,
		},
		BenchmarkComparison: s.scoring.BuildBenchmarks(avgOccupancy, summary.TotalRevenue, rating),
		Recommendations:     BuildRecommendations(s.scoring, metrics),
		GrowthOpportunities: BuildGrowthOpportunities(metrics, avgOccupancy),
	}, nil
}

// snapshotOccupancy averages the slot-count occupancy proxy across fields
// for a snapshot.
func snapshotOccupancy(bookings []models.Booking, fields []models.Field, rng DateRange, slotsPerDay int) float64 {
	if len(fields) == 0 {
		return 0
	}
	byField := make(map[int64][]models.Booking)
	for _, b := range bookings {
		if b.Field != nil {
			byField[b.Field.ID] = append(byField[b.Field.ID], b)
		}
	}
	var sum float64
	for _, f := range fields {
		sum += fieldOccupancy(byField[f.ID], rng, slotsPerDay)
	}
	return SafeDiv(sum, float64(len(fields)))
}

// ExportReport serializes a freshly computed report for download. Only JSON
// is supported; CSV and PDF generation live outside this service.
func (s *reportService) ExportReport(ctx context.Context, ownerID int64, req ExportRequest) (*models.ReportExport, error) {
	if req.Format != "" && req.Format != "json" {
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedExport, req.Format)
	}

	var payload interface{}
	var err error
	switch req.ReportType {
	case "revenue":
		payload, err = s.RevenueReport(ctx, ownerID, req.ReportRequest)
	case "bookings":
		payload, err = s.BookingReport(ctx, ownerID, req.ReportRequest)
	case "users":
		payload, err = s.UserReport(ctx, ownerID, req.ReportRequest)
	case "performance":
		payload, err = s.PerformanceReport(ctx, ownerID, req.ReportRequest)
	default:
		return nil, fmt.Errorf("%w: report type %q", ErrUnsupportedExport, req.ReportType)
	}
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: serializing %s report: %v", ErrComputationFault, req.ReportType, err)
	}
	return &models.ReportExport{
		FileName:    fmt.Sprintf("%s_report_%s.json", req.ReportType, req.today().Format("20060102_150405")),
		ContentType: "application/json",
		Data:        data,
	}, nil
}
