package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fieldbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReportRepo serves canned snapshots keyed by date range.
type fakeReportRepo struct {
	fields     []models.Field
	bookings   []models.Booking
	totalUsers int
	err        error
}

func (f *fakeReportRepo) GetOwnerFields(ctx context.Context, ownerID int64) ([]models.Field, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

func (f *fakeReportRepo) FetchOwnerBookings(ctx context.Context, ownerID int64, start, end time.Time) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	rng := DateRange{Start: start, End: end}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date != nil && rng.Contains(*b.Date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) CountOwnerUsers(ctx context.Context, ownerID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.totalUsers, nil
}

func reportFixture() *fakeReportRepo {
	var bookings []models.Booking
	// Ten confirmed paid bookings at 50 each across March 1-10.
	for i := 1; i <= 10; i++ {
		bookings = append(bookings, confirmedPaid(int64(i), day(2024, time.March, i), 50,
			withUser(int64(i%3+1), "user"),
			withField(1, "Main Pitch", "12 Arena Way"),
			withSlots(10+i%3)))
	}
	// Two cancellations.
	bookings = append(bookings,
		makeBooking(11, day(2024, time.March, 4), models.BookingStatusCancelled,
			withField(1, "Main Pitch", "12 Arena Way")),
		makeBooking(12, day(2024, time.March, 8), models.BookingStatusCancelled,
			withField(1, "Main Pitch", "12 Arena Way")))
	// Previous-period activity: Feb 20 falls inside the Feb 15-29 window
	// that precedes a month-to-date range ending March 15.
	bookings = append(bookings,
		confirmedPaid(13, day(2024, time.February, 20), 100,
			withUser(1, "user"), withField(1, "Main Pitch", "12 Arena Way")))

	return &fakeReportRepo{
		fields: []models.Field{
			{ID: 1, Name: "Main Pitch", Venue: &models.Venue{Address: sp("12 Arena Way")}},
		},
		bookings:   bookings,
		totalUsers: 5,
	}
}

func fixedRequest(period string) ReportRequest {
	return ReportRequest{
		Period: period,
		Now:    day(2024, time.March, 15),
	}
}

func TestRevenueReportEndToEnd(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	report, err := svc.RevenueReport(context.Background(), 1, fixedRequest("monthly"))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", report.StartDate)
	assert.Equal(t, "2024-03-15", report.EndDate)
	assert.Equal(t, "rev_20240315_000000", report.ReportID)
	assert.Equal(t, int64(500), report.Summary.TotalRevenue)
	assert.Equal(t, int64(100), report.Summary.PreviousPeriodRevenue)
	assert.Equal(t, 400.0, report.Summary.Change)
	assert.Equal(t, "up", report.Summary.Trend)
	require.NotNil(t, report.Summary.PeakDay)
	assert.Len(t, report.TimeSeriesData, 10)
	require.Len(t, report.FieldBreakdown, 1)
	assert.Equal(t, 100.0, report.FieldBreakdown[0].Percentage)
	assert.NotEmpty(t, report.TopCustomers)
}

func TestBookingReportEndToEnd(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	report, err := svc.BookingReport(context.Background(), 1, fixedRequest("monthly"))
	require.NoError(t, err)

	assert.Equal(t, 12, report.Summary.TotalBookings)
	assert.Equal(t, 10, report.Summary.ConfirmedBookings)
	assert.Equal(t, 2, report.Summary.CancelledBookings)
	assert.Equal(t, int64(500), report.Summary.TotalRevenue)
	assert.Equal(t, 16.67, report.Summary.CancellationRate)
	assert.Equal(t, 50.0, report.Summary.AverageBookingValue)
	assert.Equal(t, 2, report.CancellationAnalysis.TotalCancelled)
	assert.Len(t, report.WeekdayDistribution, 7)
	assert.Len(t, report.PeakPeriods, 2)
}

func TestUserReportEndToEnd(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	report, err := svc.UserReport(context.Background(), 1, fixedRequest("monthly"))
	require.NoError(t, err)

	assert.Equal(t, 5, report.Summary.TotalUsers)
	assert.Equal(t, 3, report.Summary.ActiveUsers)
	assert.NotEmpty(t, report.UserGrowth)
	assert.Len(t, report.UserSegments, 4)
	assert.NotEmpty(t, report.TopUsers)
}

func TestPerformanceReportEndToEnd(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	report, err := svc.PerformanceReport(context.Background(), 1, fixedRequest("monthly"))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, report.OverallPerformance.Score, 0)
	assert.LessOrEqual(t, report.OverallPerformance.Score, 100)
	assert.Equal(t, RatingBand(report.OverallPerformance.Score), report.OverallPerformance.Rating)
	assert.Equal(t, report.OverallPerformance.Score-report.OverallPerformance.PreviousScore,
		report.OverallPerformance.Change)
	require.Len(t, report.FieldPerformance, 1)
	assert.NotEmpty(t, report.Recommendations)
	assert.Equal(t, 16.67, report.KPIs.CancellationRate)
}

func TestReportInvalidOwner(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	_, err := svc.RevenueReport(context.Background(), 0, fixedRequest("monthly"))
	assert.True(t, errors.Is(err, ErrInvalidOwner))

	_, err = svc.BookingReport(context.Background(), -3, fixedRequest("monthly"))
	assert.True(t, errors.Is(err, ErrInvalidOwner))
}

func TestReportInvalidPeriod(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	_, err := svc.RevenueReport(context.Background(), 1, fixedRequest("decade"))
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}

func TestReportDataUnavailable(t *testing.T) {
	repo := reportFixture()
	repo.err = errors.New("connection refused")
	svc := NewReportService(repo, DefaultScoringConfig())

	_, err := svc.RevenueReport(context.Background(), 1, fixedRequest("monthly"))
	assert.True(t, errors.Is(err, ErrDataUnavailable))

	_, err = svc.PerformanceReport(context.Background(), 1, fixedRequest("monthly"))
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestExportReport(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	export, err := svc.ExportReport(context.Background(), 1, ExportRequest{
		ReportType:    "revenue",
		Format:        "json",
		ReportRequest: fixedRequest("monthly"),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", export.ContentType)
	assert.Equal(t, "revenue_report_20240315_000000.json", export.FileName)

	var decoded models.RevenueReport
	require.NoError(t, json.Unmarshal(export.Data, &decoded))
	assert.Equal(t, int64(500), decoded.Summary.TotalRevenue)
}

func TestExportReportValidation(t *testing.T) {
	svc := NewReportService(reportFixture(), DefaultScoringConfig())

	_, err := svc.ExportReport(context.Background(), 1, ExportRequest{
		ReportType:    "inventory",
		ReportRequest: fixedRequest("monthly"),
	})
	assert.True(t, errors.Is(err, ErrUnsupportedExport))

	_, err = svc.ExportReport(context.Background(), 1, ExportRequest{
		ReportType:    "revenue",
		Format:        "pdf",
		ReportRequest: fixedRequest("monthly"),
	})
	assert.True(t, errors.Is(err, ErrUnsupportedExport))
}
