package models

import "time"

// The report shapes below are the public contract of the reporting engine.
// Every report carries a generated id ("<type>_<timestamp>"), the resolved
// period and a summary block; the breakdown lists are ordered and their
// percentages sum to 100 (± rounding) whenever the denominator is non-zero.

// RevenueTimePoint is one bucket of the revenue time series.
type RevenueTimePoint struct {
	Date                string  `json:"date"` // group key: YYYY-MM-DD, YYYY-W##, or YYYY-MM
	Revenue             int64   `json:"revenue"`
	Bookings            int     `json:"bookings"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

// DayRevenue identifies the peak or lowest revenue bucket.
type DayRevenue struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

// RevenueSummary holds the scalar metrics of a revenue report.
type RevenueSummary struct {
	TotalRevenue          int64       `json:"total_revenue"`
	PreviousPeriodRevenue int64       `json:"previous_period_revenue"`
	Change                float64     `json:"change"` // percent vs previous period
	Trend                 string      `json:"trend"`  // up, down, stable
	AverageDaily          float64     `json:"average_daily"`
	AverageWeekly         float64     `json:"average_weekly"`
	PeakDay               *DayRevenue `json:"peak_day,omitempty"`
	LowestDay             *DayRevenue `json:"lowest_day,omitempty"`
}

// FieldRevenueBreakdown is one field's share of the period revenue.
type FieldRevenueBreakdown struct {
	FieldID             string  `json:"field_id"`
	FieldName           string  `json:"field_name"`
	Location            string  `json:"location"`
	Revenue             int64   `json:"revenue"`
	Percentage          float64 `json:"percentage"`
	Bookings            int     `json:"bookings"`
	AverageBookingValue float64 `json:"average_booking_value"`
	GrowthRate          float64 `json:"growth_rate"` // percent vs same field, previous period
}

// HourlyBreakdown buckets revenue by hour of day (0-23). A booking spanning
// several slots contributes an even share of its revenue to each slot's hour.
type HourlyBreakdown struct {
	Hour       int     `json:"hour"`
	Revenue    int64   `json:"revenue"`
	Bookings   int     `json:"bookings"`
	Percentage float64 `json:"percentage"`
}

// WeekdayBreakdown buckets revenue by day of week (0=Sunday..6=Saturday).
type WeekdayBreakdown struct {
	DayOfWeek  int     `json:"day_of_week"`
	DayName    string  `json:"day_name"`
	Revenue    int64   `json:"revenue"`
	Bookings   int     `json:"bookings"`
	Percentage float64 `json:"percentage"`
}

// PaymentMethodBreakdown buckets revenue by payment method label.
type PaymentMethodBreakdown struct {
	Method           string  `json:"method"`
	Revenue          int64   `json:"revenue"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// TopCustomer is one entry of the top-spenders list.
type TopCustomer struct {
	CustomerID          string  `json:"customer_id"`
	CustomerName        string  `json:"customer_name"`
	TotalSpent          int64   `json:"total_spent"`
	BookingCount        int     `json:"booking_count"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

// RevenueReport is the full revenue report payload.
type RevenueReport struct {
	ReportID               string                   `json:"report_id"`
	GeneratedAt            time.Time                `json:"generated_at"`
	Period                 string                   `json:"period"`
	StartDate              string                   `json:"start_date"`
	EndDate                string                   `json:"end_date"`
	Summary                RevenueSummary           `json:"summary"`
	TimeSeriesData         []RevenueTimePoint       `json:"time_series_data"`
	FieldBreakdown         []FieldRevenueBreakdown  `json:"field_breakdown"`
	HourlyBreakdown        []HourlyBreakdown        `json:"hourly_breakdown"`
	WeekdayBreakdown       []WeekdayBreakdown       `json:"weekday_breakdown"`
	PaymentMethodBreakdown []PaymentMethodBreakdown `json:"payment_method_breakdown"`
	TopCustomers           []TopCustomer            `json:"top_customers"`
}

// BookingSummary holds the scalar metrics of a booking report.
type BookingSummary struct {
	TotalBookings       int     `json:"total_bookings"`
	ConfirmedBookings   int     `json:"confirmed_bookings"`
	CancelledBookings   int     `json:"cancelled_bookings"`
	CompletedBookings   int     `json:"completed_bookings"`
	PendingBookings     int     `json:"pending_bookings"`
	CancellationRate    float64 `json:"cancellation_rate"`
	ConfirmationRate    float64 `json:"confirmation_rate"`
	AverageBookingValue float64 `json:"average_booking_value"`
	TotalRevenue        int64   `json:"total_revenue"`
}

// BookingTimePoint is one day of the booking time series.
type BookingTimePoint struct {
	Date      string `json:"date"`
	Bookings  int    `json:"bookings"`
	Confirmed int    `json:"confirmed"`
	Cancelled int    `json:"cancelled"`
	Revenue   int64  `json:"revenue"`
}

// FieldBookingBreakdown is one field's booking activity for the period.
type FieldBookingBreakdown struct {
	FieldID                string  `json:"field_id"`
	FieldName              string  `json:"field_name"`
	TotalBookings          int     `json:"total_bookings"`
	ConfirmedBookings      int     `json:"confirmed_bookings"`
	CancelledBookings      int     `json:"cancelled_bookings"`
	OccupancyRate          float64 `json:"occupancy_rate"` // slot-count proxy, not true capacity
	Revenue                int64   `json:"revenue"`
	AverageBookingDuration float64 `json:"average_booking_duration"` // in slots
	PeakHours              []int   `json:"peak_hours"`
}

// HourlyBookingBucket buckets booking counts by hour of day.
type HourlyBookingBucket struct {
	Hour           int     `json:"hour"`
	Bookings       int     `json:"bookings"`
	Percentage     float64 `json:"percentage"`
	AverageRevenue float64 `json:"average_revenue"`
}

// WeekdayBookingBucket buckets booking counts by day of week.
type WeekdayBookingBucket struct {
	DayOfWeek  int     `json:"day_of_week"`
	DayName    string  `json:"day_name"`
	Bookings   int     `json:"bookings"`
	Percentage float64 `json:"percentage"`
	Revenue    int64   `json:"revenue"`
}

// DurationBucket is one entry of the booking-duration distribution.
type DurationBucket struct {
	Duration   int     `json:"duration"` // number of slots
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DurationAnalysis summarizes how many slots bookings span.
type DurationAnalysis struct {
	Average      float64          `json:"average"`
	Median       int              `json:"median"`
	Mode         int              `json:"mode"`
	Distribution []DurationBucket `json:"distribution"`
}

// AdvanceBucket counts bookings placed a given lead time before their date.
type AdvanceBucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AdvanceBookingAnalysis buckets bookings by how far in advance they were placed.
type AdvanceBookingAnalysis struct {
	SameDay          AdvanceBucket `json:"same_day"`
	OneDayAdvance    AdvanceBucket `json:"one_day_advance"`
	ThreeDaysAdvance AdvanceBucket `json:"three_days_advance"` // 2-3 days
	OneWeekAdvance   AdvanceBucket `json:"one_week_advance"`   // 4-7 days
	MoreThanWeek     AdvanceBucket `json:"more_than_week"`
}

// CancellationReason is one entry of the cancellation-reason distribution.
type CancellationReason struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CancellationTiming buckets cancellations by lead time before the booking.
type CancellationTiming struct {
	LessThan1Hour   int `json:"less_than_1_hour"`
	LessThan24Hours int `json:"less_than_24_hours"`
	LessThan3Days   int `json:"less_than_3_days"`
	MoreThan3Days   int `json:"more_than_3_days"`
}

// CancellationAnalysis summarizes cancelled bookings for the period.
type CancellationAnalysis struct {
	TotalCancelled         int                  `json:"total_cancelled"`
	Reasons                []CancellationReason `json:"reasons"`
	TimeBeforeCancellation CancellationTiming   `json:"time_before_cancellation"`
}

// PeakPeriod is a named high-demand window with its activity.
type PeakPeriod struct {
	Period        string  `json:"period"`
	Bookings      int     `json:"bookings"`
	Revenue       int64   `json:"revenue"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// BookingReport is the full booking report payload.
type BookingReport struct {
	ReportID               string                 `json:"report_id"`
	GeneratedAt            time.Time              `json:"generated_at"`
	Period                 string                 `json:"period"`
	StartDate              string                 `json:"start_date"`
	EndDate                string                 `json:"end_date"`
	Summary                BookingSummary         `json:"summary"`
	TimeSeriesData         []BookingTimePoint     `json:"time_series_data"`
	FieldBookings          []FieldBookingBreakdown `json:"field_bookings"`
	HourlyDistribution     []HourlyBookingBucket  `json:"hourly_distribution"`
	WeekdayDistribution    []WeekdayBookingBucket `json:"weekday_distribution"`
	DurationAnalysis       DurationAnalysis       `json:"duration_analysis"`
	AdvanceBookingAnalysis AdvanceBookingAnalysis `json:"advance_booking_analysis"`
	CancellationAnalysis   CancellationAnalysis   `json:"cancellation_analysis"`
	PeakPeriods            []PeakPeriod           `json:"peak_periods"`
}

// UserSummary holds the scalar metrics of a user report.
type UserSummary struct {
	TotalUsers             int     `json:"total_users"`
	NewUsers               int     `json:"new_users"`
	ActiveUsers            int     `json:"active_users"`
	InactiveUsers          int     `json:"inactive_users"`
	ReturningUsers         int     `json:"returning_users"`
	ChurnRate              float64 `json:"churn_rate"`
	RetentionRate          float64 `json:"retention_rate"`
	AverageLifetimeValue   float64 `json:"average_lifetime_value"`
	AverageBookingsPerUser float64 `json:"average_bookings_per_user"`
	AverageRevenuePerUser  float64 `json:"average_revenue_per_user"`
}

// UserGrowthPoint is one day of the user growth series.
type UserGrowthPoint struct {
	Date        string `json:"date"`
	NewUsers    int    `json:"new_users"`
	ActiveUsers int    `json:"active_users"`
}

// UserSegment is one customer segment with its averages.
type UserSegment struct {
	Segment         string  `json:"segment"` // new, active, at_risk, inactive
	Count           int     `json:"count"`
	Percentage      float64 `json:"percentage"`
	AverageRevenue  float64 `json:"average_revenue"`
	AverageBookings float64 `json:"average_bookings"`
}

// EngagementMetrics carries active-user counts at three horizons.
type EngagementMetrics struct {
	DailyActiveUsers   int     `json:"daily_active_users"`
	WeeklyActiveUsers  int     `json:"weekly_active_users"`
	MonthlyActiveUsers int     `json:"monthly_active_users"`
	DauWauRatio        float64 `json:"dau_wau_ratio"`
	DauMauRatio        float64 `json:"dau_mau_ratio"`
}

// TopUser is one entry of the top-customers list of the user report.
type TopUser struct {
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	Email         *string `json:"email,omitempty"`
	TotalBookings int     `json:"total_bookings"`
	TotalSpent    int64   `json:"total_spent"`
	LastBooking   string  `json:"last_booking,omitempty"`
	MemberSince   string  `json:"member_since,omitempty"`
}

// UserReport is the full user report payload.
type UserReport struct {
	ReportID          string            `json:"report_id"`
	GeneratedAt       time.Time         `json:"generated_at"`
	Period            string            `json:"period"`
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	Summary           UserSummary       `json:"summary"`
	UserGrowth        []UserGrowthPoint `json:"user_growth"`
	UserSegments      []UserSegment     `json:"user_segments"`
	EngagementMetrics EngagementMetrics `json:"engagement_metrics"`
	TopUsers          []TopUser         `json:"top_users"`
}

// FieldIssue flags a recurring problem on a field.
type FieldIssue struct {
	Type     string `json:"type"` // cancellation, complaint
	Count    int    `json:"count"`
	Severity string `json:"severity"` // high, medium, low
}

// PeakHour is one of a field's busiest hours.
type PeakHour struct {
	Hour     int   `json:"hour"`
	Bookings int   `json:"bookings"`
	Revenue  int64 `json:"revenue"`
}

// FieldPerformance is the per-field block of the performance report.
type FieldPerformance struct {
	FieldID           string       `json:"field_id"`
	FieldName         string       `json:"field_name"`
	Location          string       `json:"location"`
	Bookings          int          `json:"bookings"`
	Revenue           int64        `json:"revenue"`
	OccupancyRate     float64      `json:"occupancy_rate"`
	AverageRating     float64      `json:"average_rating"`
	ReviewCount       int          `json:"review_count"`
	PerformanceScore  int          `json:"performance_score"`
	RevenueScore      int          `json:"revenue_score"`
	OccupancyScore    int          `json:"occupancy_score"`
	SatisfactionScore int          `json:"satisfaction_score"`
	RevenueTrend      string       `json:"revenue_trend"`
	PeakHours         []PeakHour   `json:"peak_hours"`
	Issues            []FieldIssue `json:"issues"`
}

// OverallPerformance is the owner-wide composite score block.
type OverallPerformance struct {
	Score         int      `json:"score"`
	Rating        string   `json:"rating"`
	PreviousScore int      `json:"previous_score"`
	Change        int      `json:"change"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
}

// PerformanceKPIs carries the headline indicators of the performance report.
type PerformanceKPIs struct {
	AverageOccupancyRate float64 `json:"average_occupancy_rate"`
	AverageBookingValue  float64 `json:"average_booking_value"`
	CustomerSatisfaction float64 `json:"customer_satisfaction"`
	CancellationRate     float64 `json:"cancellation_rate"`
}

// BenchmarkEntry compares one metric against a reference value.
type BenchmarkEntry struct {
	Reference  float64 `json:"reference"`
	Yours      float64 `json:"yours"`
	Difference float64 `json:"difference"`
}

// BenchmarkComparison puts the owner's numbers next to industry references.
type BenchmarkComparison struct {
	Occupancy    BenchmarkEntry `json:"occupancy"`
	Revenue      BenchmarkEntry `json:"revenue"`
	Satisfaction BenchmarkEntry `json:"satisfaction"`
}

// Recommendation is one rule-produced improvement suggestion.
type Recommendation struct {
	Priority       string   `json:"priority"` // high, medium, low
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ExpectedImpact string   `json:"expected_impact"`
	ActionItems    []string `json:"action_items"`
}

// GrowthOpportunity is a candidate revenue initiative.
type GrowthOpportunity struct {
	Opportunity      string  `json:"opportunity"`
	PotentialRevenue float64 `json:"potential_revenue"`
	Effort           string  `json:"effort"`
	Timeline         string  `json:"timeline"`
}

// PerformanceReport is the full performance report payload.
type PerformanceReport struct {
	ReportID            string              `json:"report_id"`
	GeneratedAt         time.Time           `json:"generated_at"`
	Period              string              `json:"period"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	OverallPerformance  OverallPerformance  `json:"overall_performance"`
	FieldPerformance    []FieldPerformance  `json:"field_performance"`
	KPIs                PerformanceKPIs     `json:"kpis"`
	BenchmarkComparison BenchmarkComparison `json:"benchmark_comparison"`
	Recommendations     []Recommendation    `json:"recommendations"`
	GrowthOpportunities []GrowthOpportunity `json:"growth_opportunities"`
}

// ReportExport wraps an already-computed report serialized for download.
type ReportExport struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}
