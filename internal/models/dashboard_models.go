package models

// Dashboard shapes: period-scoped scalar slices of the same snapshot data the
// full reports are computed from.

// RevenueStats is the revenue block of the combined dashboard stats.
type RevenueStats struct {
	Total   int64   `json:"total"`
	Today   int64   `json:"today"`
	Week    int64   `json:"week"`
	Month   int64   `json:"month"`
	Monthly []int64 `json:"monthly"` // last six months, oldest first
	Change  float64 `json:"change"`
	Trend   string  `json:"trend"`
}

// UserStats is the customer block of the combined dashboard stats.
type UserStats struct {
	Total    int     `json:"total"`
	NewUsers int     `json:"new_users"`
	Daily    int     `json:"daily"`
	Weekly   int     `json:"weekly"`
	Change   float64 `json:"change"`
	Trend    string  `json:"trend"`
}

// BookingActivityPoint is one day of booking activity.
type BookingActivityPoint struct {
	Date                string  `json:"date"`
	Bookings            int     `json:"bookings"`
	Revenue             int64   `json:"revenue"`
	AverageBookingValue float64 `json:"average_booking_value"`
}

// BookingStats is the bookings block of the combined dashboard stats.
type BookingStats struct {
	Total    int                    `json:"total"`
	Daily    []int                  `json:"daily"` // last seven days, oldest first
	Activity []BookingActivityPoint `json:"activity"`
	Change   float64                `json:"change"`
	Trend    string                 `json:"trend"`
}

// TopFieldItem is one field of the top-fields list.
type TopFieldItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Status       string   `json:"status"`
	Bookings     int      `json:"bookings"`
	Revenue      int64    `json:"revenue"`
	PricePerHour float64  `json:"price_per_hour"`
	IsVisible    bool     `json:"is_visible"`
	Rating       *float64 `json:"rating,omitempty"`
	Reviews      int      `json:"reviews"`
}

// FieldStats is the fields block of the combined dashboard stats.
type FieldStats struct {
	Total       int            `json:"total"`
	Active      int            `json:"active"`
	Hidden      int            `json:"hidden"`
	Maintenance int            `json:"maintenance"`
	TopFields   []TopFieldItem `json:"top_fields"`
}

// DashboardStats is the combined dashboard payload.
type DashboardStats struct {
	Revenue  RevenueStats `json:"revenue"`
	Users    UserStats    `json:"users"`
	Bookings BookingStats `json:"bookings"`
	Fields   FieldStats   `json:"fields"`
}

// DailyRevenuePoint is one day of the dashboard revenue series.
type DailyRevenuePoint struct {
	Date     string `json:"date"`
	Revenue  int64  `json:"revenue"`
	Bookings int    `json:"bookings"`
}

// FieldRevenuePoint is one field of the dashboard revenue breakdown.
type FieldRevenuePoint struct {
	FieldID    string  `json:"field_id"`
	FieldName  string  `json:"field_name"`
	Location   string  `json:"location"`
	Revenue    int64   `json:"revenue"`
	Percentage float64 `json:"percentage"`
	Bookings   int     `json:"bookings"`
}

// RevenueByPeriod is the dashboard revenue payload for one period.
type RevenueByPeriod struct {
	Period                string              `json:"period"`
	TotalRevenue          int64               `json:"total_revenue"`
	PreviousPeriodRevenue int64               `json:"previous_period_revenue"`
	Change                float64             `json:"change"`
	Trend                 string              `json:"trend"`
	TimeSeriesData        []DailyRevenuePoint `json:"time_series_data"`
	FieldBreakdown        []FieldRevenuePoint `json:"field_breakdown"`
}

// FieldBookingPoint is one field of the dashboard booking breakdown.
type FieldBookingPoint struct {
	FieldID    string  `json:"field_id"`
	FieldName  string  `json:"field_name"`
	Bookings   int     `json:"bookings"`
	Percentage float64 `json:"percentage"`
}

// BookingsByPeriod is the dashboard bookings payload for one period.
type BookingsByPeriod struct {
	Period            string                 `json:"period"`
	TotalBookings     int                    `json:"total_bookings"`
	ConfirmedBookings int                    `json:"confirmed_bookings"`
	CancelledBookings int                    `json:"cancelled_bookings"`
	PendingBookings   int                    `json:"pending_bookings"`
	CancellationRate  float64                `json:"cancellation_rate"`
	Activity          []BookingActivityPoint `json:"activity"`
	FieldBreakdown    []FieldBookingPoint    `json:"field_breakdown"`
}

// UsersByPeriod is the dashboard users payload for one period.
type UsersByPeriod struct {
	Period         string            `json:"period"`
	TotalUsers     int               `json:"total_users"`
	NewUsers       int               `json:"new_users"`
	ActiveUsers    int               `json:"active_users"`
	ReturningUsers int               `json:"returning_users"`
	RetentionRate  float64           `json:"retention_rate"`
	UserGrowth     []UserGrowthPoint `json:"user_growth"`
}
