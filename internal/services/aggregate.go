package services

import (
	"math"

	"fieldbook_backend/internal/models"
)

// Summary is the scalar aggregate of a booking snapshot.
type Summary struct {
	TotalBookings       int
	ConfirmedBookings   int
	CancelledBookings   int
	PendingBookings     int
	TotalRevenue        int64
	CancellationRate    float64
	ConfirmationRate    float64
	AverageBookingValue float64
}

// BookingRevenue returns the realized revenue of a booking: the sum of its
// paid payments, and only when the booking itself is confirmed. Cancelled or
// pending bookings contribute nothing even when a payment was captured.
func BookingRevenue(b models.Booking) int64 {
	if b.Status != models.BookingStatusConfirmed {
		return 0
	}
	var total int64
	for _, p := range b.Payments {
		if p.Status == models.PaymentStatusPaid {
			total += p.Amount
		}
	}
	return total
}

// Summarize computes the scalar aggregate of a snapshot. All rates use a
// zero-denominator-yields-zero convention.
func Summarize(bookings []models.Booking) Summary {
	var s Summary
	s.TotalBookings = len(bookings)
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusConfirmed:
			s.ConfirmedBookings++
		case models.BookingStatusCancelled:
			s.CancelledBookings++
		default:
			s.PendingBookings++
		}
		s.TotalRevenue += BookingRevenue(b)
	}
	s.CancellationRate = Pct(s.CancelledBookings, s.TotalBookings)
	s.ConfirmationRate = Pct(s.ConfirmedBookings, s.TotalBookings)
	s.AverageBookingValue = SafeDiv(float64(s.TotalRevenue), float64(s.ConfirmedBookings))
	return s
}

// Compare returns the percentage change from previous to current, rounded to
// two decimals, and the trend label. A zero previous value maps to 100 when
// current is positive and 0 otherwise.
func Compare(current, previous int64) (change float64, trend string) {
	switch {
	case previous != 0:
		change = Round2(float64(current-previous) / float64(previous) * 100)
	case current > 0:
		change = 100
	default:
		change = 0
	}
	switch {
	case change > 0:
		trend = "up"
	case change < 0:
		trend = "down"
	default:
		trend = "stable"
	}
	return change, trend
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pct returns part/whole as a percentage rounded to two decimals, 0 when
// whole is zero.
func Pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(float64(part) / float64(whole) * 100)
}

// PctInt64 is Pct over int64 magnitudes (revenue shares).
func PctInt64(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(float64(part) / float64(whole) * 100)
}

// SafeDiv returns a/b rounded to two decimals, 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return Round2(a / b)
}
