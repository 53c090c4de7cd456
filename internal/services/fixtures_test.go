package services

import (
	"time"

	"fieldbook_backend/internal/models"
)

// Test fixture helpers shared by the service tests.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

func sp(s string) *string { return &s }

type bookingOpt func(*models.Booking)

func withUser(id int64, name string) bookingOpt {
	return func(b *models.Booking) {
		b.UserID = &id
		b.User = &models.User{ID: id, Name: name}
	}
}

// withField attaches a field whose venue sits at the given address.
func withField(id int64, name, address string) bookingOpt {
	return func(b *models.Booking) {
		b.FieldID = &id
		b.Field = &models.Field{ID: id, Name: name, Venue: &models.Venue{ID: 100 + id, Address: &address}}
	}
}

func withPayment(amount int64, status int, method string) bookingOpt {
	return func(b *models.Booking) {
		p := models.Payment{ID: int64(len(b.Payments) + 1), Amount: amount, Status: status}
		if method != "" {
			p.Method = &method
		}
		b.Payments = append(b.Payments, p)
	}
}

// withSlots attaches one slot per given hour on the booking's date.
func withSlots(hours ...int) bookingOpt {
	return func(b *models.Booking) {
		date := time.Now().UTC()
		if b.Date != nil {
			date = *b.Date
		}
		for _, h := range hours {
			start := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, time.UTC)
			end := start.Add(time.Hour)
			price := int64(1000)
			slot := &models.Slot{ID: int64(h), StartTime: &start, EndTime: &end, Price: &price}
			b.Slots = append(b.Slots, models.BookingSlot{ID: int64(len(b.Slots) + 1), Slot: slot})
		}
	}
}

func withRating(r int) bookingOpt {
	return func(b *models.Booking) { b.Rating = &r }
}

func withCreatedAt(t time.Time) bookingOpt {
	return func(b *models.Booking) { b.CreatedAt = &t }
}

func makeBooking(id int64, date time.Time, status int, opts ...bookingOpt) models.Booking {
	b := models.Booking{ID: id, Date: tp(date), CreatedAt: tp(date), Status: status}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// confirmedPaid is the common case: a confirmed booking with one paid payment.
func confirmedPaid(id int64, date time.Time, amount int64, opts ...bookingOpt) models.Booking {
	opts = append([]bookingOpt{withPayment(amount, models.PaymentStatusPaid, "card")}, opts...)
	return makeBooking(id, date, models.BookingStatusConfirmed, opts...)
}
