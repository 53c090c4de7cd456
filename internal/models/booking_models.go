package models

import "time"

// Booking status codes as stored by the booking platform.
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCancelled = 2
)

// Payment status codes.
const (
	PaymentStatusUnpaid = 0
	PaymentStatusPaid   = 1
)

// Field status codes.
const (
	FieldStatusActive      = 0
	FieldStatusHidden      = 1
	FieldStatusMaintenance = 2
)

// FieldStatusName maps a field status code to its display name.
func FieldStatusName(status int) string {
	switch status {
	case FieldStatusActive:
		return "Active"
	case FieldStatusHidden:
		return "Hidden"
	case FieldStatusMaintenance:
		return "Under Maintenance"
	default:
		return "Unknown"
	}
}

// User is the booking customer, distinct from the venue owner.
type User struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// Venue belongs to an owner and contains fields.
type Venue struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	OwnerID int64   `json:"owner_id"`
}

// Field is a bookable unit inside a venue.
type Field struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Status  int    `json:"status"`
	VenueID *int64 `json:"venue_id,omitempty"`
	Venue   *Venue `json:"venue,omitempty"`
}

// Slot is a time-priced booking unit of a field.
type Slot struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Price     *int64     `json:"price,omitempty"`
	FieldID   *int64     `json:"field_id,omitempty"`
}

// BookingSlot links a booking to one of the field's slots.
type BookingSlot struct {
	ID        int64  `json:"id"`
	BookingID *int64 `json:"booking_id,omitempty"`
	SlotID    *int64 `json:"slot_id,omitempty"`
	Slot      *Slot  `json:"slot,omitempty"`
}

// Payment is a payment attempt against a booking. Only PaymentStatusPaid
// payments on confirmed bookings count as realized revenue.
type Payment struct {
	ID        int64      `json:"id"`
	Method    *string    `json:"method,omitempty"`
	Amount    int64      `json:"amount"`
	Status    int        `json:"status"`
	Date      *time.Time `json:"date,omitempty"`
	BookingID *int64     `json:"booking_id,omitempty"`
}

// Booking is one reservation of a field on a calendar date, together with its
// nested payment/slot/field/user data as fetched for a report snapshot.
type Booking struct {
	ID        int64         `json:"id"`
	Date      *time.Time    `json:"date,omitempty"`       // calendar date, no time-of-day
	CreatedAt *time.Time    `json:"created_at,omitempty"` // when the booking was placed
	Rating    *int          `json:"rating,omitempty"`     // 1-5
	Feedback  *string       `json:"feedback,omitempty"`
	Status    int           `json:"status"`
	UserID    *int64        `json:"user_id,omitempty"`
	FieldID   *int64        `json:"field_id,omitempty"`
	User      *User         `json:"user,omitempty"`
	Field     *Field        `json:"field,omitempty"`
	Payments  []Payment     `json:"payments,omitempty"`
	Slots     []BookingSlot `json:"slots,omitempty"`
}
