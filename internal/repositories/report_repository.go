package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fieldbook_backend/internal/models"

	"github.com/lib/pq"
)

// ReportRepository defines the read-only snapshot fetches the reporting engine
// runs on. A snapshot is every booking of an owner's fields inside a date
// range, with payments, slots, field/venue and customer data attached.
type ReportRepository interface {
	GetOwnerFields(ctx context.Context, ownerID int64) ([]models.Field, error)
	FetchOwnerBookings(ctx context.Context, ownerID int64, start, end time.Time) ([]models.Booking, error)
	CountOwnerUsers(ctx context.Context, ownerID int64) (int, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// GetOwnerFields returns every field of every venue owned by ownerID,
// including hidden and maintenance fields.
func (r *reportRepository) GetOwnerFields(ctx context.Context, ownerID int64) ([]models.Field, error) {
	query := `
		SELECT f.id, f.name, f.status, f.venue_id,
		       v.id, v.name, v.address, v.user_id
		FROM fields f
		JOIN venues v ON f.venue_id = v.id
		WHERE v.user_id = $1
		ORDER BY f.id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying owner fields: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var fields []models.Field
	for rows.Next() {
		var f models.Field
		var v models.Venue
		var address sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &f.Status, &f.VenueID,
			&v.ID, &v.Name, &address, &v.OwnerID); err != nil {
			return nil, fmt.Errorf("%w: scanning field row: %v", ErrDatabaseError, err)
		}
		if address.Valid {
			v.Address = &address.String
		}
		f.Venue = &v
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating field rows: %v", ErrDatabaseError, err)
	}
	return fields, nil
}

// FetchOwnerBookings loads the report snapshot: all bookings of the owner's
// fields with booking date in [start, end], with payments and slots attached.
// Three queries total regardless of snapshot size.
func (r *reportRepository) FetchOwnerBookings(ctx context.Context, ownerID int64, start, end time.Time) ([]models.Booking, error) {
	bookings, err := r.fetchBookingRows(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}

	index := make(map[int64]*models.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for i := range bookings {
		index[bookings[i].ID] = &bookings[i]
		ids = append(ids, bookings[i].ID)
	}

	if err := r.attachPayments(ctx, index, ids); err != nil {
		return nil, err
	}
	if err := r.attachSlots(ctx, index, ids); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *reportRepository) fetchBookingRows(ctx context.Context, ownerID int64, start, end time.Time) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.date, b.created_at, b.rating, b.feedback, b.status,
		       b.user_id, b.field_id,
		       f.id, f.name, f.status, f.venue_id,
		       v.id, v.name, v.address, v.user_id,
		       u.id, u.name, u.email
		FROM bookings b
		JOIN fields f ON b.field_id = f.id
		JOIN venues v ON f.venue_id = v.id
		LEFT JOIN users u ON b.user_id = u.id
		WHERE v.user_id = $1 AND b.date BETWEEN $2 AND $3
		ORDER BY b.date, b.id`

	rows, err := r.db.QueryContext(ctx, query, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying owner bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanSnapshotBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, nil
}

// scanSnapshotBooking scans one joined booking row including its field, venue
// and (optional) customer.
func scanSnapshotBooking(row scanner) (*models.Booking, error) {
	var b models.Booking
	var f models.Field
	var v models.Venue
	var u models.User

	var rating sql.NullInt32
	var feedback, venueAddress sql.NullString
	var userID, userRowID sql.NullInt64
	var userName, userEmail sql.NullString

	err := row.Scan(
		&b.ID, &b.Date, &b.CreatedAt, &rating, &feedback, &b.Status,
		&userID, &b.FieldID,
		&f.ID, &f.Name, &f.Status, &f.VenueID,
		&v.ID, &v.Name, &venueAddress, &v.OwnerID,
		&userRowID, &userName, &userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanning booking row: %v", ErrDatabaseError, err)
	}

	if rating.Valid {
		rv := int(rating.Int32)
		b.Rating = &rv
	}
	if feedback.Valid {
		b.Feedback = &feedback.String
	}
	if userID.Valid {
		b.UserID = &userID.Int64
	}
	if venueAddress.Valid {
		v.Address = &venueAddress.String
	}
	f.Venue = &v
	b.Field = &f

	if userRowID.Valid {
		u.ID = userRowID.Int64
		u.Name = userName.String
		if userEmail.Valid {
			u.Email = &userEmail.String
		}
		b.User = &u
	}
	return &b, nil
}

func (r *reportRepository) attachPayments(ctx context.Context, index map[int64]*models.Booking, ids []int64) error {
	query := `
		SELECT p.id, p.method, p.amount, p.status, p.date, p.booking_id
		FROM payments p
		WHERE p.booking_id = ANY($1)
		ORDER BY p.booking_id, p.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("%w: querying booking payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		var method sql.NullString
		var bookingID sql.NullInt64
		if err := rows.Scan(&p.ID, &method, &p.Amount, &p.Status, &p.Date, &bookingID); err != nil {
			return fmt.Errorf("%w: scanning payment row: %v", ErrDatabaseError, err)
		}
		if method.Valid {
			p.Method = &method.String
		}
		if !bookingID.Valid {
			continue
		}
		p.BookingID = &bookingID.Int64
		if b, ok := index[bookingID.Int64]; ok {
			b.Payments = append(b.Payments, p)
		}
	}
	return rows.Err()
}

func (r *reportRepository) attachSlots(ctx context.Context, index map[int64]*models.Booking, ids []int64) error {
	query := `
		SELECT bs.id, bs.booking_id, bs.slot_id,
		       s.id, s.name, s.start_time, s.end_time, s.price, s.field_id
		FROM booking_slots bs
		JOIN slots s ON bs.slot_id = s.id
		WHERE bs.booking_id = ANY($1)
		ORDER BY bs.booking_id, s.start_time`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("%w: querying booking slots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bs models.BookingSlot
		var s models.Slot
		var bookingID, slotID sql.NullInt64
		var price sql.NullInt64
		if err := rows.Scan(&bs.ID, &bookingID, &slotID,
			&s.ID, &s.Name, &s.StartTime, &s.EndTime, &price, &s.FieldID); err != nil {
			return fmt.Errorf("%w: scanning booking slot row: %v", ErrDatabaseError, err)
		}
		if price.Valid {
			s.Price = &price.Int64
		}
		if slotID.Valid {
			bs.SlotID = &slotID.Int64
		}
		bs.Slot = &s
		if !bookingID.Valid {
			continue
		}
		bs.BookingID = &bookingID.Int64
		if b, ok := index[bookingID.Int64]; ok {
			b.Slots = append(b.Slots, bs)
		}
	}
	return rows.Err()
}

// CountOwnerUsers returns the number of distinct customers who have ever
// booked one of the owner's fields.
func (r *reportRepository) CountOwnerUsers(ctx context.Context, ownerID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT b.user_id)
		FROM bookings b
		JOIN fields f ON b.field_id = f.id
		JOIN venues v ON f.venue_id = v.id
		WHERE v.user_id = $1 AND b.user_id IS NOT NULL`

	var count int
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting owner users: %v", ErrDatabaseError, err)
	}
	return count, nil
}
