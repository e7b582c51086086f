package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rental-api/internal/domain"
	"rental-api/internal/repository"
)

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	place_id INTEGER NOT NULL REFERENCES places(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	check_in DATETIME NOT NULL,
	check_out DATETIME NOT NULL,
	number_of_guests INTEGER NOT NULL DEFAULT 1,
	name TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	price INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (int64, error) {
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO bookings (place_id, user_id, check_in, check_out, number_of_guests, name, phone, price, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.PlaceID,
		booking.UserID,
		booking.CheckIn,
		booking.CheckOut,
		booking.NumberOfGuests,
		booking.Name,
		booking.Phone,
		booking.Price,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("booking last insert id: %w", err)
	}
	booking.ID = id
	return id, nil
}

// ListByUser returns only rows whose user_id matches; callers never see
// other users' bookings.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, place_id, user_id, check_in, check_out, number_of_guests, name, phone, price, created_at, updated_at
FROM bookings
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.PlaceID,
			&booking.UserID,
			&booking.CheckIn,
			&booking.CheckOut,
			&booking.NumberOfGuests,
			&booking.Name,
			&booking.Phone,
			&booking.Price,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}
