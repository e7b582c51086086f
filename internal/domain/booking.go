package domain

import "time"

// Booking records a stay reserved by a user at a place. Place is a
// read-time expansion populated by the booking service; it is nil when
// the referenced listing no longer exists.
type Booking struct {
	ID             int64
	PlaceID        int64
	UserID         int64
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Name           string
	Phone          string
	Price          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Place          *Place
}
