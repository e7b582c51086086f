package domain

import "time"

// Place is a rental listing. Photos keeps upload order; Perks is an
// unordered set of feature tags.
type Place struct {
	ID          int64
	OwnerID     int64
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
