package repository

import (
	"context"

	"rental-api/internal/domain"
)

// BookingRepository exposes persistence operations for Booking entities.
// Bookings are append-only: no update or delete is exposed.
type BookingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, booking *domain.Booking) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}
