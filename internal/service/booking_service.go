package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-api/internal/domain"
	"rental-api/internal/repository"
)

// BookingInput carries the client-editable fields of a booking. The
// booking user always comes from the authenticated identity.
type BookingInput struct {
	PlaceID        int64
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Name           string
	Phone          string
	Price          int
}

// BookingService creates bookings and lists them scoped to their owner.
type BookingService interface {
	Create(ctx context.Context, userID int64, input BookingInput) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	places   repository.PlaceRepository
}

func NewBookingService(bookings repository.BookingRepository, places repository.PlaceRepository) BookingService {
	return &bookingService{
		bookings: bookings,
		places:   places,
	}
}

func (s *bookingService) Create(ctx context.Context, userID int64, input BookingInput) (*domain.Booking, error) {
	if input.PlaceID <= 0 {
		return nil, fmt.Errorf("%w: place is required", ErrValidation)
	}
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return nil, fmt.Errorf("%w: check-in and check-out are required", ErrValidation)
	}
	if !input.CheckOut.After(input.CheckIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}
	if input.NumberOfGuests < 1 {
		return nil, fmt.Errorf("%w: number of guests must be at least 1", ErrValidation)
	}

	place, err := s.places.Get(ctx, input.PlaceID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PlaceID:        place.ID,
		UserID:         userID,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		NumberOfGuests: input.NumberOfGuests,
		Name:           input.Name,
		Phone:          input.Phone,
		Price:          input.Price,
	}

	if _, err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Place = place
	return booking, nil
}

// ListByUser returns the caller's bookings with each referenced place
// expanded. The user filter is applied in the repository query, never on
// the client side.
func (s *bookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		place, err := s.places.Get(ctx, bookings[i].PlaceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		bookings[i].Place = place
	}
	return bookings, nil
}
