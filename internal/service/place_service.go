package service

import (
	"context"
	"fmt"
	"strings"

	"rental-api/internal/domain"
	"rental-api/internal/repository"
)

// PlaceInput carries the client-editable fields of a listing. Owner and
// id are deliberately absent; they come from the authenticated identity
// and the URL/update target respectively.
type PlaceInput struct {
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
}

// PlaceService coordinates listing operations and enforces owner-only
// mutation.
type PlaceService interface {
	Create(ctx context.Context, ownerID int64, input PlaceInput) (*domain.Place, error)
	Update(ctx context.Context, callerID, placeID int64, input PlaceInput) (*domain.Place, error)
	Get(ctx context.Context, id int64) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
}

type placeService struct {
	places repository.PlaceRepository
}

func NewPlaceService(places repository.PlaceRepository) PlaceService {
	return &placeService{places: places}
}

func (s *placeService) Create(ctx context.Context, ownerID int64, input PlaceInput) (*domain.Place, error) {
	if err := validatePlaceInput(input); err != nil {
		return nil, err
	}

	place := &domain.Place{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Address:     strings.TrimSpace(input.Address),
		Photos:      input.Photos,
		Description: input.Description,
		Perks:       input.Perks,
		ExtraInfo:   input.ExtraInfo,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		MaxGuests:   input.MaxGuests,
		Price:       input.Price,
	}

	if _, err := s.places.Create(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// Update loads the listing, checks ownership, then rewrites the mutable
// fields. The owner comparison and the write are not interleaved with
// any ownership-transfer operation because none exists.
func (s *placeService) Update(ctx context.Context, callerID, placeID int64, input PlaceInput) (*domain.Place, error) {
	if err := validatePlaceInput(input); err != nil {
		return nil, err
	}

	place, err := s.places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.OwnerID != callerID {
		return nil, ErrForbidden
	}

	place.Title = strings.TrimSpace(input.Title)
	place.Address = strings.TrimSpace(input.Address)
	place.Photos = input.Photos
	place.Description = input.Description
	place.Perks = input.Perks
	place.ExtraInfo = input.ExtraInfo
	place.CheckIn = input.CheckIn
	place.CheckOut = input.CheckOut
	place.MaxGuests = input.MaxGuests
	place.Price = input.Price

	if err := s.places.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *placeService) Get(ctx context.Context, id int64) (*domain.Place, error) {
	return s.places.Get(ctx, id)
}

func (s *placeService) List(ctx context.Context) ([]domain.Place, error) {
	return s.places.List(ctx)
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	return s.places.ListByOwner(ctx, ownerID)
}

func validatePlaceInput(input PlaceInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.MaxGuests < 1 {
		return fmt.Errorf("%w: max guests must be at least 1", ErrValidation)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
