package repository

import (
	"context"

	"rental-api/internal/domain"
)

// PlaceRepository exposes persistence operations for Place listings.
type PlaceRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, place *domain.Place) (int64, error)
	// Update rewrites every mutable field of the listing. OwnerID is
	// never touched.
	Update(ctx context.Context, place *domain.Place) error
	Get(ctx context.Context, id int64) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
}
