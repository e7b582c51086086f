package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-api/internal/domain"
	"rental-api/internal/repository"
)

const createPlacesTable = `
CREATE TABLE IF NOT EXISTS places (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	photos TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	perks TEXT NOT NULL DEFAULT '[]',
	extra_info TEXT NOT NULL DEFAULT '',
	check_in TEXT NOT NULL DEFAULT '',
	check_out TEXT NOT NULL DEFAULT '',
	max_guests INTEGER NOT NULL DEFAULT 1,
	price INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_places_owner ON places(owner_id);
`

type PlaceRepository struct {
	db *sql.DB
}

func NewPlaceRepository(db *sql.DB) repository.PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPlacesTable); err != nil {
		return fmt.Errorf("create places table: %w", err)
	}
	return nil
}

func (r *PlaceRepository) Create(ctx context.Context, place *domain.Place) (int64, error) {
	now := time.Now().UTC()
	place.CreatedAt = now
	place.UpdatedAt = now

	photos, perks, err := encodeLists(place)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO places (owner_id, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		place.OwnerID,
		place.Title,
		place.Address,
		photos,
		place.Description,
		perks,
		place.ExtraInfo,
		place.CheckIn,
		place.CheckOut,
		place.MaxGuests,
		place.Price,
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert place: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("place last insert id: %w", err)
	}
	place.ID = id
	return id, nil
}

// Update rewrites all mutable columns. owner_id is intentionally absent
// from the SET list.
func (r *PlaceRepository) Update(ctx context.Context, place *domain.Place) error {
	photos, perks, err := encodeLists(place)
	if err != nil {
		return err
	}
	place.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE places
SET title = ?, address = ?, photos = ?, description = ?, perks = ?, extra_info = ?, check_in = ?, check_out = ?, max_guests = ?, price = ?, updated_at = ?
WHERE id = ?`,
		place.Title,
		place.Address,
		photos,
		place.Description,
		perks,
		place.ExtraInfo,
		place.CheckIn,
		place.CheckOut,
		place.MaxGuests,
		place.Price,
		place.UpdatedAt,
		place.ID,
	)
	if err != nil {
		return fmt.Errorf("update place: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update place rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlaceRepository) Get(ctx context.Context, id int64) (*domain.Place, error) {
	row := r.db.QueryRowContext(ctx, selectPlaceColumns+` WHERE id = ?`, id)
	place, err := scanPlace(row)
	if err != nil {
		return nil, err
	}
	return place, nil
}

func (r *PlaceRepository) List(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, selectPlaceColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()
	return collectPlaces(rows)
}

func (r *PlaceRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, selectPlaceColumns+` WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list places by owner: %w", err)
	}
	defer rows.Close()
	return collectPlaces(rows)
}

const selectPlaceColumns = `
SELECT id, owner_id, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price, created_at, updated_at
FROM places`

func encodeLists(place *domain.Place) (photos, perks string, err error) {
	if place.Photos == nil {
		place.Photos = []string{}
	}
	if place.Perks == nil {
		place.Perks = []string{}
	}
	photosJSON, err := json.Marshal(place.Photos)
	if err != nil {
		return "", "", fmt.Errorf("encode photos: %w", err)
	}
	perksJSON, err := json.Marshal(place.Perks)
	if err != nil {
		return "", "", fmt.Errorf("encode perks: %w", err)
	}
	return string(photosJSON), string(perksJSON), nil
}

func scanPlace(row interface {
	Scan(dest ...any) error
}) (*domain.Place, error) {
	var (
		place  domain.Place
		photos string
		perks  string
	)
	if err := row.Scan(
		&place.ID,
		&place.OwnerID,
		&place.Title,
		&place.Address,
		&photos,
		&place.Description,
		&perks,
		&place.ExtraInfo,
		&place.CheckIn,
		&place.CheckOut,
		&place.MaxGuests,
		&place.Price,
		&place.CreatedAt,
		&place.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan place: %w", err)
	}
	if err := json.Unmarshal([]byte(photos), &place.Photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	if err := json.Unmarshal([]byte(perks), &place.Perks); err != nil {
		return nil, fmt.Errorf("decode perks: %w", err)
	}
	return &place, nil
}

func collectPlaces(rows *sql.Rows) ([]domain.Place, error) {
	var places []domain.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate places: %w", err)
	}
	return places, nil
}
