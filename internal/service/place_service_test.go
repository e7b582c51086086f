package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-api/internal/domain"
	"rental-api/internal/repository"
)

func registerTestUser(t *testing.T, repos testRepos, email string) int64 {
	t.Helper()
	id, err := repos.users.Create(context.Background(), &domain.User{
		Name:         "user",
		Email:        email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return id
}

func testPlaceInput(title string) PlaceInput {
	return PlaceInput{
		Title:     title,
		Address:   "1 Forest Rd",
		Photos:    []string{"photo-a.jpg"},
		Perks:     []string{"wifi"},
		CheckIn:   "14:00",
		CheckOut:  "11:00",
		MaxGuests: 2,
		Price:     100,
	}
}

func TestPlaceService_CreateSetsOwnerFromIdentity(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepos(t)
	svc := NewPlaceService(repos.places)
	owner := registerTestUser(t, repos, "owner@x.com")

	place, err := svc.Create(ctx, owner, testPlaceInput("Cabin"))
	require.NoError(t, err)
	assert.Equal(t, owner, place.OwnerID)

	stored, err := repos.places.Get(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, stored.OwnerID)
}

func TestPlaceService_UpdateByOwner(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepos(t)
	svc := NewPlaceService(repos.places)
	owner := registerTestUser(t, repos, "owner@x.com")

	place, err := svc.Create(ctx, owner, testPlaceInput("Cabin"))
	require.NoError(t, err)

	input := testPlaceInput("Lake cabin")
	input.Price = 150
	updated, err := svc.Update(ctx, owner, place.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Lake cabin", updated.Title)
	assert.Equal(t, 150, updated.Price)
	assert.Equal(t, owner, updated.OwnerID)
}

func TestPlaceService_UpdateByNonOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepos(t)
	svc := NewPlaceService(repos.places)
	owner := registerTestUser(t, repos, "owner@x.com")
	intruder := registerTestUser(t, repos, "intruder@x.com")

	place, err := svc.Create(ctx, owner, testPlaceInput("Cabin"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, intruder, place.ID, testPlaceInput("Stolen"))
	assert.ErrorIs(t, err, ErrForbidden)

	// unchanged
	stored, err := repos.places.Get(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cabin", stored.Title)
	assert.Equal(t, owner, stored.OwnerID)
}

func TestPlaceService_UpdateMissingPlace(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepos(t)
	svc := NewPlaceService(repos.places)
	owner := registerTestUser(t, repos, "owner@x.com")

	_, err := svc.Update(ctx, owner, 4242, testPlaceInput("Ghost"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaceService_Validation(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepos(t)
	svc := NewPlaceService(repos.places)
	owner := registerTestUser(t, repos, "owner@x.com")

	tests := []struct {
		name   string
		mutate func(*PlaceInput)
	}{
		{name: "empty title", mutate: func(in *PlaceInput) { in.Title = "  " }},
		{name: "zero guests", mutate: func(in *PlaceInput) { in.MaxGuests = 0 }},
		{name: "negative price", mutate: func(in *PlaceInput) { in.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testPlaceInput("Cabin")
			tt.mutate(&input)
			_, err := svc.Create(ctx, owner, input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
