package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rental-api/internal/repository"
	"rental-api/internal/repository/sqlite"
)

type testRepos struct {
	users    repository.UserRepository
	places   repository.PlaceRepository
	bookings repository.BookingRepository
}

func openTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := testRepos{
		users:    sqlite.NewUserRepository(db),
		places:   sqlite.NewPlaceRepository(db),
		bookings: sqlite.NewBookingRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.places.Init(ctx))
	require.NoError(t, repos.bookings.Init(ctx))
	return repos
}
