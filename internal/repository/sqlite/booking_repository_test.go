package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-api/internal/domain"
)

func TestBookingRepository_CreateAndListByUser(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	places := NewPlaceRepository(db)
	bookings := NewBookingRepository(db)

	alice := createTestUser(t, db, "alice@x.com")
	bob := createTestUser(t, db, "bob@x.com")

	place := &domain.Place{OwnerID: alice, Title: "Cabin", MaxGuests: 2}
	_, err := places.Create(ctx, place)
	require.NoError(t, err)

	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	for _, b := range []*domain.Booking{
		{PlaceID: place.ID, UserID: alice, CheckIn: checkIn, CheckOut: checkOut, NumberOfGuests: 2, Name: "Alice", Phone: "123", Price: 360},
		{PlaceID: place.ID, UserID: bob, CheckIn: checkIn, CheckOut: checkOut, NumberOfGuests: 1, Name: "Bob", Phone: "456", Price: 360},
	} {
		_, err := bookings.Create(ctx, b)
		require.NoError(t, err)
	}

	mine, err := bookings.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice, mine[0].UserID)
	assert.Equal(t, "Alice", mine[0].Name)
	assert.True(t, mine[0].CheckIn.Equal(checkIn))
	assert.True(t, mine[0].CheckOut.Equal(checkOut))

	none, err := bookings.ListByUser(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
