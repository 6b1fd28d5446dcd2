package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

func TestBookingRepository_Lifecycle(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	until := time.Now().Add(time.Minute)

	b := &domain.Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Seats:         []string{"A1"},
		Status:        domain.BookingReserved,
		ReservedUntil: &until,
	}

	require.NoError(t, repo.Create(ctx, b))
	assert.ErrorIs(t, repo.Create(ctx, b), domain.ErrConflict)

	b.Seats[0] = "Z9"
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, got.Seats)

	got.Confirm()
	require.NoError(t, repo.Update(ctx, got, domain.BookingReserved))

	stale := *got
	stale.Cancel()
	assert.ErrorIs(t, repo.Update(ctx, &stale, domain.BookingReserved), domain.ErrBookingStateChanged)

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Nil(t, got.ReservedUntil)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.ErrorIs(t, repo.Update(ctx, got, domain.BookingConfirmed), domain.ErrBookingNotFound)
}

func TestBookingRepository_ListByUser_NewestFirst(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	owner := uuid.New()
	base := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Booking{
			ID:        uuid.New(),
			UserID:    owner,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Booking{ID: uuid.New(), UserID: uuid.New()}))

	list, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.True(t, list[1].CreatedAt.After(list[2].CreatedAt))
}
