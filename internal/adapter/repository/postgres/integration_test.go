//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/platform/database"
)

// Run with: BOOKING_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/adapter/repository/postgres/
func openIntegrationDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("BOOKING_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BOOKING_TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, database.Migrate(ctx, db))
	return db
}

func seedShow(t *testing.T, db *sql.DB, labels ...string) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	screenID := uuid.New()
	_, err := db.ExecContext(ctx, `INSERT INTO screens (id, theatre_id, tenant_id) VALUES ($1, $2, $3)`, screenID, uuid.New(), uuid.New())
	require.NoError(t, err)

	seatIDs := make([]uuid.UUID, 0, len(labels))
	for i, label := range labels {
		id := uuid.New()
		_, err := db.ExecContext(ctx,
			`INSERT INTO seats (id, screen_id, row_label, seat_number, label) VALUES ($1, $2, $3, $4, $5)`,
			id, screenID, label[:1], i+1, label)
		require.NoError(t, err)
		seatIDs = append(seatIDs, id)
	}

	showID := uuid.New()
	require.NoError(t, NewShowSeatRepository(db).RegisterShow(ctx, showID, screenID, seatIDs))
	return showID, screenID
}

func TestIntegration_ConcurrentLocksHaveOneWinner(t *testing.T) {
	db := openIntegrationDB(t)
	showID, screenID := seedShow(t, db, "A1", "A2", "A3")
	ctx := context.Background()

	seats, err := NewSeatCatalog(db).SeatsByLabels(ctx, screenID, []string{"A1", "A2"})
	require.NoError(t, err)
	require.Len(t, seats, 2)
	seatIDs := []uuid.UUID{seats[0].ID, seats[1].ID}

	repo := NewShowSeatRepository(db)
	now := time.Now()

	const contenders = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []uuid.UUID
		conflicts int
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bookingID := uuid.New()
			err := repo.LockSeats(ctx, showID, bookingID, seatIDs, now, now.Add(10*time.Minute))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, bookingID)
			case errors.Is(err, domain.ErrSeatsNotAvailable):
				conflicts++
			default:
				t.Errorf("unexpected lock error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, contenders-1, conflicts)

	rows, err := repo.ListByShow(ctx, showID)
	require.NoError(t, err)
	for _, row := range rows {
		if row.Label == "A3" {
			assert.Equal(t, domain.SeatAvailable, row.Status)
			continue
		}
		assert.Equal(t, domain.SeatLocked, row.Status)
		require.NotNil(t, row.LockedByBookingID)
		assert.Equal(t, winners[0], *row.LockedByBookingID)
	}
}

func TestIntegration_BookingUpdateIsCompareAndSet(t *testing.T) {
	db := openIntegrationDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := sampleBooking()
	require.NoError(t, repo.Create(ctx, b))

	results := make(chan error, 2)
	for _, next := range []func(*domain.Booking){(*domain.Booking).Confirm, (*domain.Booking).Cancel} {
		moved := *b
		next(&moved)
		go func() { results <- repo.Update(ctx, &moved, domain.BookingReserved) }()
	}

	var won, lost int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrBookingStateChanged):
			lost++
		default:
			t.Errorf("unexpected update error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
}
