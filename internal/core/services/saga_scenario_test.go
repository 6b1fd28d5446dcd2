package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports/mocks"
	"github.com/srgjo27/scalable_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	clock     *testClock
	inventory *services.SeatInventoryService
	bookings  *services.BookingService
	payments  *mocks.PaymentGateway
	saga      *services.BookingOrchestrator
	showID    uuid.UUID
	tenantID  uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := &testClock{now: fixedNow}
	catalog := memory.NewSeatCatalog()
	tenantID := uuid.New()
	screen := catalog.SeedScreen(tenantID, 4, 10)

	inventory := services.NewSeatInventoryService(memory.NewShowSeatRepository(catalog), catalog, nil, nil, services.WithClock(clock.Now))
	bookings := services.NewBookingService(memory.NewBookingRepository(), inventory, nil, services.WithClock(clock.Now))
	payments := mocks.NewPaymentGateway(t)

	partner := domain.Identity{UserID: uuid.New(), TenantID: &tenantID, Roles: []string{domain.RoleTheatreManager}}
	showID := uuid.New()
	require.NoError(t, inventory.RegisterShow(context.Background(), partner, showID, screen.ID))

	return &harness{
		clock:     clock,
		inventory: inventory,
		bookings:  bookings,
		payments:  payments,
		saga:      services.NewBookingOrchestrator(bookings, payments, nil),
		showID:    showID,
		tenantID:  tenantID,
	}
}

func (h *harness) request(seats ...string) domain.CreateBookingRequest {
	ttl := 15
	return domain.CreateBookingRequest{ShowID: h.showID, TenantID: h.tenantID, Seats: seats, TTLMinutes: &ttl}
}

func (h *harness) seatStatus(t *testing.T) map[string]domain.SeatStatus {
	t.Helper()
	seats, err := h.inventory.GetAvailability(context.Background(), h.showID)
	require.NoError(t, err)

	out := make(map[string]domain.SeatStatus, len(seats))
	for _, s := range seats {
		out[s.Label] = s.Status
	}
	return out
}

func TestScenario_ReserveThenConfirm(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := customer()

	h.payments.On("CreatePayment", ctx, id, mock.AnythingOfType("uuid.UUID"), 100.0, "USD").Return("pay-1", nil)

	reserved, err := h.saga.Reserve(ctx, id, h.request("A1", "A2"), 100, "USD")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingReserved, reserved.Booking.Status)
	assert.Equal(t, fixedNow.Add(15*time.Minute), *reserved.Booking.ReservedUntil)

	seats := h.seatStatus(t)
	assert.Equal(t, domain.SeatLocked, seats["A1"])
	assert.Equal(t, domain.SeatLocked, seats["A2"])
	assert.Equal(t, domain.SeatAvailable, seats["A3"])

	h.payments.On("GetPaymentStatus", ctx, id, "pay-1").Return(domain.PaymentPending, nil)
	h.payments.On("ConfirmPayment", ctx, id, "pay-1", "").Return(nil)

	confirmed, err := h.saga.ConfirmPaymentAndBooking(ctx, id, reserved.Booking.ID, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, confirmed.Status)
	assert.Nil(t, confirmed.ReservedUntil)

	seats = h.seatStatus(t)
	assert.Equal(t, domain.SeatBooked, seats["A1"])
	assert.Equal(t, domain.SeatBooked, seats["A2"])

	err = h.inventory.LockSeats(ctx, h.showID, uuid.New(), []string{"A1"}, 10)
	assert.ErrorIs(t, err, domain.ErrSeatsNotAvailable)
}

func TestScenario_PaymentUnavailableCancelsAndFreesSeats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := customer()

	h.payments.On("CreatePayment", ctx, id, mock.AnythingOfType("uuid.UUID"), 100.0, "USD").
		Return("", domain.ErrPaymentServiceUnavailable)

	_, err := h.saga.Reserve(ctx, id, h.request("A1", "A2"), 100, "USD")
	assert.ErrorIs(t, err, domain.ErrPaymentServiceUnavailable)

	list, err := h.bookings.ListForUser(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.BookingCancelled, list[0].Status)

	seats := h.seatStatus(t)
	assert.Equal(t, domain.SeatAvailable, seats["A1"])
	assert.Equal(t, domain.SeatAvailable, seats["A2"])
}

func TestScenario_FailedPaymentCancelsBooking(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := customer()

	h.payments.On("CreatePayment", ctx, id, mock.AnythingOfType("uuid.UUID"), 100.0, "USD").Return("pay-7", nil)
	h.payments.On("GetPaymentStatus", ctx, id, "pay-7").Return(domain.PaymentFailed, nil)

	reserved, err := h.saga.Reserve(ctx, id, h.request("B1"), 100, "USD")
	require.NoError(t, err)

	_, err = h.saga.ConfirmPaymentAndBooking(ctx, id, reserved.Booking.ID, "pay-7")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "FAILED")

	booking, err := h.bookings.Get(ctx, id, reserved.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, booking.Status)
	assert.Equal(t, domain.SeatAvailable, h.seatStatus(t)["B1"])
}

func TestScenario_BulkCancelMixedOwnership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	me := customer()
	other := customer()

	mine, err := h.bookings.Create(ctx, me, h.request("C1"))
	require.NoError(t, err)
	theirs, err := h.bookings.Create(ctx, other, h.request("C2"))
	require.NoError(t, err)
	missing := uuid.New()

	result := h.bookings.BulkCancel(ctx, me, []uuid.UUID{mine.ID, theirs.ID, missing})

	assert.Equal(t, []uuid.UUID{mine.ID}, result.CancelledIDs)
	assert.Equal(t, []uuid.UUID{theirs.ID, missing}, result.FailedIDs)
	require.Len(t, result.Errors, 2)
	assert.NotEqual(t, result.Errors[theirs.ID.String()], result.Errors[missing.String()])

	seats := h.seatStatus(t)
	assert.Equal(t, domain.SeatAvailable, seats["C1"])
	assert.Equal(t, domain.SeatLocked, seats["C2"])
}

func TestConcurrentLocks_EachSeatHasOneWinner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	const callers = 16
	unique := []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "B1", "B2", "B3", "B4", "B5", "B6"}

	type outcome struct {
		bookingID uuid.UUID
		err       error
	}
	results := make([]outcome, callers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bookingID := uuid.New()
			<-start
			err := h.inventory.LockSeats(ctx, h.showID, bookingID, []string{"C5", unique[i]}, 10)
			results[i] = outcome{bookingID: bookingID, err: err}
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, r := range results {
		if r.err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, r.err, domain.ErrSeatsNotAvailable)
	}
	assert.Equal(t, 1, winners)

	locked := 0
	for label, status := range h.seatStatus(t) {
		if status == domain.SeatLocked {
			locked++
			continue
		}
		assert.Equal(t, domain.SeatAvailable, status, label)
	}
	assert.Equal(t, 2, locked, "only the winner's two seats may be held")
}

func TestLockRelease_RoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	bookingID := uuid.New()

	require.NoError(t, h.inventory.LockSeats(ctx, h.showID, bookingID, []string{"A1", "A2"}, 10))
	require.NoError(t, h.inventory.ReleaseSeats(ctx, h.showID, bookingID))
	require.NoError(t, h.inventory.ReleaseSeats(ctx, h.showID, bookingID))

	seats := h.seatStatus(t)
	assert.Equal(t, domain.SeatAvailable, seats["A1"])
	assert.Equal(t, domain.SeatAvailable, seats["A2"])
}

func TestLock_RetryBySameBookingRefreshesHold(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	bookingID := uuid.New()

	require.NoError(t, h.inventory.LockSeats(ctx, h.showID, bookingID, []string{"A1"}, 10))
	require.NoError(t, h.inventory.LockSeats(ctx, h.showID, bookingID, []string{"A1"}, 10))
	assert.ErrorIs(t, h.inventory.LockSeats(ctx, h.showID, uuid.New(), []string{"A1"}, 10), domain.ErrSeatsNotAvailable)
}

func TestLockTTL_ExactDeadlineFreesSeat(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.inventory.LockSeats(ctx, h.showID, uuid.New(), []string{"A1"}, 1))

	h.clock.Advance(time.Minute - time.Nanosecond)
	assert.ErrorIs(t, h.inventory.LockSeats(ctx, h.showID, uuid.New(), []string{"A1"}, 1), domain.ErrSeatsNotAvailable)

	h.clock.Advance(time.Nanosecond)
	assert.NoError(t, h.inventory.LockSeats(ctx, h.showID, uuid.New(), []string{"A1"}, 1))
}

func TestBookingTTL_ExactDeadlineExpiresOnRead(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := customer()
	ttl := 1

	booking, err := h.bookings.Create(ctx, id, domain.CreateBookingRequest{
		ShowID: h.showID, TenantID: h.tenantID, Seats: []string{"D1"}, TTLMinutes: &ttl,
	})
	require.NoError(t, err)

	h.clock.Advance(time.Minute)

	got, err := h.bookings.Get(ctx, id, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingExpired, got.Status)
	assert.Nil(t, got.ReservedUntil)
	assert.Equal(t, domain.SeatAvailable, h.seatStatus(t)["D1"])

	_, err = h.bookings.Confirm(ctx, id, booking.ID)
	assert.True(t, domain.IsInvalidState(err))
}

func TestCreate_SeatConflictDeletesBooking(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := customer()

	_, err := h.bookings.Create(ctx, customer(), h.request("A1"))
	require.NoError(t, err)

	_, err = h.bookings.Create(ctx, id, h.request("A1", "A2"))
	assert.ErrorIs(t, err, domain.ErrSeatsNotAvailable)

	list, err := h.bookings.ListForUser(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, domain.SeatAvailable, h.seatStatus(t)["A2"])
}
