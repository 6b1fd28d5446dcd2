package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBooking_IsExpiredAt_InclusiveBoundary(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	deadline := now

	b := &domain.Booking{Status: domain.BookingReserved, ReservedUntil: &deadline}

	assert.True(t, b.IsExpiredAt(now))
	assert.False(t, b.IsExpiredAt(now.Add(-time.Nanosecond)))
}

func TestBooking_IsExpiredAt_OnlyReserved(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	b := &domain.Booking{Status: domain.BookingConfirmed, ReservedUntil: &past}
	assert.False(t, b.IsExpiredAt(now))
}

func TestBooking_Transitions_ClearReservedUntil(t *testing.T) {
	until := time.Now().Add(time.Minute)

	for name, apply := range map[string]func(*domain.Booking){
		"confirm": (*domain.Booking).Confirm,
		"cancel":  (*domain.Booking).Cancel,
		"expire":  (*domain.Booking).Expire,
	} {
		b := &domain.Booking{Status: domain.BookingReserved, ReservedUntil: &until}
		apply(b)
		assert.Nil(t, b.ReservedUntil, name)
	}
}

func TestBooking_CanCancel(t *testing.T) {
	assert.True(t, (&domain.Booking{Status: domain.BookingReserved}).CanCancel())
	assert.True(t, (&domain.Booking{Status: domain.BookingConfirmed}).CanCancel())
	assert.False(t, (&domain.Booking{Status: domain.BookingCancelled}).CanCancel())
	assert.False(t, (&domain.Booking{Status: domain.BookingExpired}).CanCancel())
}

func TestShowSeat_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	exact := now
	future := now.Add(time.Second)

	expired := &domain.ShowSeat{Status: domain.SeatLocked, LockedUntil: &exact}
	held := &domain.ShowSeat{Status: domain.SeatLocked, LockedUntil: &future}
	booked := &domain.ShowSeat{Status: domain.SeatBooked}

	assert.Equal(t, domain.SeatAvailable, expired.EffectiveStatus(now))
	assert.Equal(t, domain.SeatLocked, held.EffectiveStatus(now))
	assert.Equal(t, domain.SeatBooked, booked.EffectiveStatus(now))
}

func TestClampLockTTL(t *testing.T) {
	v := func(n int) *int { return &n }

	assert.Equal(t, 15, domain.ClampLockTTL(nil, 15))
	assert.Equal(t, 1, domain.ClampLockTTL(v(0), 15))
	assert.Equal(t, 1, domain.ClampLockTTL(v(-4), 15))
	assert.Equal(t, 30, domain.ClampLockTTL(v(90), 15))
	assert.Equal(t, 7, domain.ClampLockTTL(v(7), 15))
}

func TestErrorKinds_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("lock seats: %w", domain.ErrSeatsNotAvailable)

	assert.True(t, domain.IsConflict(err))
	assert.True(t, errors.Is(err, domain.ErrSeatsNotAvailable))
	assert.False(t, domain.IsNotFound(err))

	assert.True(t, domain.IsNotFound(domain.ErrShowNotRegistered))
	assert.True(t, domain.IsForbidden(domain.ErrBookingNotOwned))
	assert.True(t, domain.IsInvalidState(domain.ErrBookingNotReserved))
	assert.True(t, domain.IsUnavailable(domain.ErrSeatServiceUnavailable))
}

func TestPaymentStatusError(t *testing.T) {
	id := uuid.New()
	err := error(&domain.PaymentStatusError{Status: domain.PaymentFailed, BookingID: id})

	assert.Contains(t, err.Error(), "FAILED")
	assert.Contains(t, err.Error(), id.String())
	assert.True(t, domain.IsConflict(err))
}
