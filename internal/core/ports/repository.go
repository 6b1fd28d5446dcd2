package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

// ShowSeatRepository owns the per-show seat rows. Every mutating method is a
// single conditional write; callers never read a row and then write it back.
type ShowSeatRepository interface {
	// FindScreenByShow returns domain.ErrShowNotRegistered when the show has no screen.
	FindScreenByShow(ctx context.Context, showID uuid.UUID) (uuid.UUID, error)
	// RegisterShow returns domain.ErrShowAlreadyRegistered on a second call for the same show.
	RegisterShow(ctx context.Context, showID, screenID uuid.UUID, seatIDs []uuid.UUID) error
	ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error)
	// LockSeats is all-or-nothing. On shortfall nothing is written for this
	// booking and domain.ErrSeatsNotAvailable is returned.
	LockSeats(ctx context.Context, showID, bookingID uuid.UUID, seatIDs []uuid.UUID, now, lockedUntil time.Time) error
	ConfirmSeats(ctx context.Context, showID, bookingID uuid.UUID, now time.Time) (int64, error)
	ReleaseSeats(ctx context.Context, showID, bookingID uuid.UUID) (int64, error)
	ListByShow(ctx context.Context, showID uuid.UUID) ([]domain.ShowSeat, error)
}

// SeatCatalog is the read-only view of the theatre catalog.
type SeatCatalog interface {
	GetScreen(ctx context.Context, screenID uuid.UUID) (*domain.Screen, error)
	SeatsByScreen(ctx context.Context, screenID uuid.UUID) ([]domain.Seat, error)
	SeatsByLabels(ctx context.Context, screenID uuid.UUID, labels []string) ([]domain.Seat, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	// GetByID returns domain.ErrBookingNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	// Update writes status and deadline only while the stored status is still
	// from. Otherwise it returns domain.ErrBookingStateChanged.
	Update(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
