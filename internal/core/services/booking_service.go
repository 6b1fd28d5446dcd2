package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"go.uber.org/zap"
)

// BookingService drives a booking through RESERVED, CONFIRMED, CANCELLED and
// EXPIRED. Seat state is only ever changed through ports.SeatInventory.
type BookingService struct {
	bookings ports.BookingRepository
	seats    ports.SeatInventory
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(bookings ports.BookingRepository, seats ports.SeatInventory, log *zap.Logger, opts ...Option) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	st := newSettings(opts)
	return &BookingService{
		bookings: bookings,
		seats:    seats,
		log:      log,
		now:      st.now,
	}
}

var _ ports.BookingLifecycle = (*BookingService)(nil)

func (s *BookingService) Create(ctx context.Context, id domain.Identity, req domain.CreateBookingRequest) (*domain.Booking, error) {
	if id.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	if req.ShowID == uuid.Nil {
		return nil, domain.ErrInvalidShowID
	}
	if req.TenantID == uuid.Nil {
		return nil, domain.ErrInvalidTenantID
	}
	if len(req.Seats) == 0 {
		return nil, domain.ErrNoSeatsRequested
	}
	if req.TotalPrice != nil && *req.TotalPrice < 0 {
		return nil, domain.ErrInvalidAmount
	}

	ttl := domain.ClampLockTTL(req.TTLMinutes, domain.DefaultBookingTTLMinutes)
	now := s.now()
	reservedUntil := now.Add(time.Duration(ttl) * time.Minute)

	booking := &domain.Booking{
		ID:            uuid.New(),
		UserID:        id.UserID,
		ShowID:        req.ShowID,
		TenantID:      req.TenantID,
		TheatreID:     req.TheatreID,
		Seats:         append([]string(nil), req.Seats...),
		TotalPrice:    req.TotalPrice,
		Status:        domain.BookingReserved,
		CreatedAt:     now,
		ReservedUntil: &reservedUntil,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.seats.LockSeats(ctx, booking.ShowID, booking.ID, booking.Seats, ttl); err != nil {
		if errors.Is(err, domain.ErrSeatsNotAvailable) {
			// The reservation never held anything; drop the row.
			if delErr := s.bookings.Delete(ctx, booking.ID); delErr != nil {
				s.log.Error("failed to delete booking after seat conflict",
					zap.String("booking_id", booking.ID.String()),
					zap.Error(delErr),
				)
			}
			return nil, err
		}

		// The lock may have landed before the failure was observed.
		s.log.Warn("seat lock failed, cancelling booking",
			zap.String("booking_id", booking.ID.String()),
			zap.String("show_id", booking.ShowID.String()),
			zap.Error(err),
		)
		s.release(ctx, booking)
		booking.Cancel()
		if updErr := s.bookings.Update(ctx, booking, domain.BookingReserved); updErr != nil {
			s.log.Error("failed to cancel booking after seat lock failure",
				zap.String("booking_id", booking.ID.String()),
				zap.Error(updErr),
			)
		}
		return nil, err
	}

	return booking, nil
}

func (s *BookingService) Confirm(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.load(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}

	booking, err = s.lazyExpire(ctx, booking)
	if err != nil {
		return nil, err
	}

	if !booking.CanConfirm() {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, domain.ErrBookingNotReserved)
	}

	if err := s.seats.ConfirmSeats(ctx, booking.ShowID, booking.ID); err != nil {
		return nil, fmt.Errorf("confirm seats: %w", err)
	}

	booking.Confirm()
	if err := s.bookings.Update(ctx, booking, domain.BookingReserved); err != nil {
		if errors.Is(err, domain.ErrBookingStateChanged) {
			// A cancel or expiry won the row; the seats just booked are not ours to keep.
			s.log.Warn("booking changed while confirming, releasing seats",
				zap.String("booking_id", booking.ID.String()),
			)
			s.release(ctx, booking)
		}
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	return booking, nil
}

// Cancel is idempotent: a CANCELLED or EXPIRED booking is returned unchanged.
// The status is written before any seat is released.
func (s *BookingService) Cancel(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.load(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if !booking.CanCancel() {
			return booking, nil
		}

		from := booking.Status
		booking.Cancel()
		err = s.bookings.Update(ctx, booking, from)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrBookingStateChanged) || attempt > 0 {
			return nil, fmt.Errorf("failed to cancel booking: %w", err)
		}

		if booking, err = s.load(ctx, id, bookingID); err != nil {
			return nil, err
		}
	}

	s.release(ctx, booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.load(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}
	return s.lazyExpire(ctx, booking)
}

func (s *BookingService) ListForUser(ctx context.Context, id domain.Identity) ([]domain.Booking, error) {
	if id.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}

	list, err := s.bookings.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	out := make([]domain.Booking, 0, len(list))
	for i := range list {
		b, err := s.lazyExpire(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

// BulkCancel runs Cancel per id; one failure never stops the others.
func (s *BookingService) BulkCancel(ctx context.Context, id domain.Identity, bookingIDs []uuid.UUID) *domain.BulkCancelResult {
	result := &domain.BulkCancelResult{
		CancelledIDs: []uuid.UUID{},
		FailedIDs:    []uuid.UUID{},
		Errors:       map[string]string{},
	}

	for _, bookingID := range bookingIDs {
		if _, err := s.Cancel(ctx, id, bookingID); err != nil {
			result.FailedIDs = append(result.FailedIDs, bookingID)
			result.Errors[bookingID.String()] = bulkCancelMessage(err)
			continue
		}
		result.CancelledIDs = append(result.CancelledIDs, bookingID)
	}

	return result
}

func bulkCancelMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		return domain.ErrBookingNotFound.Error()
	case errors.Is(err, domain.ErrBookingNotOwned):
		return domain.ErrBookingNotOwned.Error()
	case err.Error() != "":
		return err.Error()
	default:
		return "cancel failed"
	}
}

func (s *BookingService) load(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	if id.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.BelongsTo(id.UserID) {
		return nil, domain.ErrBookingNotOwned
	}
	return booking, nil
}

// lazyExpire moves a RESERVED booking past its deadline to EXPIRED and frees
// its seats. Bookings that are not due are returned as they are.
func (s *BookingService) lazyExpire(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !booking.IsExpiredAt(s.now()) {
		return booking, nil
	}

	booking.Expire()
	if err := s.bookings.Update(ctx, booking, domain.BookingReserved); err != nil {
		if errors.Is(err, domain.ErrBookingStateChanged) {
			return s.bookings.GetByID(ctx, booking.ID)
		}
		return nil, fmt.Errorf("failed to expire booking: %w", err)
	}

	s.release(ctx, booking)

	s.log.Info("booking expired", zap.String("booking_id", booking.ID.String()))
	return booking, nil
}

// release is best effort. A failure is logged and the seats stay locked
// until their own TTL lapses.
func (s *BookingService) release(ctx context.Context, booking *domain.Booking) {
	if err := s.seats.ReleaseSeats(ctx, booking.ShowID, booking.ID); err != nil {
		s.log.Error("seat release failed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("show_id", booking.ShowID.String()),
			zap.Error(err),
		)
	}
}
