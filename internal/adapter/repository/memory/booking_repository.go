package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

type BookingRepository struct {
	bookings map[uuid.UUID]domain.Booking
	mu       sync.RWMutex
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return domain.ErrConflict
	}
	r.bookings[booking.ID] = clone(booking)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := clone(&b)
	return &out, nil
}

// ListByUser returns the newest bookings first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, clone(&b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if current.Status != from {
		return domain.ErrBookingStateChanged
	}
	r.bookings[booking.ID] = clone(booking)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bookings, id)
	return nil
}

func clone(b *domain.Booking) domain.Booking {
	out := *b
	out.Seats = append([]string(nil), b.Seats...)
	if b.ReservedUntil != nil {
		until := *b.ReservedUntil
		out.ReservedUntil = &until
	}
	if b.TotalPrice != nil {
		price := *b.TotalPrice
		out.TotalPrice = &price
	}
	if b.TheatreID != nil {
		theatre := *b.TheatreID
		out.TheatreID = &theatre
	}
	return out
}
