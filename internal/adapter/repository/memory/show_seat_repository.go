package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

// ShowSeatRepository keeps show seats in memory. Each method runs under one
// mutex, which gives the lock step the same all-or-nothing behaviour as the
// conditional UPDATE in the postgres adapter.
type ShowSeatRepository struct {
	catalog *SeatCatalog
	screens map[uuid.UUID]uuid.UUID         // showID -> screenID
	rows    map[uuid.UUID][]domain.ShowSeat // showID -> rows
	mu      sync.Mutex
}

func NewShowSeatRepository(catalog *SeatCatalog) *ShowSeatRepository {
	return &ShowSeatRepository{
		catalog: catalog,
		screens: make(map[uuid.UUID]uuid.UUID),
		rows:    make(map[uuid.UUID][]domain.ShowSeat),
	}
}

func (r *ShowSeatRepository) FindScreenByShow(ctx context.Context, showID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	screenID, ok := r.screens[showID]
	if !ok {
		return uuid.Nil, domain.ErrShowNotRegistered
	}
	return screenID, nil
}

func (r *ShowSeatRepository) RegisterShow(ctx context.Context, showID, screenID uuid.UUID, seatIDs []uuid.UUID) error {
	labels := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		labels[i] = r.catalog.label(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.screens[showID]; exists {
		return domain.ErrShowAlreadyRegistered
	}

	rows := make([]domain.ShowSeat, len(seatIDs))
	for i, id := range seatIDs {
		rows[i] = domain.ShowSeat{
			ShowID: showID,
			SeatID: id,
			Label:  labels[i],
			Status: domain.SeatAvailable,
		}
	}

	r.screens[showID] = screenID
	r.rows[showID] = rows
	return nil
}

func (r *ShowSeatRepository) ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, rows := range r.rows {
		for i := range rows {
			row := &rows[i]
			if row.Status == domain.SeatLocked && row.LockedUntil != nil && !row.LockedUntil.After(now) {
				free(row)
				n++
			}
		}
	}
	return n, nil
}

func (r *ShowSeatRepository) LockSeats(ctx context.Context, showID, bookingID uuid.UUID, seatIDs []uuid.UUID, now, lockedUntil time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[showID]
	index := make(map[uuid.UUID]int, len(rows))
	for i := range rows {
		index[rows[i].SeatID] = i
	}

	targets := make([]int, 0, len(seatIDs))
	for _, id := range seatIDs {
		i, ok := index[id]
		if !ok || !lockable(&rows[i], bookingID, now) {
			return domain.ErrSeatsNotAvailable
		}
		targets = append(targets, i)
	}

	for _, i := range targets {
		until := lockedUntil
		by := bookingID
		rows[i].Status = domain.SeatLocked
		rows[i].LockedUntil = &until
		rows[i].LockedByBookingID = &by
	}
	return nil
}

func (r *ShowSeatRepository) ConfirmSeats(ctx context.Context, showID, bookingID uuid.UUID, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	rows := r.rows[showID]
	for i := range rows {
		row := &rows[i]
		if row.Status == domain.SeatLocked && heldBy(row, bookingID) && row.LockedUntil != nil && row.LockedUntil.After(now) {
			row.Status = domain.SeatBooked
			row.LockedUntil = nil
			n++
		}
	}
	return n, nil
}

func (r *ShowSeatRepository) ReleaseSeats(ctx context.Context, showID, bookingID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	rows := r.rows[showID]
	for i := range rows {
		if heldBy(&rows[i], bookingID) {
			free(&rows[i])
			n++
		}
	}
	return n, nil
}

func (r *ShowSeatRepository) ListByShow(ctx context.Context, showID uuid.UUID) ([]domain.ShowSeat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[showID]
	out := make([]domain.ShowSeat, len(rows))
	for i, row := range rows {
		if row.LockedUntil != nil {
			until := *row.LockedUntil
			row.LockedUntil = &until
		}
		if row.LockedByBookingID != nil {
			by := *row.LockedByBookingID
			row.LockedByBookingID = &by
		}
		out[i] = row
	}
	return out, nil
}

func lockable(row *domain.ShowSeat, bookingID uuid.UUID, now time.Time) bool {
	switch row.Status {
	case domain.SeatAvailable:
		return true
	case domain.SeatLocked:
		return heldBy(row, bookingID) || (row.LockedUntil != nil && !row.LockedUntil.After(now))
	default:
		return false
	}
}

func heldBy(row *domain.ShowSeat, bookingID uuid.UUID) bool {
	return row.LockedByBookingID != nil && *row.LockedByBookingID == bookingID
}

func free(row *domain.ShowSeat) {
	row.Status = domain.SeatAvailable
	row.LockedUntil = nil
	row.LockedByBookingID = nil
}
