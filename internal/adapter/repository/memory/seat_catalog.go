package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

// SeatCatalog is an in-memory theatre catalog for development and tests.
type SeatCatalog struct {
	screens map[uuid.UUID]domain.Screen
	seats   map[uuid.UUID][]domain.Seat // screenID -> seats in row/number order
	mu      sync.RWMutex
}

func NewSeatCatalog() *SeatCatalog {
	return &SeatCatalog{
		screens: make(map[uuid.UUID]domain.Screen),
		seats:   make(map[uuid.UUID][]domain.Seat),
	}
}

func (c *SeatCatalog) AddScreen(screen domain.Screen, seats ...domain.Seat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screens[screen.ID] = screen
	c.seats[screen.ID] = append(c.seats[screen.ID], seats...)
}

// SeedScreen adds a screen with rows × perRow seats labelled A1, A2, ...
func (c *SeatCatalog) SeedScreen(tenantID uuid.UUID, rows, perRow int) domain.Screen {
	screen := domain.Screen{ID: uuid.New(), TheatreID: uuid.New(), TenantID: tenantID}

	seats := make([]domain.Seat, 0, rows*perRow)
	for r := 0; r < rows; r++ {
		row := string(rune('A' + r))
		for n := 1; n <= perRow; n++ {
			seats = append(seats, domain.NewSeat(screen.ID, row, n))
		}
	}

	c.AddScreen(screen, seats...)
	return screen
}

func (c *SeatCatalog) GetScreen(ctx context.Context, screenID uuid.UUID) (*domain.Screen, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	screen, ok := c.screens[screenID]
	if !ok {
		return nil, domain.ErrScreenNotFound
	}
	return &screen, nil
}

func (c *SeatCatalog) SeatsByScreen(ctx context.Context, screenID uuid.UUID) ([]domain.Seat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]domain.Seat(nil), c.seats[screenID]...), nil
}

// SeatsByLabels returns each matching seat once, so duplicate labels yield
// fewer seats than requested.
func (c *SeatCatalog) SeatsByLabels(ctx context.Context, screenID uuid.UUID, labels []string) ([]domain.Seat, error) {
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Seat
	for _, seat := range c.seats[screenID] {
		if _, ok := want[seat.Label]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (c *SeatCatalog) label(seatID uuid.UUID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, seats := range c.seats {
		for _, seat := range seats {
			if seat.ID == seatID {
				return seat.Label
			}
		}
	}
	return "?"
}
