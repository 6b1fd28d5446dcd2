package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

// SeatCatalog reads the theatre catalog tables. It never writes them.
type SeatCatalog struct {
	db *sql.DB
}

func NewSeatCatalog(db *sql.DB) *SeatCatalog {
	return &SeatCatalog{db: db}
}

func (c *SeatCatalog) GetScreen(ctx context.Context, screenID uuid.UUID) (*domain.Screen, error) {
	var screen domain.Screen
	err := c.db.QueryRowContext(ctx, `SELECT id, theatre_id, tenant_id FROM screens WHERE id = $1`, screenID).
		Scan(&screen.ID, &screen.TheatreID, &screen.TenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScreenNotFound
		}
		return nil, err
	}
	return &screen, nil
}

func (c *SeatCatalog) SeatsByScreen(ctx context.Context, screenID uuid.UUID) ([]domain.Seat, error) {
	query := `
	SELECT id, screen_id, row_label, seat_number, label
	FROM seats
	WHERE screen_id = $1
	ORDER BY row_label, seat_number
	`
	return c.query(ctx, query, screenID)
}

// SeatsByLabels returns one seat per distinct known label, so unknown or
// repeated labels come back as a shorter slice.
func (c *SeatCatalog) SeatsByLabels(ctx context.Context, screenID uuid.UUID, labels []string) ([]domain.Seat, error) {
	query := `
	SELECT id, screen_id, row_label, seat_number, label
	FROM seats
	WHERE screen_id = $1 AND label = ANY($2::text[])
	`
	return c.query(ctx, query, screenID, pq.Array(labels))
}

func (c *SeatCatalog) query(ctx context.Context, query string, args ...any) ([]domain.Seat, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var seats []domain.Seat
	for rows.Next() {
		var seat domain.Seat
		if err := rows.Scan(&seat.ID, &seat.ScreenID, &seat.RowLabel, &seat.SeatNumber, &seat.Label); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}
