package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

const uniqueViolation = "23505"

// ShowSeatRepository stores per-show seat rows in show_seats. Lock, confirm
// and release are single conditional UPDATEs, so concurrent replicas never
// read a row and write it back.
type ShowSeatRepository struct {
	db *sql.DB
}

func NewShowSeatRepository(db *sql.DB) *ShowSeatRepository {
	return &ShowSeatRepository{db: db}
}

func (r *ShowSeatRepository) FindScreenByShow(ctx context.Context, showID uuid.UUID) (uuid.UUID, error) {
	var screenID uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT screen_id FROM show_screens WHERE show_id = $1`, showID).Scan(&screenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, domain.ErrShowNotRegistered
		}
		return uuid.Nil, err
	}
	return screenID, nil
}

func (r *ShowSeatRepository) RegisterShow(ctx context.Context, showID, screenID uuid.UUID, seatIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO show_screens (show_id, screen_id) VALUES ($1, $2)`, showID, screenID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrShowAlreadyRegistered
		}
		return fmt.Errorf("failed to insert show screen: %w", err)
	}

	query := `
	INSERT INTO show_seats (show_id, seat_id, status)
	SELECT $1, seat_id, 'AVAILABLE' FROM UNNEST($2::uuid[]) AS seat_id
	`
	if _, err = tx.ExecContext(ctx, query, showID, pq.Array(uuidStrings(seatIDs))); err != nil {
		return fmt.Errorf("failed to insert show seats: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ShowSeatRepository) ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	query := `
	UPDATE show_seats
	SET status = 'AVAILABLE', locked_until = NULL, locked_by_booking_id = NULL
	WHERE status = 'LOCKED' AND locked_until <= $1
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ShowSeatRepository) LockSeats(ctx context.Context, showID, bookingID uuid.UUID, seatIDs []uuid.UUID, now, lockedUntil time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	UPDATE show_seats
	SET status = 'LOCKED', locked_until = $3, locked_by_booking_id = $4
	WHERE show_id = $1 AND seat_id = ANY($2::uuid[])
	AND (status = 'AVAILABLE' OR (status = 'LOCKED' AND (locked_by_booking_id = $4 OR locked_until <= $5)))
	`

	result, err := tx.ExecContext(ctx, query, showID, pq.Array(uuidStrings(seatIDs)), lockedUntil, bookingID, now)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// A shortfall means another booking holds one of the seats. Rolling back
	// undoes the rows this statement did take.
	if rowsAffected != int64(len(seatIDs)) {
		return domain.ErrSeatsNotAvailable
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ShowSeatRepository) ConfirmSeats(ctx context.Context, showID, bookingID uuid.UUID, now time.Time) (int64, error) {
	query := `
	UPDATE show_seats
	SET status = 'BOOKED', locked_until = NULL
	WHERE show_id = $1 AND locked_by_booking_id = $2 AND status = 'LOCKED' AND locked_until > $3
	`

	result, err := r.db.ExecContext(ctx, query, showID, bookingID, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ShowSeatRepository) ReleaseSeats(ctx context.Context, showID, bookingID uuid.UUID) (int64, error) {
	query := `
	UPDATE show_seats
	SET status = 'AVAILABLE', locked_until = NULL, locked_by_booking_id = NULL
	WHERE show_id = $1 AND locked_by_booking_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, showID, bookingID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ShowSeatRepository) ListByShow(ctx context.Context, showID uuid.UUID) ([]domain.ShowSeat, error) {
	query := `
	SELECT ss.show_id, ss.seat_id, s.label, ss.status, ss.locked_until, ss.locked_by_booking_id
	FROM show_seats ss
	JOIN seats s ON s.id = ss.seat_id
	WHERE ss.show_id = $1
	ORDER BY s.row_label, s.seat_number
	`

	rows, err := r.db.QueryContext(ctx, query, showID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	seats := []domain.ShowSeat{}
	for rows.Next() {
		var seat domain.ShowSeat
		var lockedUntil sql.NullTime
		var lockedBy uuid.NullUUID

		if err := rows.Scan(
			&seat.ShowID,
			&seat.SeatID,
			&seat.Label,
			&seat.Status,
			&lockedUntil,
			&lockedBy,
		); err != nil {
			return nil, err
		}

		if lockedUntil.Valid {
			seat.LockedUntil = &lockedUntil.Time
		}
		if lockedBy.Valid {
			seat.LockedByBookingID = &lockedBy.UUID
		}

		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
