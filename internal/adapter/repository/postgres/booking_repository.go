package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, show_id, tenant_id, theatre_id, seats, total_price, status, created_at, reserved_until`

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ShowID,
		booking.TenantID,
		nullUUID(booking.TheatreID),
		pq.Array(booking.Seats),
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.ReservedUntil,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// Update persists status and deadline as a compare-and-set on the stored status.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1, reserved_until = $2
	WHERE id = $3 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query, booking.Status, booking.ReservedUntil, booking.ID, from)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	var status domain.BookingStatus
	err = r.db.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1`, booking.ID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrBookingStateChanged
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var b domain.Booking
	var theatreID uuid.NullUUID
	var totalPrice sql.NullFloat64
	var reservedUntil sql.NullTime

	err := s.Scan(
		&b.ID,
		&b.UserID,
		&b.ShowID,
		&b.TenantID,
		&theatreID,
		pq.Array(&b.Seats),
		&totalPrice,
		&b.Status,
		&b.CreatedAt,
		&reservedUntil,
	)
	if err != nil {
		return nil, err
	}

	if theatreID.Valid {
		b.TheatreID = &theatreID.UUID
	}
	if totalPrice.Valid {
		b.TotalPrice = &totalPrice.Float64
	}
	if reservedUntil.Valid {
		b.ReservedUntil = &reservedUntil.Time
	}
	return &b, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
