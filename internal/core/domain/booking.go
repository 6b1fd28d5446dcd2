package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingReserved  BookingStatus = "RESERVED"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingExpired   BookingStatus = "EXPIRED"
)

const DefaultBookingTTLMinutes = 15

// Booking is a customer's hold on a set of seats for one show. ReservedUntil
// is set only while the booking is RESERVED.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	ShowID        uuid.UUID     `json:"show_id"`
	TenantID      uuid.UUID     `json:"tenant_id"`
	TheatreID     *uuid.UUID    `json:"theatre_id,omitempty"`
	Seats         []string      `json:"seats"`
	TotalPrice    *float64      `json:"total_price,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ReservedUntil *time.Time    `json:"reserved_until,omitempty"`
}

// IsExpiredAt is true for a RESERVED booking whose deadline is not after t.
func (b *Booking) IsExpiredAt(t time.Time) bool {
	return b.Status == BookingReserved && b.ReservedUntil != nil && !b.ReservedUntil.After(t)
}

func (b *Booking) CanConfirm() bool {
	return b.Status == BookingReserved
}

// CanCancel is false for terminal bookings; cancelling those is a no-op.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingReserved || b.Status == BookingConfirmed
}

func (b *Booking) BelongsTo(userID uuid.UUID) bool {
	return b.UserID == userID
}

func (b *Booking) transition(status BookingStatus) {
	b.Status = status
	b.ReservedUntil = nil
}

func (b *Booking) Confirm() { b.transition(BookingConfirmed) }
func (b *Booking) Cancel()  { b.transition(BookingCancelled) }
func (b *Booking) Expire()  { b.transition(BookingExpired) }

// BulkCancelResult reports a bulk cancel per id. Errors is keyed by the
// booking id string.
type BulkCancelResult struct {
	CancelledIDs []uuid.UUID       `json:"cancelled_ids"`
	FailedIDs    []uuid.UUID       `json:"failed_ids"`
	Errors       map[string]string `json:"errors"`
}

type CreateBookingRequest struct {
	ShowID     uuid.UUID  `json:"show_id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	TheatreID  *uuid.UUID `json:"theatre_id,omitempty"`
	Seats      []string   `json:"seats"`
	TotalPrice *float64   `json:"total_price,omitempty"`
	TTLMinutes *int       `json:"lock_ttl_minutes,omitempty"`
}
