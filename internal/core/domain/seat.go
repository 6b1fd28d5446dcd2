package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatLocked    SeatStatus = "LOCKED"
	SeatBooked    SeatStatus = "BOOKED"
)

const (
	MinLockTTLMinutes         = 1
	MaxLockTTLMinutes         = 30
	DefaultSeatLockTTLMinutes = 10
)

// Seat is a physical seat of a screen. Label ("A1") is unique per screen.
type Seat struct {
	ID         uuid.UUID
	ScreenID   uuid.UUID
	RowLabel   string
	SeatNumber int
	Label      string
}

func NewSeat(screenID uuid.UUID, row string, number int) Seat {
	return Seat{
		ID:         uuid.New(),
		ScreenID:   screenID,
		RowLabel:   row,
		SeatNumber: number,
		Label:      row + strconv.Itoa(number),
	}
}

// Screen is read from the theatre catalog; only the fields needed for
// ownership checks are carried.
type Screen struct {
	ID        uuid.UUID
	TheatreID uuid.UUID
	TenantID  uuid.UUID
}

// ShowSeat is the per-show occupancy row of one physical seat.
type ShowSeat struct {
	ShowID            uuid.UUID  `json:"show_id"`
	SeatID            uuid.UUID  `json:"seat_id"`
	Label             string     `json:"label"`
	Status            SeatStatus `json:"status"`
	LockedUntil       *time.Time `json:"locked_until,omitempty"`
	LockedByBookingID *uuid.UUID `json:"locked_by_booking_id,omitempty"`
}

// EffectiveStatus reports LOCKED rows whose deadline is not after now as
// AVAILABLE, whether or not the row has been swept yet.
func (s *ShowSeat) EffectiveStatus(now time.Time) SeatStatus {
	if s.Status == SeatLocked && s.LockedUntil != nil && !s.LockedUntil.After(now) {
		return SeatAvailable
	}
	return s.Status
}

func (s *ShowSeat) IsAvailable(now time.Time) bool {
	return s.EffectiveStatus(now) == SeatAvailable
}

type SeatAvailability struct {
	SeatID uuid.UUID  `json:"seat_id"`
	Label  string     `json:"label"`
	Status SeatStatus `json:"status"`
}

// ClampLockTTL bounds a requested TTL to [MinLockTTLMinutes, MaxLockTTLMinutes].
// A nil request yields def.
func ClampLockTTL(requested *int, def int) int {
	if requested == nil {
		return def
	}
	ttl := *requested
	if ttl < MinLockTTLMinutes {
		return MinLockTTLMinutes
	}
	if ttl > MaxLockTTLMinutes {
		return MaxLockTTLMinutes
	}
	return ttl
}
