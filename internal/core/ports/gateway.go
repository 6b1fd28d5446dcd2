package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
)

// SeatInventory is the seat boundary seen by the booking side. It is served
// in-process by services.SeatInventoryService or remotely by client.SeatClient.
type SeatInventory interface {
	LockSeats(ctx context.Context, showID, bookingID uuid.UUID, labels []string, ttlMinutes int) error
	// ReleaseSeats succeeds when there is nothing to release.
	ReleaseSeats(ctx context.Context, showID, bookingID uuid.UUID) error
	ConfirmSeats(ctx context.Context, showID, bookingID uuid.UUID) error
}

type PaymentGateway interface {
	CreatePayment(ctx context.Context, id domain.Identity, bookingID uuid.UUID, amount float64, currency string) (string, error)
	// GetPaymentStatus reports domain.PaymentNotFound rather than an error for unknown payments.
	GetPaymentStatus(ctx context.Context, id domain.Identity, paymentID string) (domain.PaymentStatus, error)
	ConfirmPayment(ctx context.Context, id domain.Identity, paymentID, referenceID string) error
}

// BookingLifecycle is what the orchestrator needs from the booking service.
type BookingLifecycle interface {
	Create(ctx context.Context, id domain.Identity, req domain.CreateBookingRequest) (*domain.Booking, error)
	Confirm(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error)
	Get(ctx context.Context, id domain.Identity, bookingID uuid.UUID) (*domain.Booking, error)
}
