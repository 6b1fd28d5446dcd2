package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"go.uber.org/zap"
)

type ReserveResult struct {
	Booking   *domain.Booking `json:"booking"`
	PaymentID string          `json:"payment_id"`
}

// BookingOrchestrator sequences booking, seat and payment steps. Its only
// compensation is cancelling the booking; payments are never reversed here.
type BookingOrchestrator struct {
	bookings ports.BookingLifecycle
	payments ports.PaymentGateway
	log      *zap.Logger
}

func NewBookingOrchestrator(bookings ports.BookingLifecycle, payments ports.PaymentGateway, log *zap.Logger) *BookingOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingOrchestrator{
		bookings: bookings,
		payments: payments,
		log:      log,
	}
}

// Reserve creates the booking (locking its seats) and then a payment for it.
func (o *BookingOrchestrator) Reserve(ctx context.Context, id domain.Identity, req domain.CreateBookingRequest, amount float64, currency string) (*ReserveResult, error) {
	if amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	booking, err := o.bookings.Create(ctx, id, req)
	if err != nil {
		return nil, err
	}

	paymentID, err := o.payments.CreatePayment(ctx, id, booking.ID, amount, currency)
	if err != nil {
		o.log.Warn("payment create failed, cancelling booking",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err),
		)
		o.cancel(ctx, id, booking.ID, "")
		return nil, err
	}

	return &ReserveResult{Booking: booking, PaymentID: paymentID}, nil
}

func (o *BookingOrchestrator) ConfirmPaymentAndBooking(ctx context.Context, id domain.Identity, bookingID uuid.UUID, paymentID string) (*domain.Booking, error) {
	if paymentID == "" {
		return nil, domain.ErrInvalidPaymentID
	}

	// Ownership is settled before the payment service is touched.
	if _, err := o.bookings.Get(ctx, id, bookingID); err != nil {
		return nil, err
	}

	status, err := o.payments.GetPaymentStatus(ctx, id, paymentID)
	if err != nil {
		return nil, err
	}

	if status.IsTerminalFailure() {
		o.cancel(ctx, id, bookingID, paymentID)
		return nil, &domain.PaymentStatusError{Status: status, BookingID: bookingID}
	}

	if err := o.payments.ConfirmPayment(ctx, id, paymentID, ""); err != nil {
		o.log.Warn("confirm payment failed, cancelling booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
		o.cancel(ctx, id, bookingID, paymentID)
		return nil, err
	}

	return o.bookings.Confirm(ctx, id, bookingID)
}

// cancel is the compensation step. Its failure is logged and swallowed so
// the caller always sees the error that triggered it.
func (o *BookingOrchestrator) cancel(ctx context.Context, id domain.Identity, bookingID uuid.UUID, paymentID string) {
	if _, err := o.bookings.Cancel(ctx, id, bookingID); err != nil {
		o.log.Error("compensating cancel failed",
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
	}
}
