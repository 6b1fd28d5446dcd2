package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports/mocks"
	"github.com/srgjo27/scalable_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReserve_Success(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

	ctx := context.Background()
	id := customer()
	req := domain.CreateBookingRequest{ShowID: uuid.New(), TenantID: uuid.New(), Seats: []string{"A1"}}
	booking := reservedBooking(id.UserID, time.Now().Add(15*time.Minute))

	mockLifecycle.On("Create", ctx, id, req).Return(booking, nil)
	mockPayments.On("CreatePayment", ctx, id, booking.ID, 250000.0, "IDR").Return("pay-42", nil)

	result, err := orchestrator.Reserve(ctx, id, req, 250000, "IDR")

	require.NoError(t, err)
	assert.Equal(t, "pay-42", result.PaymentID)
	assert.Equal(t, booking, result.Booking)
}

func TestReserve_SeatConflictSkipsPayment(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mocks.NewPaymentGateway(t), nil)

	ctx := context.Background()
	id := customer()
	req := domain.CreateBookingRequest{ShowID: uuid.New(), TenantID: uuid.New(), Seats: []string{"A1"}}
	mockLifecycle.On("Create", ctx, id, req).Return(nil, domain.ErrSeatsNotAvailable)

	_, err := orchestrator.Reserve(ctx, id, req, 10, "USD")

	assert.ErrorIs(t, err, domain.ErrSeatsNotAvailable)
}

func TestReserve_PaymentFailure_CancelsBooking(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

	ctx := context.Background()
	id := customer()
	req := domain.CreateBookingRequest{ShowID: uuid.New(), TenantID: uuid.New(), Seats: []string{"A1"}}
	booking := reservedBooking(id.UserID, time.Now().Add(15*time.Minute))

	mockLifecycle.On("Create", ctx, id, req).Return(booking, nil)
	mockPayments.On("CreatePayment", ctx, id, booking.ID, 10.0, "USD").Return("", domain.ErrPaymentServiceUnavailable)
	mockLifecycle.On("Cancel", ctx, id, booking.ID).Return(booking, nil)

	result, err := orchestrator.Reserve(ctx, id, req, 10, "USD")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPaymentServiceUnavailable)
}

func TestReserve_CompensationFailureKeepsOriginalError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, zap.New(core))

	ctx := context.Background()
	id := customer()
	req := domain.CreateBookingRequest{ShowID: uuid.New(), TenantID: uuid.New(), Seats: []string{"A1"}}
	booking := reservedBooking(id.UserID, time.Now().Add(15*time.Minute))

	mockLifecycle.On("Create", ctx, id, req).Return(booking, nil)
	mockPayments.On("CreatePayment", ctx, id, booking.ID, 10.0, "USD").Return("", domain.ErrPaymentServiceUnavailable)
	mockLifecycle.On("Cancel", ctx, id, booking.ID).Return(nil, errors.New("database is down"))

	_, err := orchestrator.Reserve(ctx, id, req, 10, "USD")

	assert.ErrorIs(t, err, domain.ErrPaymentServiceUnavailable)
	assert.NotContains(t, err.Error(), "database is down")

	failures := logs.FilterMessage("compensating cancel failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, booking.ID.String(), failures[0].ContextMap()["booking_id"])
}

func TestConfirmPaymentAndBooking_Success(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

	ctx := context.Background()
	id := customer()
	booking := reservedBooking(id.UserID, time.Now().Add(time.Minute))
	confirmed := *booking
	confirmed.Confirm()

	mockLifecycle.On("Get", ctx, id, booking.ID).Return(booking, nil)
	mockPayments.On("GetPaymentStatus", ctx, id, "pay-1").Return(domain.PaymentPending, nil)
	mockPayments.On("ConfirmPayment", ctx, id, "pay-1", "").Return(nil)
	mockLifecycle.On("Confirm", ctx, id, booking.ID).Return(&confirmed, nil)

	got, err := orchestrator.ConfirmPaymentAndBooking(ctx, id, booking.ID, "pay-1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}

func TestConfirmPaymentAndBooking_TerminalPaymentCancelsBooking(t *testing.T) {
	for _, status := range []domain.PaymentStatus{domain.PaymentFailed, domain.PaymentNotFound} {
		t.Run(string(status), func(t *testing.T) {
			mockLifecycle := mocks.NewBookingLifecycle(t)
			mockPayments := mocks.NewPaymentGateway(t)
			orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

			ctx := context.Background()
			id := customer()
			bookingID := uuid.New()

			mockLifecycle.On("Get", ctx, id, bookingID).Return(&domain.Booking{ID: bookingID, Status: domain.BookingReserved}, nil)
			mockPayments.On("GetPaymentStatus", ctx, id, "pay-9").Return(status, nil)
			mockLifecycle.On("Cancel", ctx, id, bookingID).Return(&domain.Booking{ID: bookingID, Status: domain.BookingCancelled}, nil)

			_, err := orchestrator.ConfirmPaymentAndBooking(ctx, id, bookingID, "pay-9")

			var statusErr *domain.PaymentStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, status, statusErr.Status)
			assert.True(t, domain.IsConflict(err))
			assert.Contains(t, err.Error(), string(status))
		})
	}
}

func TestConfirmPaymentAndBooking_ConfirmFailureCancelsBooking(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

	ctx := context.Background()
	id := customer()
	bookingID := uuid.New()

	mockLifecycle.On("Get", ctx, id, bookingID).Return(&domain.Booking{ID: bookingID, Status: domain.BookingReserved}, nil)
	mockPayments.On("GetPaymentStatus", ctx, id, "pay-3").Return(domain.PaymentPending, nil)
	mockPayments.On("ConfirmPayment", ctx, id, "pay-3", "").Return(domain.ErrPaymentNotPending)
	mockLifecycle.On("Cancel", ctx, id, bookingID).Return(&domain.Booking{ID: bookingID, Status: domain.BookingCancelled}, nil)

	_, err := orchestrator.ConfirmPaymentAndBooking(ctx, id, bookingID, "pay-3")

	assert.ErrorIs(t, err, domain.ErrPaymentNotPending)
}

func TestConfirmPaymentAndBooking_StatusReadFailureDoesNotCompensate(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

	ctx := context.Background()
	id := customer()

	bookingID := uuid.New()

	mockLifecycle.On("Get", ctx, id, bookingID).Return(&domain.Booking{ID: bookingID, Status: domain.BookingReserved}, nil)
	mockPayments.On("GetPaymentStatus", ctx, id, "pay-5").Return(domain.PaymentStatus(""), domain.ErrPaymentServiceUnavailable)

	_, err := orchestrator.ConfirmPaymentAndBooking(ctx, id, bookingID, "pay-5")

	assert.True(t, domain.IsUnavailable(err))
}

func TestConfirmPaymentAndBooking_NonOwnerNeverReachesPayments(t *testing.T) {
	mockLifecycle := mocks.NewBookingLifecycle(t)
	mockPayments := mocks.NewPaymentGateway(t)
	orchestrator := services.NewBookingOrchestrator(mockLifecycle, mockPayments, nil)

	ctx := context.Background()
	id := customer()
	bookingID := uuid.New()

	mockLifecycle.On("Get", ctx, id, bookingID).Return(nil, domain.ErrBookingNotOwned)

	_, err := orchestrator.ConfirmPaymentAndBooking(ctx, id, bookingID, "pay-2")

	assert.ErrorIs(t, err, domain.ErrBookingNotOwned)
	assert.True(t, domain.IsForbidden(err))
	mockPayments.AssertNotCalled(t, "GetPaymentStatus", ctx, id, "pay-2")
	mockPayments.AssertNotCalled(t, "ConfirmPayment", ctx, id, "pay-2", "")
}
