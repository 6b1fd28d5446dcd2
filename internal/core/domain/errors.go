package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds. Every domain error unwraps to exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrValidation   = errors.New("validation error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	ErrBookingNotFound   = newError(ErrNotFound, "booking not found")
	ErrShowNotRegistered = newError(ErrNotFound, "show not registered")
	ErrScreenNotFound    = newError(ErrNotFound, "screen not found")

	ErrBookingNotOwned     = newError(ErrForbidden, "booking does not belong to current user")
	ErrPartnerRoleRequired = newError(ErrForbidden, "partner role required")
	ErrTenantRequired      = newError(ErrForbidden, "tenant context required")
	ErrTenantMismatch      = newError(ErrForbidden, "tenant mismatch")
	ErrUnauthenticated     = newError(ErrForbidden, "no authenticated user")

	ErrSeatsNotAvailable     = newError(ErrConflict, "one or more seats are not available")
	ErrShowAlreadyRegistered = newError(ErrConflict, "show already registered to a screen")
	ErrNoLockedSeats         = newError(ErrConflict, "no locked seats found for this booking")
	ErrPaymentNotSettled     = newError(ErrConflict, "payment is not payable")

	ErrBookingNotReserved  = newError(ErrInvalidState, "booking is not in RESERVED state")
	ErrBookingStateChanged = newError(ErrInvalidState, "booking status changed concurrently")
	ErrPaymentNotPending   = newError(ErrInvalidState, "payment is not in PENDING state")
	ErrSeatServiceRejected = newError(ErrInvalidState, "seat service rejected the request")

	ErrSeatServiceUnavailable    = newError(ErrUnavailable, "seat service unavailable")
	ErrPaymentServiceUnavailable = newError(ErrUnavailable, "payment service unavailable")

	ErrNoSeatsRequested = newError(ErrValidation, "at least one seat is required")
	ErrInvalidShowID    = newError(ErrValidation, "invalid show id")
	ErrInvalidTenantID  = newError(ErrValidation, "invalid tenant id")
	ErrInvalidBookingID = newError(ErrValidation, "invalid booking id")
	ErrInvalidPaymentID = newError(ErrValidation, "invalid payment id")
	ErrInvalidAmount    = newError(ErrValidation, "amount cannot be negative")
)

// PaymentStatusError ends the saga when the payment is FAILED or missing.
type PaymentStatusError struct {
	Status    PaymentStatus
	BookingID uuid.UUID
}

func (e *PaymentStatusError) Error() string {
	return fmt.Sprintf("payment is %s; booking %s has been cancelled", e.Status, e.BookingID)
}

func (e *PaymentStatusError) Unwrap() error { return ErrPaymentNotSettled }

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
func IsUnavailable(err error) bool  { return errors.Is(err, ErrUnavailable) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
