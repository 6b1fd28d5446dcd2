package domain

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentFailed    PaymentStatus = "FAILED"
	// PaymentNotFound is reported when the payment service has no such payment.
	PaymentNotFound PaymentStatus = "NOT_FOUND"
)

// IsTerminalFailure is true for statuses that end the booking saga.
func (s PaymentStatus) IsTerminalFailure() bool {
	return s == PaymentFailed || s == PaymentNotFound
}
