package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"github.com/srgjo27/scalable_booking/internal/platform/config"
	"github.com/srgjo27/scalable_booking/internal/platform/resilience"
)

// PaymentClient calls the payment service with the caller's own
// Authorization header. Payment calls are not idempotent, so there is a
// breaker but no retry.
type PaymentClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

var _ ports.PaymentGateway = (*PaymentClient)(nil)

func NewPaymentClient(cfg config.ClientConfig, log *zap.Logger) *PaymentClient {
	breakerCfg := resilience.DefaultBreakerConfig("payment-service")
	if cfg.BreakerMinRequests > 0 {
		breakerCfg.MinRequests = cfg.BreakerMinRequests
	}
	if cfg.BreakerFailureRatio > 0 {
		breakerCfg.FailureRatio = cfg.BreakerFailureRatio
	}
	if cfg.BreakerOpenTimeout > 0 {
		breakerCfg.OpenTimeout = cfg.BreakerOpenTimeout
	}

	return &PaymentClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: resilience.NewBreaker(breakerCfg, countsAgainstDependency, log),
	}
}

type createPaymentRequest struct {
	BookingID uuid.UUID `json:"bookingId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
}

type confirmPaymentRequest struct {
	ReferenceID string `json:"referenceId,omitempty"`
}

func (c *PaymentClient) CreatePayment(ctx context.Context, id domain.Identity, bookingID uuid.UUID, amount float64, currency string) (string, error) {
	body := createPaymentRequest{BookingID: bookingID, Amount: amount, Currency: currency}

	resp, err := c.execute(ctx, http.MethodPost, c.baseURL+"/api/payments", id.Authorization, body)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", rejection(resp)
	}

	var created struct {
		ID any `json:"id"`
	}
	if err := resp.decode(&created); err != nil {
		return "", err
	}

	paymentID := paymentIDString(created.ID)
	if paymentID == "" {
		return "", errors.New("create payment returned no id")
	}
	return paymentID, nil
}

func (c *PaymentClient) GetPaymentStatus(ctx context.Context, id domain.Identity, paymentID string) (domain.PaymentStatus, error) {
	resp, err := c.execute(ctx, http.MethodGet, c.paymentURL(paymentID), id.Authorization, nil)
	if err != nil {
		return "", err
	}
	if resp.status == http.StatusNotFound {
		return domain.PaymentNotFound, nil
	}
	if !resp.ok() {
		return "", rejection(resp)
	}

	var payment struct {
		Status string `json:"status"`
	}
	if err := resp.decode(&payment); err != nil {
		return "", err
	}
	if payment.Status == "" {
		return "", errors.New("payment status missing from response")
	}
	return domain.PaymentStatus(strings.ToUpper(payment.Status)), nil
}

func (c *PaymentClient) ConfirmPayment(ctx context.Context, id domain.Identity, paymentID, referenceID string) error {
	body := confirmPaymentRequest{ReferenceID: referenceID}

	resp, err := c.execute(ctx, http.MethodPost, c.paymentURL(paymentID), id.Authorization, body)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return rejection(resp)
	}
	return nil
}

func (c *PaymentClient) paymentURL(paymentID string) string {
	return c.baseURL + "/api/payments/" + url.PathEscape(paymentID)
}

// execute runs one request through the breaker. A 5xx counts as a failure;
// any other status is handed back for the caller to interpret.
func (c *PaymentClient) execute(ctx context.Context, method, target, authorization string, body any) (*response, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := send(ctx, c.http, method, target, authorization, body)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrPaymentServiceUnavailable, err)
		}
		if resp.status >= 500 {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrPaymentServiceUnavailable, resp.status, resp.message())
		}
		return resp, nil
	})
	if err != nil {
		if resilience.IsBreakerRejection(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrPaymentServiceUnavailable, err)
		}
		return nil, err
	}
	return out.(*response), nil
}

func rejection(resp *response) error {
	msg := resp.message()
	switch resp.status {
	case http.StatusBadRequest:
		return fmt.Errorf("payment service rejected request: %s: %w", msg, domain.ErrValidation)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("payment service denied request: %s: %w", msg, domain.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("payment not found: %s: %w", msg, domain.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrPaymentNotPending, msg)
	default:
		return fmt.Errorf("payment service returned %d: %s", resp.status, msg)
	}
}

// paymentIDString accepts numeric and string ids.
func paymentIDString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return ""
	}
}
