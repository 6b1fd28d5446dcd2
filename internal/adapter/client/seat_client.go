package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"github.com/srgjo27/scalable_booking/internal/platform/config"
	"github.com/srgjo27/scalable_booking/internal/platform/resilience"
)

// SeatClient talks to the inventory service. Every call is idempotent on the
// server side, so transport failures and 5xx are retried; a 4xx never is.
type SeatClient struct {
	baseURL string
	http    *http.Client
	retrier *resilience.Retrier
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

var _ ports.SeatInventory = (*SeatClient)(nil)

func NewSeatClient(cfg config.ClientConfig, log *zap.Logger) *SeatClient {
	if log == nil {
		log = zap.NewNop()
	}

	breakerCfg := resilience.DefaultBreakerConfig("seat-service")
	if cfg.BreakerMinRequests > 0 {
		breakerCfg.MinRequests = cfg.BreakerMinRequests
	}
	if cfg.BreakerFailureRatio > 0 {
		breakerCfg.FailureRatio = cfg.BreakerFailureRatio
	}
	if cfg.BreakerOpenTimeout > 0 {
		breakerCfg.OpenTimeout = cfg.BreakerOpenTimeout
	}

	return &SeatClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		retrier: resilience.NewRetrier(resilience.RetryConfig{
			MaxAttempts:     cfg.MaxAttempts,
			InitialInterval: cfg.RetryInitial,
			MaxInterval:     cfg.RetryMax,
			Multiplier:      2,
			JitterFactor:    0.1,
		}),
		breaker: resilience.NewBreaker(breakerCfg, countsAgainstDependency, log),
		log:     log,
	}
}

type lockRequest struct {
	BookingID      uuid.UUID `json:"bookingId"`
	SeatLabels     []string  `json:"seatLabels"`
	LockTTLMinutes int       `json:"lockTtlMinutes"`
}

type bookingRef struct {
	BookingID uuid.UUID `json:"bookingId"`
}

func (c *SeatClient) LockSeats(ctx context.Context, showID, bookingID uuid.UUID, labels []string, ttlMinutes int) error {
	body := lockRequest{BookingID: bookingID, SeatLabels: labels, LockTTLMinutes: ttlMinutes}
	return c.call(ctx, "lock", showID, body, domain.ErrSeatsNotAvailable)
}

func (c *SeatClient) ReleaseSeats(ctx context.Context, showID, bookingID uuid.UUID) error {
	return c.call(ctx, "release", showID, bookingRef{BookingID: bookingID}, domain.ErrSeatsNotAvailable)
}

func (c *SeatClient) ConfirmSeats(ctx context.Context, showID, bookingID uuid.UUID) error {
	return c.call(ctx, "confirm", showID, bookingRef{BookingID: bookingID}, domain.ErrNoLockedSeats)
}

func (c *SeatClient) call(ctx context.Context, action string, showID uuid.UUID, body any, conflict error) error {
	url := fmt.Sprintf("%s/api/shows/%s/seats/%s", c.baseURL, showID, action)

	res := c.retrier.Do(ctx, func(ctx context.Context) error {
		_, err := c.breaker.Execute(func() (interface{}, error) {
			return nil, c.post(ctx, url, body, conflict)
		})

		switch {
		case err == nil:
			return nil
		case resilience.IsBreakerRejection(err):
			return resilience.Permanent(fmt.Errorf("%w: %v", domain.ErrSeatServiceUnavailable, err))
		case domain.IsUnavailable(err):
			return err
		default:
			return resilience.Permanent(err)
		}
	})

	if res.Err != nil && res.Attempts > 1 {
		c.log.Warn("seat service call failed",
			zap.String("action", action),
			zap.String("show_id", showID.String()),
			zap.Int("attempts", res.Attempts),
			zap.Error(res.Err),
		)
	}
	return res.Err
}

func (c *SeatClient) post(ctx context.Context, url string, body any, conflict error) error {
	resp, err := send(ctx, c.http, http.MethodPost, url, "", body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrSeatServiceUnavailable, err)
	}
	if resp.ok() {
		return nil
	}

	msg := resp.message()
	switch {
	case resp.status == http.StatusConflict:
		return conflict
	case resp.status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrShowNotRegistered, msg)
	case resp.status >= 500:
		return fmt.Errorf("%w: status %d: %s", domain.ErrSeatServiceUnavailable, resp.status, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrSeatServiceRejected, resp.status, msg)
	}
}

// countsAgainstDependency tells the breaker that semantic answers (seat taken,
// bad request) are healthy responses.
func countsAgainstDependency(err error) bool {
	return err == nil || !domain.IsUnavailable(err)
}
