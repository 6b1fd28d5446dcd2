package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var (
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	ErrContextCanceled    = errors.New("context canceled during retry")
)

// RetryConfig describes an exponential backoff policy.
type RetryConfig struct {
	// MaxAttempts counts the first call. 1 disables retries.
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// JitterFactor spreads each wait by ±factor, 0..1.
	JitterFactor float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

type Operation func(ctx context.Context) error

// PermanentError stops the retry loop immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

type Result struct {
	Err       error
	Attempts  int
	LastError error
}

type Retrier struct {
	cfg RetryConfig
}

func NewRetrier(cfg RetryConfig) *Retrier {
	def := DefaultRetryConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = def.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = def.MaxInterval
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = def.Multiplier
	}
	cfg.JitterFactor = math.Max(0, math.Min(1, cfg.JitterFactor))

	return &Retrier{cfg: cfg}
}

// Do runs op until it succeeds, returns a permanent error, or runs out of
// attempts. On exhaustion Err wraps both ErrMaxRetriesExceeded and the last
// error so callers can still classify it.
func (r *Retrier) Do(ctx context.Context, op Operation) *Result {
	res := &Result{}

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		res.Attempts = attempt

		if err := ctx.Err(); err != nil {
			res.Err = fmt.Errorf("%w: %w", ErrContextCanceled, err)
			return res
		}

		err := op(ctx)
		if err == nil {
			res.Err = nil
			return res
		}

		var perm *PermanentError
		if errors.As(err, &perm) {
			res.Err = perm.Err
			res.LastError = perm.Err
			return res
		}
		res.LastError = err

		if attempt == r.cfg.MaxAttempts {
			break
		}

		timer := time.NewTimer(r.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			res.Err = fmt.Errorf("%w: %w", ErrContextCanceled, res.LastError)
			return res
		case <-timer.C:
		}
	}

	res.Err = fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, res.Attempts, res.LastError)
	return res
}

func (r *Retrier) backoff(attempt int) time.Duration {
	interval := float64(r.cfg.InitialInterval) * math.Pow(r.cfg.Multiplier, float64(attempt-1))

	if r.cfg.JitterFactor > 0 {
		jitter := interval * r.cfg.JitterFactor
		interval += (rand.Float64()*2 - 1) * jitter
	}

	if interval > float64(r.cfg.MaxInterval) {
		interval = float64(r.cfg.MaxInterval)
	}
	if interval < 0 {
		interval = float64(r.cfg.InitialInterval)
	}
	return time.Duration(interval)
}
