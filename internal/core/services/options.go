package services

import "time"

const defaultAvailabilityCacheTTL = 30 * time.Second

type settings struct {
	now      func() time.Time
	cacheTTL time.Duration
}

type Option func(*settings)

// WithClock replaces time.Now. Tests use it to pin deadlines exactly.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCacheTTL sets how long availability snapshots stay in redis.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, cacheTTL: defaultAvailabilityCacheTTL}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
