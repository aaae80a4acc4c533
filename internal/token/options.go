package token

import "time"

// Option -.
type Option func(*Service)

// WithTTL sets the lifetime added to iat to compute exp.
// Values below one second are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= time.Second {
			s.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock used for iat, exp and the expiry check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRequiredExpiry rejects tokens whose payload carries no exp claim.
// Without it such tokens never expire.
func WithRequiredExpiry() Option {
	return func(s *Service) {
		s.requireExpiry = true
	}
}
