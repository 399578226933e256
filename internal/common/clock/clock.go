// Package clock abstracts time so poll cycles and saved state can be tested with fixed instants.
package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/rankwatch/internal/common/clock Clock
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

func (c *DefaultClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}
