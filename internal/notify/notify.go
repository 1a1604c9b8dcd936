// Package notify delivers best-effort booking notifications. Failures are
// logged by callers and never affect the booking itself.
package notify

import (
	"context"

	"golang.org/x/time/rate"
)

// Notifier delivers a short message about a profile's new booking.
type Notifier interface {
	Notify(ctx context.Context, profileID, message string) error
}

// newLimiter builds a per-minute rate limiter with a small burst, so a spike
// of bookings cannot flood the chat transport.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		perMinute = 20
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
}
