package model

import "errors"

// Domain errors shared between the availability and booking services.
// ErrBookingDisabled is deliberately surfaced to callers the same way as
// ErrProfileNotFound so that the API does not leak which usernames exist.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrBookingDisabled = errors.New("booking not enabled for this profile")
)
