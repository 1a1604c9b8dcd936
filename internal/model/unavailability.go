package model

import "time"

// Unavailability is a closed time range during which no meeting may be
// booked. ID carries provenance (absence id, meeting id, holiday id or a
// synthetic "WH"+spec id for working-hours blocks) and is only used for
// diagnostics, never for uniqueness.
type Unavailability struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range. Both ends are
// inclusive: a slot sitting exactly on Start or End is blocked.
func (u Unavailability) Contains(t time.Time) bool {
	return !u.Start.After(t) && !u.End.Before(t)
}
