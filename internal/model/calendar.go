package model

import "time"

// Meeting visibility and busy-status values understood by the hub API.
const (
	VisibilityParticipants = "PARTICIPANTS"
	BusyStatusBusy         = "BUSY"
)

// Meeting is a calendar meeting, possibly a recurring master.
type Meeting struct {
	ID             string         `json:"id"`
	Summary        string         `json:"summary"`
	OccurrenceRule OccurrenceRule `json:"occurrence_rule"`
}

// OccurrenceRule describes when a meeting occurs. Recurrence is set on
// recurring masters; concrete occurrences are expanded by the calendar
// service, not locally.
type OccurrenceRule struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	AllDay     bool            `json:"all_day"`
	Timezone   string          `json:"timezone,omitempty"`
	Recurrence *RecurrenceRule `json:"recurrence_rule,omitempty"`
}

// RecurrenceRule carries the raw recurrence definition. The hub expands it;
// the rule text is opaque to this service.
type RecurrenceRule struct {
	Rule string `json:"rule"`
}

// Occurrence is one concrete instance of a recurring meeting.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Absence is a directory-level absence (vacation, sick leave).
type Absence struct {
	ID    string    `json:"id"`
	Since time.Time `json:"since"`
	Till  time.Time `json:"till"`
}

// MeetingSpec is the request body for creating a meeting.
type MeetingSpec struct {
	Summary              string    `json:"summary"`
	Description          string    `json:"description,omitempty"`
	Start                time.Time `json:"start"`
	End                  time.Time `json:"end"`
	Timezone             string    `json:"timezone"`
	BusyStatus           string    `json:"busy_status"`
	AllDay               bool      `json:"all_day"`
	ProfileIDs           []string  `json:"profile_ids"`
	ExternalParticipants []string  `json:"external_participants,omitempty"`
	Visibility           string    `json:"visibility"`
	Organizer            string    `json:"organizer,omitempty"`
}

// HourMinute is a time of day with minute precision.
type HourMinute struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// On places the time of day on the calendar date of day.
func (h HourMinute) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), h.Hour, h.Minute, 0, 0, day.Location())
}

// DayHours is the working-hours entry for one weekday (0=Sunday..6=Saturday,
// matching time.Weekday numbering).
type DayHours struct {
	Day   int        `json:"day"`
	Since HourMinute `json:"since"`
	Till  HourMinute `json:"till"`
}

// WorkingDaysSpec is a weekly working-hours specification, valid over an
// optional [DateStart, DateEnd] window or unconditionally when both bounds
// are absent.
type WorkingDaysSpec struct {
	ID        string     `json:"id"`
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	Days      []DayHours `json:"working_hours,omitempty"`
}

// Covers reports whether the spec is applicable to the full [since, till]
// range: either both bounds are absent, or the window encloses the range.
// A spec with only one bound set never covers anything.
func (s WorkingDaysSpec) Covers(since, till time.Time) bool {
	if s.DateStart == nil && s.DateEnd == nil {
		return true
	}
	if s.DateStart == nil || s.DateEnd == nil {
		return false
	}
	return !s.DateStart.After(since) && !s.DateEnd.Before(till)
}

// HoursFor returns the entry for the given weekday, or nil when the spec has
// none (the whole day stays unblocked by working hours).
func (s WorkingDaysSpec) HoursFor(day time.Weekday) *DayHours {
	for i := range s.Days {
		if s.Days[i].Day == int(day) {
			return &s.Days[i]
		}
	}
	return nil
}
