package model

import "fmt"

// BookingSettings holds the per-user booking configuration.
type BookingSettings struct {
	Enabled                bool   `json:"enabled"`
	Username               string `json:"username"`
	MinHourUTC             int    `json:"min_hour_utc"`
	MaxHourUTC             int    `json:"max_hour_utc"`
	MinScheduleNoticeHours int    `json:"min_schedule_notice_hours"`
	NotifyViaChat          bool   `json:"notify_via_chat"`
}

// DisabledSettings returns the settings used for a user who never opted in.
func DisabledSettings(username string) BookingSettings {
	return BookingSettings{
		Enabled:  false,
		Username: username,
	}
}

// EnableDefaults returns the settings written on first opt-in.
func EnableDefaults(username string) BookingSettings {
	return BookingSettings{
		Enabled:                true,
		Username:               username,
		MinHourUTC:             7,
		MaxHourUTC:             15,
		MinScheduleNoticeHours: 1,
		NotifyViaChat:          true,
	}
}

// Validate checks field ranges on a settings update. The hour band itself
// (min below max) is not enforced; the calculator handles a degenerate band
// by emitting no slots for the day.
func (s BookingSettings) Validate() error {
	if s.Username == "" {
		return fmt.Errorf("username is required")
	}
	if s.MinHourUTC < 0 || s.MinHourUTC > 23 {
		return fmt.Errorf("min_hour_utc must be in range 0..23")
	}
	if s.MaxHourUTC < 0 || s.MaxHourUTC > 23 {
		return fmt.Errorf("max_hour_utc must be in range 0..23")
	}
	if s.MinScheduleNoticeHours < 0 {
		return fmt.Errorf("min_schedule_notice_hours must not be negative")
	}
	return nil
}
