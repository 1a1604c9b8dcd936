package availability

import (
	"time"

	"meetbook/internal/model"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 30 * time.Minute

// Slot is one point on the availability grid, identified by its start
// instant.
type Slot struct {
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
}

// StartOfWeek returns midnight of the last occurrence of day on or before t.
func StartOfWeek(t time.Time, day time.Weekday) time.Time {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	diff := (7 + int(date.Weekday()) - int(day)) % 7
	return date.AddDate(0, 0, -diff)
}

// Calculate walks the work week starting at weekStart (Monday 00:00 through
// the following Saturday 00:00, exclusive) in 30-minute steps and marks each
// slot bookable unless it is covered by an unavailability or falls before
// now plus the scheduling notice. The walk snaps forward to MinHourUTC at
// the start of each day and jumps to the next day once MaxHourUTC is
// reached, so slots are only emitted inside the per-day hour band.
//
// The caller supplies now so that the result is deterministic.
func Calculate(weekStart time.Time, settings model.BookingSettings, unavailabilities []model.Unavailability, now time.Time) []Slot {
	earliest := now.Add(time.Duration(settings.MinScheduleNoticeHours) * time.Hour)
	end := weekStart.AddDate(0, 0, 5)

	var slots []Slot
	current := weekStart
	for current.Before(end) {
		if current.Hour() < settings.MinHourUTC {
			current = atHour(current, settings.MinHourUTC)
		}
		if current.Hour() >= settings.MaxHourUTC {
			// Degenerate hour band: no slots for this day.
			current = atHour(current.AddDate(0, 0, 1), settings.MinHourUTC)
			continue
		}

		available := !anyContains(unavailabilities, current) && current.After(earliest)
		slots = append(slots, Slot{Start: current, Available: available})

		current = current.Add(SlotDuration)
		if current.Hour() >= settings.MaxHourUTC {
			current = atHour(current.AddDate(0, 0, 1), settings.MinHourUTC)
		}
	}
	return slots
}

func anyContains(unavailabilities []model.Unavailability, t time.Time) bool {
	for _, u := range unavailabilities {
		if u.Contains(t) {
			return true
		}
	}
	return false
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
