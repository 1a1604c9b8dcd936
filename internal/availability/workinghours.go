package availability

import (
	"time"

	"meetbook/internal/model"
)

// workingHoursTag prefixes the provenance id of working-hours blocks.
const workingHoursTag = "WH"

// ResolveWorkingHours turns the first working-days spec covering the full
// [since, till] range into blocking intervals outside the declared hours:
// for every day with an entry for its weekday, [00:00, since] and
// [till, 23:59:59]. Days without an entry stay unblocked here; the per-user
// hour band is an independent constraint applied by the calculator.
//
// When no spec covers the range, no blocks are produced at all. Partially
// overlapping specs are never applied partially.
func ResolveWorkingHours(specs []model.WorkingDaysSpec, since, till time.Time) []model.Unavailability {
	var spec *model.WorkingDaysSpec
	for i := range specs {
		if specs[i].Covers(since, till) {
			spec = &specs[i]
			break
		}
	}
	if spec == nil || len(spec.Days) == 0 {
		return nil
	}

	tag := workingHoursTag + spec.ID
	lastDay := dateOf(till)

	var blocks []model.Unavailability
	for day := dateOf(since); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		hours := spec.HoursFor(day.Weekday())
		if hours == nil {
			continue
		}
		blocks = append(blocks,
			model.Unavailability{ID: tag, Start: day, End: hours.Since.On(day)},
			model.Unavailability{ID: tag, Start: hours.Till.On(day), End: endOfDay(day)},
		)
	}
	return blocks
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
}
