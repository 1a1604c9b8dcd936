package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbook/internal/model"
)

func nineToFive() []model.DayHours {
	days := make([]model.DayHours, 0, 5)
	for d := 1; d <= 5; d++ {
		days = append(days, model.DayHours{
			Day:   d,
			Since: model.HourMinute{Hour: 9},
			Till:  model.HourMinute{Hour: 17},
		})
	}
	return days
}

func TestResolveWorkingHours_NoCoveringSpec(t *testing.T) {
	since := monday
	till := monday.AddDate(0, 0, 5)

	assert.Nil(t, ResolveWorkingHours(nil, since, till))

	// Spec window ends mid-range: not applied at all, not partially.
	start := datetime(2026, 1, 1, 0, 0)
	end := datetime(2026, 3, 4, 0, 0)
	partial := model.WorkingDaysSpec{ID: "w1", DateStart: &start, DateEnd: &end, Days: nineToFive()}
	assert.Nil(t, ResolveWorkingHours([]model.WorkingDaysSpec{partial}, since, till))
}

func TestResolveWorkingHours_Blocks(t *testing.T) {
	since := monday
	till := monday.AddDate(0, 0, 5)

	spec := model.WorkingDaysSpec{ID: "w42", Days: nineToFive()}
	blocks := ResolveWorkingHours([]model.WorkingDaysSpec{spec}, since, till)

	// Monday..Friday covered, two blocks each. The trailing Saturday has no
	// weekday entry and stays unblocked.
	require.Len(t, blocks, 10)
	for _, b := range blocks {
		assert.Equal(t, "WHw42", b.ID)
	}

	morning := blocks[0]
	assert.Equal(t, monday, morning.Start)
	assert.Equal(t, datetime(2026, 3, 2, 9, 0), morning.End)

	evening := blocks[1]
	assert.Equal(t, datetime(2026, 3, 2, 17, 0), evening.Start)
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC), evening.End)
}

func TestResolveWorkingHours_FirstCoveringSpecWins(t *testing.T) {
	since := monday
	till := monday.AddDate(0, 0, 5)

	start := datetime(2026, 1, 1, 0, 0)
	end := datetime(2026, 12, 31, 0, 0)
	bounded := model.WorkingDaysSpec{ID: "bounded", DateStart: &start, DateEnd: &end, Days: nineToFive()}
	unbounded := model.WorkingDaysSpec{ID: "unbounded", Days: nineToFive()}

	blocks := ResolveWorkingHours([]model.WorkingDaysSpec{bounded, unbounded}, since, till)
	require.NotEmpty(t, blocks)
	assert.Equal(t, "WHbounded", blocks[0].ID)
}

func TestResolveWorkingHours_DayWithoutEntry(t *testing.T) {
	since := monday
	till := monday.AddDate(0, 0, 5)

	// Only Tuesday declared: every other day stays unblocked.
	spec := model.WorkingDaysSpec{ID: "w1", Days: []model.DayHours{
		{Day: 2, Since: model.HourMinute{Hour: 10}, Till: model.HourMinute{Hour: 16}},
	}}
	blocks := ResolveWorkingHours([]model.WorkingDaysSpec{spec}, since, till)

	require.Len(t, blocks, 2)
	assert.Equal(t, datetime(2026, 3, 3, 0, 0), blocks[0].Start)
	assert.Equal(t, datetime(2026, 3, 3, 10, 0), blocks[0].End)
	assert.Equal(t, datetime(2026, 3, 3, 16, 0), blocks[1].Start)
}
