package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbook/internal/model"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// Monday March 2nd, 2026.
var monday = datetime(2026, 3, 2, 0, 0)

func testSettings() model.BookingSettings {
	s := model.EnableDefaults("alice")
	return s
}

func slotAt(t *testing.T, slots []Slot, at time.Time) *Slot {
	t.Helper()
	for i := range slots {
		if slots[i].Start.Equal(at) {
			return &slots[i]
		}
	}
	return nil
}

func TestStartOfWeek(t *testing.T) {
	assert.Equal(t, monday, StartOfWeek(datetime(2026, 3, 4, 15, 45), time.Monday))
	assert.Equal(t, monday, StartOfWeek(monday, time.Monday))
	assert.Equal(t, monday, StartOfWeek(datetime(2026, 3, 8, 23, 59), time.Monday))
	// A Monday next week maps to next week's start.
	assert.Equal(t, monday.AddDate(0, 0, 7), StartOfWeek(datetime(2026, 3, 9, 0, 0), time.Monday))
}

func TestCalculate_WeekShape(t *testing.T) {
	now := datetime(2026, 2, 23, 12, 0) // previous week, notice never interferes
	slots := Calculate(monday, testSettings(), nil, now)

	// 7:00..14:30 per day, Monday through Friday.
	require.Len(t, slots, 16*5)

	end := monday.AddDate(0, 0, 5)
	for i, s := range slots {
		assert.False(t, s.Start.Before(monday), "slot %d before week start", i)
		assert.True(t, s.Start.Before(end), "slot %d beyond week end", i)
		assert.True(t, s.Start.Minute() == 0 || s.Start.Minute() == 30)
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(s.Start), "slots not strictly increasing at %d", i)
		}
	}

	// Band boundaries: first slot of the day at min hour, last at 14:30,
	// nothing at 15:00.
	assert.NotNil(t, slotAt(t, slots, datetime(2026, 3, 2, 7, 0)))
	assert.NotNil(t, slotAt(t, slots, datetime(2026, 3, 2, 14, 30)))
	assert.Nil(t, slotAt(t, slots, datetime(2026, 3, 2, 15, 0)))
	assert.Nil(t, slotAt(t, slots, datetime(2026, 3, 2, 6, 30)))
}

func TestCalculate_NoticePeriod(t *testing.T) {
	// Monday 06:00 with one hour notice: 07:00 is exactly the cutoff and
	// stays unavailable, 07:30 onward is bookable.
	now := datetime(2026, 3, 2, 6, 0)
	slots := Calculate(monday, testSettings(), nil, now)

	first := slotAt(t, slots, datetime(2026, 3, 2, 7, 0))
	require.NotNil(t, first)
	assert.False(t, first.Available)

	second := slotAt(t, slots, datetime(2026, 3, 2, 7, 30))
	require.NotNil(t, second)
	assert.True(t, second.Available)

	later := slotAt(t, slots, datetime(2026, 3, 2, 8, 30))
	require.NotNil(t, later)
	assert.True(t, later.Available)
}

func TestCalculate_InclusiveBoundaries(t *testing.T) {
	now := datetime(2026, 2, 23, 12, 0)
	busy := []model.Unavailability{
		{ID: "m1", Start: datetime(2026, 3, 2, 10, 0), End: datetime(2026, 3, 2, 11, 0)},
	}
	slots := Calculate(monday, testSettings(), busy, now)

	for _, at := range []time.Time{
		datetime(2026, 3, 2, 10, 0),
		datetime(2026, 3, 2, 10, 30),
		datetime(2026, 3, 2, 11, 0),
	} {
		s := slotAt(t, slots, at)
		require.NotNil(t, s, "missing slot %s", at)
		assert.False(t, s.Available, "slot %s should be blocked", at)
	}

	free := slotAt(t, slots, datetime(2026, 3, 2, 9, 30))
	require.NotNil(t, free)
	assert.True(t, free.Available)

	after := slotAt(t, slots, datetime(2026, 3, 2, 11, 30))
	require.NotNil(t, after)
	assert.True(t, after.Available)
}

func TestCalculate_FullDayAbsence(t *testing.T) {
	now := datetime(2026, 2, 23, 12, 0)
	wednesday := datetime(2026, 3, 4, 0, 0)
	busy := []model.Unavailability{
		{ID: "abs1", Start: wednesday, End: datetime(2026, 3, 4, 23, 59)},
	}
	slots := Calculate(monday, testSettings(), busy, now)

	for _, s := range slots {
		if s.Start.Weekday() == time.Wednesday {
			assert.False(t, s.Available, "Wednesday slot %s should be blocked", s.Start)
		} else {
			assert.True(t, s.Available, "slot %s should be free", s.Start)
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	now := datetime(2026, 3, 2, 6, 0)
	busy := []model.Unavailability{
		{ID: "m1", Start: datetime(2026, 3, 3, 9, 0), End: datetime(2026, 3, 3, 9, 30)},
	}

	first := Calculate(monday, testSettings(), busy, now)
	second := Calculate(monday, testSettings(), busy, now)
	assert.Equal(t, first, second)
}

func TestCalculate_DegenerateBand(t *testing.T) {
	settings := testSettings()
	settings.MinHourUTC = 9
	settings.MaxHourUTC = 9

	done := make(chan []Slot, 1)
	go func() {
		done <- Calculate(monday, settings, nil, datetime(2026, 2, 23, 12, 0))
	}()

	select {
	case slots := <-done:
		assert.Empty(t, slots)
	case <-time.After(2 * time.Second):
		t.Fatal("calculator did not terminate on a degenerate hour band")
	}
}

func TestCalculate_InvertedBand(t *testing.T) {
	settings := testSettings()
	settings.MinHourUTC = 15
	settings.MaxHourUTC = 7

	slots := Calculate(monday, settings, nil, datetime(2026, 2, 23, 12, 0))
	assert.Empty(t, slots)
}
