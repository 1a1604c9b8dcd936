package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"meetbook/internal/model"
)

// DirectoryGateway is the slice of the hub API the availability service
// reads profiles and working-days specs from.
type DirectoryGateway interface {
	GetProfile(ctx context.Context, id model.ProfileIdentifier) (*model.Profile, error)
	GetWorkingDays(ctx context.Context, profileID string) ([]model.WorkingDaysSpec, error)
}

// CalendarGateway supplies the busy intervals of a profile.
type CalendarGateway interface {
	GetAbsences(ctx context.Context, profileID string, since, till time.Time) ([]model.Absence, error)
	GetMeetings(ctx context.Context, profileID string, since, till time.Time) ([]model.Meeting, error)
	GetRecurringOccurrences(ctx context.Context, meetingID string, since, till time.Time) ([]model.Occurrence, error)
}

// SettingsProvider supplies per-user booking settings.
type SettingsProvider interface {
	Retrieve(username string) (model.BookingSettings, error)
}

// WeekView is the computed availability calendar for one work week.
type WeekView struct {
	Profile      model.Profile
	Settings     model.BookingSettings
	WeekStart    time.Time
	NextWeek     time.Time
	PreviousWeek time.Time
	Slots        []Slot
}

// Service computes availability calendars from directory and calendar data.
type Service struct {
	directory DirectoryGateway
	calendar  CalendarGateway
	settings  SettingsProvider
	logger    zerolog.Logger
}

// NewService creates an availability service.
func NewService(directory DirectoryGateway, calendar CalendarGateway, settings SettingsProvider, logger zerolog.Logger) *Service {
	return &Service{
		directory: directory,
		calendar:  calendar,
		settings:  settings,
		logger:    logger.With().Str("component", "availability").Logger(),
	}
}

// WeekView computes the availability calendar for the work week containing
// startDate (or the week containing now when startDate is nil).
//
// It returns model.ErrProfileNotFound for unknown usernames and
// model.ErrBookingDisabled when the user never opted in; callers surface
// both identically.
func (s *Service) WeekView(ctx context.Context, username string, startDate *time.Time, now time.Time) (*WeekView, error) {
	profile, err := s.directory.GetProfile(ctx, model.ProfileByUsername(username))
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Retrieve(profile.Username)
	if err != nil {
		return nil, fmt.Errorf("retrieve settings: %w", err)
	}
	if !settings.Enabled {
		return nil, model.ErrBookingDisabled
	}

	requested := now
	if startDate != nil {
		requested = *startDate
	}
	startingAfter := StartOfWeek(requested, time.Monday)
	endingBefore := startingAfter.AddDate(0, 0, 5)

	unavailabilities, err := s.collectUnavailabilities(ctx, profile, startingAfter, endingBefore)
	if err != nil {
		return nil, err
	}

	slots := Calculate(startingAfter, settings, unavailabilities, now)
	s.logger.Debug().
		Str("username", profile.Username).
		Time("week_start", startingAfter).
		Int("unavailabilities", len(unavailabilities)).
		Int("slots", len(slots)).
		Msg("availability computed")

	return &WeekView{
		Profile:      *profile,
		Settings:     settings,
		WeekStart:    startingAfter,
		NextWeek:     startingAfter.AddDate(0, 0, 7),
		PreviousWeek: startingAfter.AddDate(0, 0, -7),
		Slots:        slots,
	}, nil
}

// collectUnavailabilities gathers every busy interval overlapping the
// requested range: absences, non-working-day holidays, meeting occurrences,
// expanded recurring occurrences, then working-hours blocks.
func (s *Service) collectUnavailabilities(ctx context.Context, profile *model.Profile, startingAfter, endingBefore time.Time) ([]model.Unavailability, error) {
	var unavailabilities []model.Unavailability

	absences, err := s.calendar.GetAbsences(ctx, profile.ID, startingAfter, endingBefore)
	if err != nil {
		return nil, fmt.Errorf("get absences: %w", err)
	}
	for _, a := range absences {
		unavailabilities = append(unavailabilities, model.Unavailability{ID: a.ID, Start: a.Since, End: a.Till})
	}

	for _, h := range profile.Holidays {
		if h.WorkingDay {
			continue
		}
		unavailabilities = append(unavailabilities, model.Unavailability{ID: h.ID, Start: h.Date, End: h.Date.AddDate(0, 0, 1)})
	}

	meetings, err := s.calendar.GetMeetings(ctx, profile.ID, startingAfter, endingBefore)
	if err != nil {
		return nil, fmt.Errorf("get meetings: %w", err)
	}
	for _, m := range meetings {
		unavailabilities = append(unavailabilities, model.Unavailability{ID: m.ID, Start: m.OccurrenceRule.Start, End: m.OccurrenceRule.End})
	}

	for _, m := range meetings {
		if m.OccurrenceRule.Recurrence == nil {
			continue
		}
		occurrences, err := s.calendar.GetRecurringOccurrences(ctx, m.ID, startingAfter, endingBefore)
		if err != nil {
			return nil, fmt.Errorf("get occurrences for meeting %s: %w", m.ID, err)
		}
		for _, o := range occurrences {
			unavailabilities = append(unavailabilities, model.Unavailability{ID: m.ID, Start: o.Start, End: o.End})
		}
	}

	workingDays, err := s.directory.GetWorkingDays(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("get working days: %w", err)
	}
	unavailabilities = append(unavailabilities, ResolveWorkingHours(workingDays, startingAfter, endingBefore)...)

	return unavailabilities, nil
}
