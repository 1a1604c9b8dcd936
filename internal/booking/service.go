// Package booking validates booking requests and turns them into calendar
// meetings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"meetbook/internal/audit"
	"meetbook/internal/availability"
	"meetbook/internal/metrics"
	"meetbook/internal/model"
	"meetbook/internal/notify"
)

const meetingTitlePrefix = "[MeetBook] Meeting with "

// ErrValidation marks a rejected booking request with missing or malformed
// fields. Nothing is mutated when it is returned.
var ErrValidation = errors.New("invalid booking request")

// DirectoryGateway resolves the booked profile.
type DirectoryGateway interface {
	GetProfile(ctx context.Context, id model.ProfileIdentifier) (*model.Profile, error)
}

// MeetingCreator submits the meeting to the calendar.
type MeetingCreator interface {
	CreateMeeting(ctx context.Context, spec model.MeetingSpec) (*model.Meeting, error)
}

// Recorder appends booking requests to the audit trail.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) error
}

// Request is a visitor's booking form.
type Request struct {
	Username string    `json:"username"`
	When     time.Time `json:"when"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Summary  string    `json:"summary"`
}

// Validate checks the required form fields.
func (r Request) Validate() error {
	switch {
	case r.Username == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case r.When.IsZero():
		return fmt.Errorf("%w: when is required", ErrValidation)
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Email == "" || !strings.Contains(r.Email, "@"):
		return fmt.Errorf("%w: a valid e-mail address is required", ErrValidation)
	case r.Summary == "":
		return fmt.Errorf("%w: summary is required", ErrValidation)
	}
	return nil
}

// Confirmation is the successful booking outcome.
type Confirmation struct {
	MeetingID  string    `json:"meeting_id"`
	MeetingURL string    `json:"meeting_url"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Message    string    `json:"message"`
}

// Service orchestrates booking requests.
type Service struct {
	directory  DirectoryGateway
	calendar   MeetingCreator
	settings   availability.SettingsProvider
	notifier   notify.Notifier
	recorder   Recorder
	meetingURL func(meetingID string) string
	logger     zerolog.Logger
}

// NewService creates a booking service. notifier and recorder may be nil.
func NewService(
	directory DirectoryGateway,
	calendar MeetingCreator,
	settings availability.SettingsProvider,
	notifier notify.Notifier,
	recorder Recorder,
	meetingURL func(meetingID string) string,
	logger zerolog.Logger,
) *Service {
	return &Service{
		directory:  directory,
		calendar:   calendar,
		settings:   settings,
		notifier:   notifier,
		recorder:   recorder,
		meetingURL: meetingURL,
		logger:     logger.With().Str("component", "booking").Logger(),
	}
}

// RequestBooking books a fixed 30-minute meeting at req.When (normalized to
// UTC). The requested slot is not re-checked against the availability
// calendar here; the caller is expected to submit a slot it was shown as
// available.
func (s *Service) RequestBooking(ctx context.Context, req Request) (*Confirmation, error) {
	if err := req.Validate(); err != nil {
		metrics.IncBookingRequest("invalid")
		return nil, err
	}

	profile, err := s.directory.GetProfile(ctx, model.ProfileByUsername(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			metrics.IncBookingRequest("not_found")
			s.record(ctx, req, "", audit.OutcomeRejected)
		}
		return nil, err
	}

	settings, err := s.settings.Retrieve(profile.Username)
	if err != nil {
		return nil, fmt.Errorf("retrieve settings: %w", err)
	}
	if !settings.Enabled {
		metrics.IncBookingRequest("disabled")
		s.record(ctx, req, "", audit.OutcomeRejected)
		return nil, model.ErrBookingDisabled
	}

	start := req.When.UTC()
	end := start.Add(availability.SlotDuration)

	meeting, err := s.calendar.CreateMeeting(ctx, model.MeetingSpec{
		Summary:              meetingTitlePrefix + req.Name,
		Description:          meetingTitlePrefix + req.Name + "\n\n" + req.Summary,
		Start:                start,
		End:                  end,
		Timezone:             "UTC",
		BusyStatus:           model.BusyStatusBusy,
		AllDay:               false,
		ProfileIDs:           []string{profile.ID},
		ExternalParticipants: []string{req.Email},
		Visibility:           model.VisibilityParticipants,
		Organizer:            profile.ID,
	})
	if err != nil {
		metrics.IncBookingRequest("gateway_error")
		s.record(ctx, req, "", audit.OutcomeFailed)
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	metrics.IncBookingRequest("booked")
	s.record(ctx, req, meeting.ID, audit.OutcomeBooked)

	url := s.meetingURL(meeting.ID)
	if settings.NotifyViaChat && s.notifier != nil {
		// Best effort: a failed notification never fails the booking.
		if err := s.notifier.Notify(ctx, profile.ID, "📅 A new meeting was booked.\n\n"+url); err != nil {
			metrics.IncNotifyFailure()
			s.logger.Error().Err(err).Str("username", profile.Username).Msg("booking notification failed")
		}
	}

	s.logger.Info().
		Str("username", profile.Username).
		Str("meeting_id", meeting.ID).
		Time("start", start).
		Msg("meeting booked")

	return &Confirmation{
		MeetingID:  meeting.ID,
		MeetingURL: url,
		Start:      start,
		End:        end,
		Message:    "Thank you, a meeting has been booked!",
	}, nil
}

func (s *Service) record(ctx context.Context, req Request, meetingID, outcome string) {
	if s.recorder == nil {
		return
	}
	start := req.When.UTC()
	entry := audit.Entry{
		ID:           uuid.NewString(),
		Username:     req.Username,
		VisitorName:  req.Name,
		VisitorEmail: req.Email,
		Start:        start,
		End:          start.Add(availability.SlotDuration),
		MeetingID:    meetingID,
		Outcome:      outcome,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("audit record failed")
	}
}
