package api

import (
	"net/http"
	"time"

	"meetbook/internal/availability"
	"meetbook/internal/metrics"
)

const dateLayout = "2006-01-02"

type availabilityResponse struct {
	Username     string              `json:"username"`
	DisplayName  string              `json:"display_name"`
	WeekStart    string              `json:"week_start"`
	NextWeek     string              `json:"next_week"`
	PreviousWeek string              `json:"previous_week"`
	Settings     settingsView        `json:"settings"`
	Slots        []availability.Slot `json:"slots"`
}

type settingsView struct {
	MinHourUTC             int `json:"min_hour_utc"`
	MaxHourUTC             int `json:"max_hour_utc"`
	MinScheduleNoticeHours int `json:"min_schedule_notice_hours"`
}

// handleAvailability serves GET /api/availability?username=&start_date=.
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var startDate *time.Time
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		startDate = &parsed
	}

	view, err := s.availability.WeekView(r.Context(), username, startDate, time.Now().UTC())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	metrics.IncAvailabilityComputed()

	writeJSON(w, http.StatusOK, availabilityResponse{
		Username:     username,
		DisplayName:  view.Profile.DisplayName(),
		WeekStart:    view.WeekStart.Format(dateLayout),
		NextWeek:     view.NextWeek.Format(dateLayout),
		PreviousWeek: view.PreviousWeek.Format(dateLayout),
		Settings: settingsView{
			MinHourUTC:             view.Settings.MinHourUTC,
			MaxHourUTC:             view.Settings.MaxHourUTC,
			MinScheduleNoticeHours: view.Settings.MinScheduleNoticeHours,
		},
		Slots: view.Slots,
	})
}
