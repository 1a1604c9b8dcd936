package api

import (
	"encoding/json"
	"net/http"
	"time"

	"meetbook/internal/booking"
	"meetbook/internal/metrics"
)

type bookingRequest struct {
	Username string    `json:"username"`
	When     time.Time `json:"when"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Summary  string    `json:"summary"`
}

type bookingResponse struct {
	MeetingID  string    `json:"meeting_id"`
	MeetingURL string    `json:"meeting_url"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Message    string    `json:"message"`
}

// handleCreateBooking serves POST /api/bookings.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req bookingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	confirmation, err := s.booking.RequestBooking(r.Context(), booking.Request{
		Username: req.Username,
		When:     req.When,
		Name:     req.Name,
		Email:    req.Email,
		Summary:  req.Summary,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookingResponse{
		MeetingID:  confirmation.MeetingID,
		MeetingURL: confirmation.MeetingURL,
		Start:      confirmation.Start,
		End:        confirmation.End,
		Message:    confirmation.Message,
	})
}
