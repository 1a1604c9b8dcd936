package api

import (
	"encoding/json"
	"net/http"

	"meetbook/internal/metrics"
	"meetbook/internal/model"
)

// handleSettings serves GET and PUT /api/settings?username=. A GET for a
// user with no stored settings opts them in with the enable defaults.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("settings")

	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getSettings(w, username)
	case http.MethodPut:
		s.putSettings(w, r, username)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) getSettings(w http.ResponseWriter, username string) {
	if !s.settings.Has(username) {
		if err := s.settings.Store(username, model.EnableDefaults(username)); err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("store default settings")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s.logger.Info().Str("username", username).Msg("settings created with defaults")
	}

	settings, err := s.settings.Retrieve(username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("retrieve settings")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request, username string) {
	var settings model.BookingSettings
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	settings.Username = username

	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.settings.Store(username, settings); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("store settings")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
