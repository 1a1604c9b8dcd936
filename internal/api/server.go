// Package api exposes the availability, booking and settings endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"meetbook/internal/audit"
	"meetbook/internal/availability"
	"meetbook/internal/booking"
	"meetbook/internal/model"
)

// AvailabilityService computes week views.
type AvailabilityService interface {
	WeekView(ctx context.Context, username string, startDate *time.Time, now time.Time) (*availability.WeekView, error)
}

// BookingService handles booking requests.
type BookingService interface {
	RequestBooking(ctx context.Context, req booking.Request) (*booking.Confirmation, error)
}

// SettingsStore reads and writes per-user booking settings.
type SettingsStore interface {
	Has(username string) bool
	Retrieve(username string) (model.BookingSettings, error)
	Store(username string, settings model.BookingSettings) error
}

// AuditLog lists the booking audit trail.
type AuditLog interface {
	List(ctx context.Context) ([]audit.Entry, error)
}

// Server is the public HTTP API.
type Server struct {
	server       *http.Server
	availability AvailabilityService
	booking      BookingService
	settings     SettingsStore
	auditLog     AuditLog
	apiKey       string
	logger       zerolog.Logger
}

// NewServer wires the API routes. auditLog may be nil when auditing is
// disabled.
func NewServer(
	port int,
	apiKey string,
	availabilitySvc AvailabilityService,
	bookingSvc BookingService,
	settings SettingsStore,
	auditLog AuditLog,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		availability: availabilitySvc,
		booking:      bookingSvc,
		settings:     settings,
		auditLog:     auditLog,
		apiKey:       apiKey,
		logger:       logger.With().Str("component", "api").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/bookings", s.handleCreateBooking)
	mux.HandleFunc("/api/settings", s.requireAPIKey(s.handleSettings))
	mux.HandleFunc("/api/audit/export", s.requireAPIKey(s.handleAuditExport))

	s.server = &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	return s
}

// Handler returns the route handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.logger.Info().Str("addr", s.server.Addr).Msg("API server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.Header.Get("X-API-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next(w, r)
	}
}

// writeDomainError maps service errors onto HTTP outcomes. An unknown
// profile and a disabled profile answer identically so the API does not
// reveal which usernames exist.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrProfileNotFound), errors.Is(err, model.ErrBookingDisabled):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, booking.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusBadGateway, "upstream error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
