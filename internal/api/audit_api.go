package api

import (
	"fmt"
	"net/http"
	"time"

	"meetbook/internal/audit"
	"meetbook/internal/metrics"
)

// handleAuditExport serves GET /api/audit/export as an Excel download.
func (s *Server) handleAuditExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("audit_export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.auditLog == nil {
		writeError(w, http.StatusNotFound, "audit trail is disabled")
		return
	}

	entries, err := s.auditLog.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list audit entries")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := audit.WriteExcel(entries, w); err != nil {
		s.logger.Error().Err(err).Msg("write audit export")
	}
}
