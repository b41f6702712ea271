package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmreiter/planbook/internal/dateutil"
	"github.com/dmreiter/planbook/internal/schedule"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes data as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// writeError sends a JSON error body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain and parse errors onto HTTP statuses.
// Unrecognized errors become an opaque 500; details stay in the logs.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrEventNotFound),
		errors.Is(err, schedule.ErrResourceNotFound),
		errors.Is(err, schedule.ErrAllocationNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, schedule.ErrDuplicateAllocation):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, schedule.ErrInvalidInterval),
		errors.Is(err, schedule.ErrEmptyName),
		errors.Is(err, schedule.ErrInvalidCategory),
		errors.Is(err, dateutil.ErrInvalidTimestamp),
		errors.Is(err, dateutil.ErrInvalidDateFormat):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("internal error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
