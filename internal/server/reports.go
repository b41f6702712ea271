package server

import (
	"net/http"
	"time"

	"github.com/dmreiter/planbook/internal/dateutil"
	"github.com/dmreiter/planbook/internal/schedule"
)

type bookingUsageResponse struct {
	AllocationID int64     `json:"allocation_id"`
	EventID      int64     `json:"event_id"`
	EventName    string    `json:"event_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Hours        float64   `json:"hours"`
}

type utilisationResponse struct {
	ResourceID int64                  `json:"resource_id"`
	Start      time.Time              `json:"start"`
	End        time.Time              `json:"end"`
	TotalHours float64                `json:"total_hours"`
	Bookings   []bookingUsageResponse `json:"bookings"`
}

// parseRangeParam accepts either a full timestamp or a bare date.
func parseRangeParam(s string) (time.Time, error) {
	if t, err := dateutil.ParseTimestamp(s); err == nil {
		return t, nil
	}
	return dateutil.ParseDate(s)
}

// handleUtilisation reports total booked hours of a resource within a query
// window, clamped to the window, plus the bookings that contribute.
func (s *Server) handleUtilisation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := s.repo.GetResource(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if resource == nil {
		s.writeDomainError(w, schedule.ErrResourceNotFound)
		return
	}

	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")
	if startRaw == "" || endRaw == "" {
		s.writeError(w, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	start, err := parseRangeParam(startRaw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "start: "+err.Error())
		return
	}
	end, err := parseRangeParam(endRaw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "end: "+err.Error())
		return
	}

	window, err := schedule.NewInterval(start, end)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	bookings, err := s.repo.ListBookingsByResourceInRange(r.Context(), id, window.Start, window.End)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	report, err := schedule.Utilisation(id, window, bookings)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := utilisationResponse{
		ResourceID: report.ResourceID,
		Start:      report.Window.Start,
		End:        report.Window.End,
		TotalHours: report.TotalHours,
		Bookings:   make([]bookingUsageResponse, 0, len(report.Bookings)),
	}
	for _, b := range report.Bookings {
		resp.Bookings = append(resp.Bookings, bookingUsageResponse{
			AllocationID: b.AllocationID,
			EventID:      b.EventID,
			EventName:    b.EventName,
			Start:        b.Interval.Start,
			End:          b.Interval.End,
			Hours:        b.Hours,
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}
