package server

import (
	"net/http"
	"time"

	"github.com/dmreiter/planbook/internal/schedule"
)

type auditBooking struct {
	AllocationID int64     `json:"allocation_id"`
	EventID      int64     `json:"event_id"`
	EventName    string    `json:"event_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

type auditPair struct {
	ResourceID   int64        `json:"resource_id"`
	ResourceName string       `json:"resource_name"`
	First        auditBooking `json:"first"`
	Second       auditBooking `json:"second"`
}

type auditResponse struct {
	Conflicts []auditPair `json:"conflicts"`
}

func newAuditBooking(b schedule.Booking) auditBooking {
	return auditBooking{
		AllocationID: b.AllocationID,
		EventID:      b.EventID,
		EventName:    b.EventName,
		Start:        b.Interval.Start,
		End:          b.Interval.End,
	}
}

// handleConflictAudit lists every pair of bookings that currently overlap on
// a shared resource. Creation and update reject conflicts, so hits here mean
// data written before those checks or behind the API's back.
func (s *Server) handleConflictAudit(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.repo.ListAllBookings(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resources, err := s.repo.ListResources(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	names := make(map[int64]string, len(resources))
	for _, res := range resources {
		names[res.ID] = res.Name
	}

	resp := auditResponse{Conflicts: make([]auditPair, 0)}
	for _, p := range schedule.AuditConflicts(bookings) {
		resp.Conflicts = append(resp.Conflicts, auditPair{
			ResourceID:   p.ResourceID,
			ResourceName: names[p.ResourceID],
			First:        newAuditBooking(p.First),
			Second:       newAuditBooking(p.Second),
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}
