package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmreiter/planbook/internal/dateutil"
	"github.com/dmreiter/planbook/internal/schedule"
)

type eventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	ResourceIDs []int64 `json:"resource_ids"`
}

type eventResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	ResourceIDs   []int64   `json:"resource_ids,omitempty"`
}

func newEventResponse(e *schedule.Event) eventResponse {
	return eventResponse{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Start:         e.Start,
		End:           e.End,
		DurationHours: e.DurationHours(),
	}
}

// conflictEntry describes one existing booking that blocks a candidate slot.
type conflictEntry struct {
	ResourceID   int64     `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	EventID      int64     `json:"event_id"`
	EventName    string    `json:"event_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

type conflictResponse struct {
	Error     string          `json:"error"`
	Conflicts []conflictEntry `json:"conflicts"`
}

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// dedupeIDs removes repeated ids while keeping order. A nil slice stays nil
// so callers can distinguish an absent field from an empty list. Handlers
// dedupe before persisting; a repeated id would pass the conflict check and
// then trip the UNIQUE constraint with the event already written.
func dedupeIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// checkConflicts runs the conflict detector against every requested resource.
// It loads each resource's current bookings and collects the overlaps;
// excludeEventID skips the event being edited. An unknown resource id yields
// a wrapped ErrResourceNotFound.
func (s *Server) checkConflicts(ctx context.Context, candidate schedule.Interval, resourceIDs []int64, excludeEventID int64) ([]conflictEntry, error) {
	var entries []conflictEntry
	seen := make(map[int64]bool)

	for _, rid := range resourceIDs {
		if seen[rid] {
			continue
		}
		seen[rid] = true

		res, err := s.repo.GetResource(ctx, rid)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, fmt.Errorf("resource %d: %w", rid, schedule.ErrResourceNotFound)
		}

		bookings, err := s.repo.ListBookingsByResource(ctx, rid)
		if err != nil {
			return nil, err
		}

		for _, c := range schedule.FindConflicts(candidate, bookings, excludeEventID) {
			entries = append(entries, conflictEntry{
				ResourceID:   rid,
				ResourceName: res.Name,
				EventID:      c.EventID,
				EventName:    c.EventName,
				Start:        c.Interval.Start,
				End:          c.Interval.End,
			})
		}
	}

	return entries, nil
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ResourceIDs = dedupeIDs(req.ResourceIDs)

	start, err := dateutil.ParseTimestamp(req.Start)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "start: "+err.Error())
		return
	}
	end, err := dateutil.ParseTimestamp(req.End)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "end: "+err.Error())
		return
	}

	event, err := schedule.NewEvent(req.Name, req.Description, start, end)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	conflicts, err := s.checkConflicts(r.Context(), event.Interval(), req.ResourceIDs, 0)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(conflicts) > 0 {
		s.writeJSON(w, http.StatusConflict, conflictResponse{
			Error:     "scheduling conflict",
			Conflicts: conflicts,
		})
		return
	}

	if err := s.repo.CreateEvent(r.Context(), event); err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(req.ResourceIDs) > 0 {
		if err := s.repo.ReplaceEventAllocations(r.Context(), event.ID, req.ResourceIDs); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	resp := newEventResponse(event)
	resp.ResourceIDs = req.ResourceIDs
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := s.repo.GetEvent(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if event == nil {
		s.writeDomainError(w, schedule.ErrEventNotFound)
		return
	}

	allocations, err := s.repo.ListAllocationsByEvent(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := newEventResponse(event)
	for _, a := range allocations {
		resp.ResourceIDs = append(resp.ResourceIDs, a.ResourceID)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.repo.ListEvents(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, newEventResponse(e))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.repo.GetEvent(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if existing == nil {
		s.writeDomainError(w, schedule.ErrEventNotFound)
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ResourceIDs = dedupeIDs(req.ResourceIDs)

	start, err := dateutil.ParseTimestamp(req.Start)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "start: "+err.Error())
		return
	}
	end, err := dateutil.ParseTimestamp(req.End)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "end: "+err.Error())
		return
	}

	updated, err := schedule.NewEvent(req.Name, req.Description, start, end)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	// A nil resource_ids field keeps the current allocations; the conflict
	// check then runs against them so a reschedule cannot double-book.
	resourceIDs := req.ResourceIDs
	if resourceIDs == nil {
		allocations, err := s.repo.ListAllocationsByEvent(r.Context(), id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		for _, a := range allocations {
			resourceIDs = append(resourceIDs, a.ResourceID)
		}
	}

	conflicts, err := s.checkConflicts(r.Context(), updated.Interval(), resourceIDs, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if len(conflicts) > 0 {
		s.writeJSON(w, http.StatusConflict, conflictResponse{
			Error:     "scheduling conflict",
			Conflicts: conflicts,
		})
		return
	}

	if err := s.repo.UpdateEvent(r.Context(), updated); err != nil {
		s.writeDomainError(w, err)
		return
	}
	if req.ResourceIDs != nil {
		if err := s.repo.ReplaceEventAllocations(r.Context(), id, req.ResourceIDs); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	resp := newEventResponse(updated)
	resp.ResourceIDs = resourceIDs
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.DeleteEvent(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
