package server

import (
	"net/http"

	"github.com/dmreiter/planbook/internal/schedule"
)

type allocateRequest struct {
	ResourceID int64 `json:"resource_id"`
}

type allocationResponse struct {
	ID         int64 `json:"id"`
	EventID    int64 `json:"event_id"`
	ResourceID int64 `json:"resource_id"`
}

// handleAllocate binds a resource to an existing event, subject to the same
// conflict check as event creation.
func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := s.repo.GetEvent(r.Context(), eventID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if event == nil {
		s.writeDomainError(w, schedule.ErrEventNotFound)
		return
	}

	var req allocateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ResourceID <= 0 {
		s.writeError(w, http.StatusBadRequest, "resource_id is required")
		return
	}

	conflicts, err := s.checkConflicts(r.Context(), event.Interval(), []int64{req.ResourceID}, eventID)
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

	allocation, err := s.repo.CreateAllocation(r.Context(), eventID, req.ResourceID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, allocationResponse{
		ID:         allocation.ID,
		EventID:    allocation.EventID,
		ResourceID: allocation.ResourceID,
	})
}

// handleDeallocate removes the binding between an event and a resource.
func (s *Server) handleDeallocate(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.DeleteAllocation(r.Context(), eventID, resourceID); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
