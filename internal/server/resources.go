package server

import (
	"net/http"
	"time"

	"github.com/dmreiter/planbook/internal/schedule"
)

type resourceRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type resourceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func newResourceResponse(r *schedule.Resource) resourceResponse {
	return resourceResponse{
		ID:       r.ID,
		Name:     r.Name,
		Category: string(r.Category),
	}
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource, err := schedule.NewResource(req.Name, req.Category)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.repo.CreateResource(r.Context(), resource); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, newResourceResponse(resource))
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
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

	s.writeJSON(w, http.StatusOK, newResourceResponse(resource))
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.repo.ListResources(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := make([]resourceResponse, 0, len(resources))
	for _, res := range resources {
		resp = append(resp, newResourceResponse(res))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req resourceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource, err := schedule.NewResource(req.Name, req.Category)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	resource.ID = id

	if err := s.repo.UpdateResource(r.Context(), resource); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newResourceResponse(resource))
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.DeleteResource(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type dashboardResponse struct {
	UpcomingEvents []eventResponse `json:"upcoming_events"`
	EventCount     int             `json:"event_count"`
	ResourceCount  int             `json:"resource_count"`
}

// handleDashboard serves the home-page summary: the next few events plus
// total counts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	const upcomingLimit = 3

	events, err := s.repo.UpcomingEvents(r.Context(), time.Now().UTC(), upcomingLimit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	counts, err := s.repo.Counts(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := dashboardResponse{
		UpcomingEvents: make([]eventResponse, 0, len(events)),
		EventCount:     counts.Events,
		ResourceCount:  counts.Resources,
	}
	for _, e := range events {
		resp.UpcomingEvents = append(resp.UpcomingEvents, newEventResponse(e))
	}

	s.writeJSON(w, http.StatusOK, resp)
}
