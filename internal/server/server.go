// Package server provides the HTTP transport for planbook.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmreiter/planbook/internal/schedule"
)

// Server routes HTTP requests onto the repository and the pure scheduling
// computations. It holds no request state of its own.
type Server struct {
	repo   schedule.Repository
	logger *slog.Logger
	router *mux.Router
}

// New creates a Server with all routes registered.
func New(repo schedule.Repository, logger *slog.Logger) *Server {
	s := &Server{repo: repo, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/conflicts", s.handleConflictAudit).Methods(http.MethodGet)

	api.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleCreateEvent).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}", s.handleGetEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", s.handleUpdateEvent).Methods(http.MethodPut)
	api.HandleFunc("/events/{id:[0-9]+}", s.handleDeleteEvent).Methods(http.MethodDelete)
	api.HandleFunc("/events/{id:[0-9]+}/allocations", s.handleAllocate).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}/allocations/{resourceID:[0-9]+}", s.handleDeallocate).Methods(http.MethodDelete)

	api.HandleFunc("/resources", s.handleListResources).Methods(http.MethodGet)
	api.HandleFunc("/resources", s.handleCreateResource).Methods(http.MethodPost)
	api.HandleFunc("/resources/{id:[0-9]+}", s.handleGetResource).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id:[0-9]+}", s.handleUpdateResource).Methods(http.MethodPut)
	api.HandleFunc("/resources/{id:[0-9]+}", s.handleDeleteResource).Methods(http.MethodDelete)
	api.HandleFunc("/resources/{id:[0-9]+}/utilisation", s.handleUtilisation).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id:[0-9]+}/schedule.ics", s.handleScheduleICS).Methods(http.MethodGet)

	s.router = r
	return s
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = s.logRequests(h)
	h = requestID(h)
	h = s.recoverPanics(h)
	return h
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully
// within the grace period.
func (s *Server) Run(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
