// Package server exposes the HTTP trigger surface: an external scheduler can
// POST a run request and collect the structured run summary.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

//go:generate moq -out mocks/monitor.go -pkg mocks -skip-ensure -fmt goimports . Monitor

// Monitor triggers monitoring runs and reports the latest summary
type Monitor interface {
	RunNow(ctx context.Context) domain.RunSummary
	LastSummary() (domain.RunSummary, bool)
}

// Config holds server configuration
type Config struct {
	Listen  string
	Timeout time.Duration // covers a full triggered run
	Version string
	Debug   bool
}

// Server represents the HTTP trigger server instance
type Server struct {
	config  Config
	monitor Monitor

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(cfg Config, monitor Monitor) *Server {
	s := &Server{
		config:  cfg,
		monitor: monitor,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.config.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.router,
		ReadTimeout:  s.config.Timeout,
		WriteTimeout: s.config.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("updates-monitor", "kpus-tech", s.config.Version))
	s.router.Use(rest.Ping)

	if s.config.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(10))
	s.router.Use(rest.SizeLimit(64 * 1024)) // trigger requests carry no payload
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /run", s.runHandler)
		r.HandleFunc("GET /status", s.statusHandler)
	})
}

// runHandler triggers a monitoring run and returns its summary. The run itself
// never fails the request: failures surface inside the structured summary.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	summary := s.monitor.RunNow(r.Context())
	renderJSON(w, http.StatusOK, summary)
}

// statusHandler returns server status and the last run summary when available
func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.config.Version,
		"time":    time.Now().UTC(),
	}
	if last, ok := s.monitor.LastSummary(); ok {
		status["last_run"] = last
	}
	renderJSON(w, http.StatusOK, status)
}

// renderJSON sends a JSON response
func renderJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}
