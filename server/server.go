// Package server exposes stored appointment records, crawl runs, an on-demand crawl trigger
// and an RSS feed of relevant records over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/appointwatch/pkg/domain"
	"github.com/umputun/appointwatch/pkg/repository"
)

//go:generate moq -out mocks/record_store.go -pkg mocks -skip-ensure -fmt goimports . RecordStore
//go:generate moq -out mocks/run_store.go -pkg mocks -skip-ensure -fmt goimports . RunStore
//go:generate moq -out mocks/crawl_trigger.go -pkg mocks -skip-ensure -fmt goimports . CrawlTrigger

// Server represents HTTP server instance
type Server struct {
	cfg     Config
	records RecordStore
	runs    RunStore
	crawler CrawlTrigger

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Config defines server parameters
type Config struct {
	Listen  string
	Timeout time.Duration
	BaseURL string // used for links in RSS
	Version string
	Debug   bool
}

// RecordStore provides access to stored records
type RecordStore interface {
	GetRecords(ctx context.Context, filter repository.RecordFilter) ([]domain.Record, error)
	Counts(ctx context.Context) (total, relevant int, err error)
}

// RunStore provides access to crawl run history
type RunStore interface {
	GetRuns(ctx context.Context, limit int) ([]domain.Run, error)
}

// CrawlTrigger starts crawls on demand and reports scheduler state
type CrawlTrigger interface {
	RunNow() (string, error)
	Running() bool
	LastRun() *domain.Run
	NextRun() time.Time
}

// New initializes a new server instance
func New(cfg Config, records RecordStore, runs RunStore, crawler CrawlTrigger) *Server {
	s := &Server{
		cfg:     cfg,
		records: records,
		runs:    runs,
		crawler: crawler,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.cfg.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Timeout,
		ReadTimeout:       s.cfg.Timeout,
		WriteTimeout:      s.cfg.Timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("appointwatch", "umputun", s.cfg.Version))
	s.router.Use(rest.Ping)

	if s.cfg.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /records", s.recordsHandler)
		r.HandleFunc("GET /runs", s.runsHandler)
		r.HandleFunc("POST /crawl", s.crawlHandler)
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
