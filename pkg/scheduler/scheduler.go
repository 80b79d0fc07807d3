// Package scheduler runs crawls on a cron schedule and on demand, never two at a time
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/umputun/appointwatch/pkg/domain"
	"github.com/umputun/appointwatch/pkg/pipeline"
)

//go:generate moq -out mocks/crawler.go -pkg mocks -skip-ensure -fmt goimports . Crawler
//go:generate moq -out mocks/run_store.go -pkg mocks -skip-ensure -fmt goimports . RunStore

// ErrRunInProgress is returned when a crawl is requested while another one is running
var ErrRunInProgress = errors.New("crawl already in progress")

// ErrStopped is returned when a crawl is requested after the scheduler was stopped
var ErrStopped = errors.New("scheduler stopped")

// Crawler runs a single crawl
type Crawler interface {
	Run(ctx context.Context, startURL string, sinks ...pipeline.Sink) (domain.Summary, error)
}

// RunStore keeps run history
type RunStore interface {
	CreateRun(ctx context.Context, run domain.Run) error
	FinishRun(ctx context.Context, run domain.Run) error
}

// Config holds scheduler configuration
type Config struct {
	Schedule   string // cron expression, standard 5 fields or descriptors like "@every 1h"
	StartURL   string
	RunOnStart bool
	Location   *time.Location
}

// Scheduler triggers crawls
type Scheduler struct {
	crawler Crawler
	runs    RunStore // optional
	sinks   []pipeline.Sink
	cfg     Config
	cron    *cron.Cron
	now     func() time.Time

	running atomic.Bool
	lastRun atomic.Pointer[domain.Run]
	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex // guards stopped and wg.Add against Stop
	stopped bool
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. runs may be nil, sinks receive records of every run.
func NewScheduler(crawler Crawler, runs RunStore, cfg Config, sinks ...pipeline.Sink) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		crawler: crawler,
		runs:    runs,
		sinks:   sinks,
		cfg:     cfg,
		cron:    cron.New(cron.WithLocation(cfg.Location), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		now:     time.Now,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Start schedules crawls and starts the cron loop. Runs are canceled when ctx is done or Stop called.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Schedule != "" {
		_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
			if _, err := s.Run(s.baseCtx); err != nil && !errors.Is(err, ErrRunInProgress) && !errors.Is(err, ErrStopped) {
				lgr.Printf("[WARN] scheduled crawl failed: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", s.cfg.Schedule, err)
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			s.cancel()
		case <-s.baseCtx.Done():
		}
	}()

	s.cron.Start()
	lgr.Printf("[INFO] scheduler started, schedule %q, next run %s", s.cfg.Schedule, s.NextRun().Format(time.RFC3339))

	if s.cfg.RunOnStart {
		if _, err := s.RunNow(); err != nil {
			lgr.Printf("[WARN] initial crawl not started: %v", err)
		}
	}
	return nil
}

// Stop rejects new crawls, cancels the active one and waits for it to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	cronCtx := s.cron.Stop()
	s.cancel()
	<-cronCtx.Done()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow starts a crawl in background and returns its id
func (s *Scheduler) RunNow() (string, error) {
	if err := s.acquire(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	go func() {
		defer s.release()
		if _, err := s.execute(s.baseCtx, id); err != nil {
			lgr.Printf("[WARN] crawl %s failed: %v", id, err)
		}
	}()
	return id, nil
}

// Run performs a crawl synchronously
func (s *Scheduler) Run(ctx context.Context) (domain.Run, error) {
	if err := s.acquire(); err != nil {
		return domain.Run{}, err
	}
	defer s.release()
	return s.execute(ctx, uuid.NewString())
}

// acquire takes the running flag and registers the crawl with Stop
func (s *Scheduler) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.baseCtx.Err() != nil {
		return ErrStopped
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	s.wg.Add(1)
	return nil
}

func (s *Scheduler) release() {
	s.running.Store(false)
	s.wg.Done()
}

// Running reports whether a crawl is in progress
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// LastRun returns the last finished run of this scheduler, nil if none
func (s *Scheduler) LastRun() *domain.Run {
	return s.lastRun.Load()
}

// NextRun returns the time of the next scheduled crawl, zero if nothing scheduled
func (s *Scheduler) NextRun() time.Time {
	var res time.Time
	for _, e := range s.cron.Entries() {
		if res.IsZero() || (!e.Next.IsZero() && e.Next.Before(res)) {
			res = e.Next
		}
	}
	return res
}

func (s *Scheduler) execute(ctx context.Context, id string) (domain.Run, error) {
	run := domain.Run{ID: id, StartedAt: s.now()}
	lgr.Printf("[INFO] crawl %s started", id)
	if s.runs != nil {
		if err := s.runs.CreateRun(ctx, run); err != nil {
			lgr.Printf("[WARN] failed to store run %s: %v", id, err)
		}
	}

	sum, err := s.crawler.Run(ctx, s.cfg.StartURL, s.sinks...)
	finished := s.now()
	run.FinishedAt, run.Summary = &finished, sum
	if err != nil {
		run.Error = err.Error()
	}
	s.lastRun.Store(&run)

	if s.runs != nil {
		// run context may be canceled by now
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if ferr := s.runs.FinishRun(storeCtx, run); ferr != nil {
			lgr.Printf("[WARN] failed to store run result %s: %v", id, ferr)
		}
	}
	lgr.Printf("[INFO] crawl %s finished in %s: %s, relevant %d", id, finished.Sub(run.StartedAt).Round(time.Millisecond),
		sum.Termination, sum.Relevant)

	if err != nil {
		return run, fmt.Errorf("crawl %s: %w", id, err)
	}
	return run, nil
}
