package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/appointwatch/pkg/domain"
	"github.com/umputun/appointwatch/pkg/repository"
	"github.com/umputun/appointwatch/pkg/scheduler"
)

const (
	defaultRecordsLimit = 50
	maxRecordsLimit     = 500
	defaultRunsLimit    = 20
	maxRunsLimit        = 200
)

// runView is the JSON form of a crawl run
type runView struct {
	ID           string     `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	ReferenceDay string     `json:"reference_day"`
	Pages        int        `json:"pages"`
	Items        int        `json:"items"`
	Qualified    int        `json:"qualified"`
	Fetched      int        `json:"fetched"`
	Relevant     int        `json:"relevant"`
	Termination  string     `json:"termination"`
	Error        string     `json:"error,omitempty"`
}

func newRunView(r domain.Run) runView {
	return runView{
		ID:           r.ID,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		ReferenceDay: r.Summary.Reference.String(),
		Pages:        r.Summary.Pages,
		Items:        r.Summary.Items,
		Qualified:    r.Summary.Qualified,
		Fetched:      r.Summary.Fetched,
		Relevant:     r.Summary.Relevant,
		Termination:  string(r.Summary.Termination),
		Error:        r.Error,
	}
}

// statusHandler returns server status, record counters and scheduler state
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	total, relevant, err := s.records.Counts(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to count records: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	status := map[string]any{
		"status":   "ok",
		"version":  s.cfg.Version,
		"time":     time.Now().UTC(),
		"running":  s.crawler.Running(),
		"records":  total,
		"relevant": relevant,
	}
	if next := s.crawler.NextRun(); !next.IsZero() {
		status["next_run"] = next
	}
	if last := s.crawler.LastRun(); last != nil {
		status["last_run"] = newRunView(*last)
	}
	renderJSON(w, r, http.StatusOK, status)
}

// recordsHandler lists stored records, newest publication first.
// Query: relevant=true to get relevant records only, limit=N.
func (s *Server) recordsHandler(w http.ResponseWriter, r *http.Request) {
	filter := repository.RecordFilter{Limit: defaultRecordsLimit}

	if v := r.URL.Query().Get("relevant"); v != "" {
		relevant, err := strconv.ParseBool(v)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid relevant value %q", v), http.StatusBadRequest)
			return
		}
		filter.RelevantOnly = relevant
	}

	limit, err := parseLimit(r, defaultRecordsLimit, maxRecordsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	filter.Limit = limit

	records, err := s.records.GetRecords(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to get records: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []domain.Record{}
	}
	renderJSON(w, r, http.StatusOK, records)
}

// runsHandler lists recent crawl runs, newest first
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultRunsLimit, maxRunsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	runs, err := s.runs.GetRuns(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get runs: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]runView, 0, len(runs))
	for _, run := range runs {
		res = append(res, newRunView(run))
	}
	renderJSON(w, r, http.StatusOK, res)
}

// crawlHandler starts a crawl in background, responds with the run id
func (s *Server) crawlHandler(w http.ResponseWriter, r *http.Request) {
	id, err := s.crawler.RunNow()
	if errors.Is(err, scheduler.ErrRunInProgress) {
		renderError(w, r, err, http.StatusConflict)
		return
	}
	if errors.Is(err, scheduler.ErrStopped) {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to start crawl: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[INFO] crawl %s requested from %s", id, r.RemoteAddr)
	renderJSON(w, r, http.StatusAccepted, map[string]string{"id": id})
}

// parseLimit reads limit query parameter, def if missing, capped by upper
func parseLimit(r *http.Request, def, upper int) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("invalid limit %q", v)
	}
	return min(limit, upper), nil
}
