package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/appointwatch/pkg/domain"
)

const dayLayout = "2006-01-02"

// RunRepository handles crawl run history
type RunRepository struct {
	db *sqlx.DB
}

// runSQL represents a run for SQL operations
type runSQL struct {
	ID           string     `db:"id"`
	StartedAt    time.Time  `db:"started_at"`
	FinishedAt   *time.Time `db:"finished_at"`
	ReferenceDay string     `db:"reference_day"`
	Termination  string     `db:"termination"`
	Pages        int        `db:"pages"`
	Items        int        `db:"items"`
	Qualified    int        `db:"qualified"`
	Fetched      int        `db:"fetched"`
	Relevant     int        `db:"relevant"`
	Error        string     `db:"error"`
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun stores a started run
func (r *RunRepository) CreateRun(ctx context.Context, run domain.Run) error {
	row := toRunSQL(run)
	query := `
		INSERT INTO runs (id, started_at, reference_day, termination)
		VALUES (:id, :started_at, :reference_day, :termination)
	`
	err := newRetrier().Do(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: err}
		}
		return nil
	}, errCritical)
	if err != nil {
		return fmt.Errorf("create run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun stores the outcome of a run
func (r *RunRepository) FinishRun(ctx context.Context, run domain.Run) error {
	if run.FinishedAt == nil {
		now := time.Now()
		run.FinishedAt = &now
	}
	row := toRunSQL(run)
	query := `
		UPDATE runs
		SET finished_at = :finished_at, reference_day = :reference_day, termination = :termination,
		    pages = :pages, items = :items, qualified = :qualified, fetched = :fetched,
		    relevant = :relevant, error = :error
		WHERE id = :id
	`
	err := newRetrier().Do(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: err}
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: errors.New("run not found")}
		}
		return nil
	}, errCritical)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", run.ID, err)
	}
	return nil
}

// GetRuns retrieves recent runs, newest first
func (r *RunRepository) GetRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []runSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM runs ORDER BY started_at DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("get runs: %w", err)
	}
	res := make([]domain.Run, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// LastRun returns the most recent run, nil if there were no runs
func (r *RunRepository) LastRun(ctx context.Context) (*domain.Run, error) {
	var row runSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM runs ORDER BY started_at DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last run: %w", err)
	}
	res := row.toDomain()
	return &res, nil
}

func toRunSQL(run domain.Run) runSQL {
	row := runSQL{
		ID:          run.ID,
		StartedAt:   run.StartedAt.UTC(),
		Termination: string(run.Summary.Termination),
		Pages:       run.Summary.Pages,
		Items:       run.Summary.Items,
		Qualified:   run.Summary.Qualified,
		Fetched:     run.Summary.Fetched,
		Relevant:    run.Summary.Relevant,
		Error:       run.Error,
	}
	if row.Termination == "" {
		row.Termination = string(domain.TerminationRunning)
	}
	if !run.Summary.Reference.IsZero() {
		row.ReferenceDay = run.Summary.Reference.Time(time.UTC).Format(dayLayout)
	}
	if run.FinishedAt != nil {
		t := run.FinishedAt.UTC()
		row.FinishedAt = &t
	}
	return row
}

func (row runSQL) toDomain() domain.Run {
	res := domain.Run{
		ID:         row.ID,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
		Error:      row.Error,
		Summary: domain.Summary{
			Termination: domain.Termination(row.Termination),
			Pages:       row.Pages,
			Items:       row.Items,
			Qualified:   row.Qualified,
			Fetched:     row.Fetched,
			Relevant:    row.Relevant,
		},
	}
	if t, err := time.Parse(dayLayout, row.ReferenceDay); err == nil {
		res.Summary.Reference = domain.DayOf(t)
	}
	return res
}
