package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/appointwatch/pkg/domain"
)

// RecordRepository handles processed article records
type RecordRepository struct {
	db *sqlx.DB
}

// recordSQL represents a record for SQL operations
type recordSQL struct {
	ID              int64     `db:"id"`
	URL             string    `db:"url"`
	Title           string    `db:"title"`
	Snippet         string    `db:"snippet"`
	PersonName      string    `db:"person_name"`
	Position        string    `db:"position"`
	PublicationDate time.Time `db:"publication_date"`
	IsToday         bool      `db:"is_today"`
	Relevant        bool      `db:"relevant"`
	Stage           string    `db:"stage"`

	NotificationHeader *string `db:"notification_header"`
	NotificationText   *string `db:"notification_text"`
	NotificationSource *string `db:"notification_source"`

	RawContent  string    `db:"raw_content"`
	ScrapedAt   time.Time `db:"scraped_at"`
	FirstSeenAt time.Time `db:"first_seen_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// RecordFilter defines record query parameters
type RecordFilter struct {
	RelevantOnly bool
	Limit        int // all records if zero
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// SaveRecord inserts a record or updates the one with the same url, keeping its first-seen time.
// Returns true if the record was not stored before.
func (r *RecordRepository) SaveRecord(ctx context.Context, rec domain.Record) (bool, error) {
	row := toRecordSQL(rec)
	now := time.Now().UTC()
	row.FirstSeenAt, row.UpdatedAt = now, now

	query := `
		INSERT INTO records (
			url, title, snippet, person_name, position, publication_date, is_today, relevant, stage,
			notification_header, notification_text, notification_source, raw_content, scraped_at,
			first_seen_at, updated_at
		) VALUES (
			:url, :title, :snippet, :person_name, :position, :publication_date, :is_today, :relevant, :stage,
			:notification_header, :notification_text, :notification_source, :raw_content, :scraped_at,
			:first_seen_at, :updated_at
		)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			snippet = excluded.snippet,
			person_name = excluded.person_name,
			position = excluded.position,
			publication_date = excluded.publication_date,
			is_today = excluded.is_today,
			relevant = excluded.relevant,
			stage = excluded.stage,
			notification_header = excluded.notification_header,
			notification_text = excluded.notification_text,
			notification_source = excluded.notification_source,
			raw_content = excluded.raw_content,
			scraped_at = excluded.scraped_at,
			updated_at = excluded.updated_at
	`

	var created bool
	err := newRetrier().Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin transaction: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM records WHERE url = ?", row.URL); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("check record: %w", err)}
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("upsert record: %w", err)}
		}
		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit: %w", err)}
		}
		created = count == 0
		return nil
	}, errCritical)
	if err != nil {
		return false, fmt.Errorf("save record %s: %w", rec.URL, err)
	}
	return created, nil
}

// Put stores a record, used as a pipeline sink
func (r *RecordRepository) Put(ctx context.Context, rec domain.Record) error {
	created, err := r.SaveRecord(ctx, rec)
	if err != nil {
		return err
	}
	if created && rec.Relevant {
		lgr.Printf("[INFO] new appointment stored: %s, %s", rec.PersonName, rec.URL)
	}
	return nil
}

// GetRecord retrieves a record by article url
func (r *RecordRepository) GetRecord(ctx context.Context, url string) (*domain.Record, error) {
	var row recordSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM records WHERE url = ?", url); err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	rec := row.toDomain()
	return &rec, nil
}

// GetRecords retrieves records, newest publication first
func (r *RecordRepository) GetRecords(ctx context.Context, filter RecordFilter) ([]domain.Record, error) {
	query := "SELECT * FROM records"
	var args []any
	if filter.RelevantOnly {
		query += " WHERE relevant = 1"
	}
	query += " ORDER BY publication_date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []recordSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}
	res := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// Counts returns the number of all and relevant records
func (r *RecordRepository) Counts(ctx context.Context) (total, relevant int, err error) {
	var res struct {
		Total    int `db:"total"`
		Relevant int `db:"relevant"`
	}
	query := "SELECT COUNT(*) AS total, COALESCE(SUM(relevant), 0) AS relevant FROM records"
	if err := r.db.GetContext(ctx, &res, query); err != nil {
		return 0, 0, fmt.Errorf("count records: %w", err)
	}
	return res.Total, res.Relevant, nil
}

func toRecordSQL(rec domain.Record) recordSQL {
	row := recordSQL{
		URL:             rec.URL,
		Title:           rec.Title,
		Snippet:         rec.Snippet,
		PersonName:      rec.PersonName,
		Position:        rec.Position,
		PublicationDate: rec.PublicationDate.UTC(),
		IsToday:         rec.IsPublishedToday,
		Relevant:        rec.Relevant,
		Stage:           string(rec.Stage),
		RawContent:      rec.RawContent,
		ScrapedAt:       rec.ScrapedAt.UTC(),
	}
	if n := rec.Notification; n != nil {
		row.NotificationHeader, row.NotificationText, row.NotificationSource = &n.Header, &n.Text, &n.Source
	}
	return row
}

func (row recordSQL) toDomain() domain.Record {
	rec := domain.Record{
		Title:            row.Title,
		URL:              row.URL,
		Snippet:          row.Snippet,
		PersonName:       row.PersonName,
		Position:         row.Position,
		PublicationDate:  row.PublicationDate,
		IsPublishedToday: row.IsToday,
		Relevant:         row.Relevant,
		Stage:            domain.Stage(row.Stage),
		ScrapedAt:        row.ScrapedAt,
		RawContent:       row.RawContent,
	}
	if row.NotificationHeader != nil {
		rec.Notification = &domain.Notification{Header: *row.NotificationHeader}
		if row.NotificationText != nil {
			rec.Notification.Text = *row.NotificationText
		}
		if row.NotificationSource != nil {
			rec.Notification.Source = *row.NotificationSource
		}
	}
	return rec
}
