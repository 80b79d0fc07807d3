// Package output exports crawl records: JSON lines for machines and a table report for humans.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/umputun/appointwatch/pkg/domain"
)

// JSONLines writes one JSON record per line
type JSONLines struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewJSONLines makes a sink writing to w
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{w: w}
}

// OpenJSONLines makes a sink appending to the file at path, creating it and its directory if needed
func OpenJSONLines(path string) (*JSONLines, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640) //nolint:gosec // path from config
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return &JSONLines{w: fh, closer: fh}, nil
}

// Put writes a record as a single line
func (j *JSONLines) Put(_ context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.URL, err)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write record %s: %w", rec.URL, err)
	}
	return nil
}

// Close closes the underlying file, no-op for plain writers
func (j *JSONLines) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
