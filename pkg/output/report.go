package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/umputun/appointwatch/pkg/domain"
)

const reportTitleWidth = 60

// Report collects records of a run and renders them as a table
type Report struct {
	mu      sync.Mutex
	records []domain.Record
}

// Put collects a record
func (r *Report) Put(_ context.Context, rec domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// Records returns collected records
func (r *Report) Records() []domain.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]domain.Record, len(r.records))
	copy(res, r.records)
	return res
}

// Render writes collected records and the run summary to w
func (r *Report) Render(w io.Writer, sum domain.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: reportTitleWidth},
		{Number: 4, WidthMax: reportTitleWidth / 2},
		{Number: 5, WidthMax: reportTitleWidth},
	})
	t.AppendHeader(table.Row{"#", "Date", "Title", "Person", "Position", "Stage"})

	relevant := 0
	for _, rec := range r.Records() {
		if !rec.Relevant {
			continue
		}
		relevant++
		t.AppendRow(table.Row{
			relevant,
			rec.PublicationDate.Format("02.01.2006 15:04"),
			strings.Join(strings.Fields(rec.Title), " "),
			rec.PersonName,
			rec.Position,
			string(rec.Stage),
		})
	}
	t.AppendFooter(table.Row{"Relevant", relevant, fmt.Sprintf("fetched %d, pages %d", sum.Fetched, sum.Pages),
		"", "", string(sum.Termination)})

	_, _ = fmt.Fprintf(w, "\nAppointments for %s:\n", sum.Reference)
	t.Render()
}
