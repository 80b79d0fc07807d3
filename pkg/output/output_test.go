package output

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/appointwatch/pkg/domain"
)

func testRecords() []domain.Record {
	ts := time.Date(2026, 1, 9, 10, 15, 0, 0, time.UTC)
	return []domain.Record{
		{
			Title: "Президент назначил министра", URL: "https://belta.by/president/view/1/",
			PersonName: "Петров Сергей Иванович", Position: "министром спорта", PublicationDate: ts,
			IsPublishedToday: true, Relevant: true, Stage: domain.StageTitle, ScrapedAt: ts,
			Notification: &domain.Notification{Header: "h", Text: "t", Source: "https://belta.by/president/view/1/"},
		},
		{Title: "Фестиваль в Минске", URL: "https://belta.by/society/view/2/", PublicationDate: ts, ScrapedAt: ts},
	}
}

func TestJSONLines_Put(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONLines(&buf)
	for _, rec := range testRecords() {
		require.NoError(t, sink.Put(context.Background(), rec))
	}
	require.NoError(t, sink.Close())

	var lines []map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "Петров Сергей Иванович", lines[0]["person_name"])
	assert.Equal(t, "https://belta.by/president/view/1/", lines[0]["notification_source"])
	assert.Equal(t, true, lines[0]["relevant"])
	assert.Nil(t, lines[1]["notification_header"])
	assert.Equal(t, false, lines[1]["relevant"])
}

func TestOpenJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.jsonl")

	sink, err := OpenJSONLines(path)
	require.NoError(t, err)
	require.NoError(t, sink.Put(context.Background(), testRecords()[0]))
	require.NoError(t, sink.Close())

	sink, err = OpenJSONLines(path)
	require.NoError(t, err)
	require.NoError(t, sink.Put(context.Background(), testRecords()[1]))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")), "second open appends")
}

func TestReport_Render(t *testing.T) {
	rep := &Report{}
	for _, rec := range testRecords() {
		require.NoError(t, rep.Put(context.Background(), rec))
	}
	assert.Len(t, rep.Records(), 2)

	var buf bytes.Buffer
	rep.Render(&buf, domain.Summary{
		Reference: domain.Day{Year: 2026, Month: time.January, Day: 9}, Pages: 2, Fetched: 2, Relevant: 1,
		Termination: domain.TerminationBoundary,
	})
	out := buf.String()
	assert.Contains(t, out, "Appointments for 09.01.2026")
	assert.Contains(t, out, "Петров Сергей Иванович")
	assert.Contains(t, out, "министром спорта")
	assert.Contains(t, out, "09.01.2026 10:15")
	assert.NotContains(t, out, "Фестиваль", "irrelevant records are not listed")
}
