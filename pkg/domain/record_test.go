package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	d := DayOf(time.Date(2026, 1, 9, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, Day{Year: 2026, Month: time.January, Day: 9}, d)
	assert.Equal(t, "09.01.2026", d.String())
	assert.False(t, d.IsZero())
	assert.True(t, Day{}.IsZero())
	assert.Equal(t, "unknown", Day{}.String())

	tbl := []struct {
		a, b Day
		res  bool
	}{
		{Day{2026, 1, 8}, Day{2026, 1, 9}, true},
		{Day{2026, 1, 9}, Day{2026, 1, 9}, false},
		{Day{2025, 12, 31}, Day{2026, 1, 1}, true},
		{Day{2026, 2, 1}, Day{2026, 1, 31}, false},
		{Day{2026, 1, 10}, Day{2026, 1, 9}, false},
	}
	for _, tt := range tbl {
		t.Run(tt.a.String()+"-"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.res, tt.a.Before(tt.b))
		})
	}
}

func TestArticle_Text(t *testing.T) {
	a := Article{Title: "Лукашенко принял кадровые решения", Snippet: "Назначен новый председатель.", Body: "Текст."}
	assert.Equal(t, "Лукашенко принял кадровые решения. Назначен новый председатель. Текст.", a.Text())

	a = Article{Title: "Только заголовок"}
	assert.Equal(t, "Только заголовок", a.Text())
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)
	art := Article{URL: "https://belta.by/president/view/1", Title: "title", Body: strings.Repeat("ж", 1500),
		BodyLoaded: true, Published: now}

	t.Run("relevant with sentinels", func(t *testing.T) {
		n := &Notification{Header: "h", Text: "t", Source: art.URL}
		rec := NewRecord(art, Classification{Relevant: true, Stage: StageBody}, true, Fields{}, n, now)
		assert.Equal(t, PersonNotDetermined, rec.PersonName)
		assert.Equal(t, PositionNotSpecified, rec.Position)
		assert.Equal(t, RawContentLimit, len([]rune(rec.RawContent)))
		assert.Equal(t, n, rec.Notification)
	})

	t.Run("irrelevant drops fields", func(t *testing.T) {
		f := Fields{PersonName: "Иванов Иван", PersonFound: true}
		rec := NewRecord(art, Classification{}, false, f, &Notification{}, now)
		assert.Empty(t, rec.PersonName)
		assert.Nil(t, rec.Notification)
	})
}

func TestRecord_MarshalJSON(t *testing.T) {
	now := time.Date(2026, 1, 9, 19, 51, 0, 0, time.UTC)

	t.Run("irrelevant record has nulls", func(t *testing.T) {
		rec := Record{Title: "t", URL: "u", PublicationDate: now, ScrapedAt: now}
		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Nil(t, m["person_name"])
		assert.Nil(t, m["notification_header"])
		assert.Nil(t, m["notification_source"])
		assert.Equal(t, "2026-01-09T19:51:00Z", m["publication_date"])
		assert.Equal(t, false, m["relevant"])
		_, hasStage := m["classified_by"]
		assert.False(t, hasStage)
	})

	t.Run("relevant record", func(t *testing.T) {
		rec := Record{Title: "t", URL: "u", Relevant: true, Stage: StageTitle, PersonName: "Иванов Иван",
			Position: PositionNotSpecified, Notification: &Notification{Header: "h", Text: "x", Source: "u"},
			PublicationDate: now, ScrapedAt: now}
		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "Иванов Иван", m["person_name"])
		assert.Equal(t, PositionNotSpecified, m["position"])
		assert.Equal(t, "h", m["notification_header"])
		assert.Equal(t, "u", m["notification_source"])
		assert.Equal(t, "title", m["classified_by"])
	})
}
