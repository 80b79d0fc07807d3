package content

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/appointwatch/pkg/dates"
	"github.com/umputun/appointwatch/pkg/domain"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestArticleParser_Body(t *testing.T) {
	p := NewArticleParser(dates.NewNormalizer(time.UTC), nil)

	tests := []struct {
		name     string
		html     string
		wantBody string
	}{
		{
			name: "semantic container with all text nodes",
			html: `<html><body><div itemprop="articleBody">Первый абзац.
				<p>Второй <b>абзац</b>.</p><script>var x=1;</script><div>Третий</div></div>
				<p>вне статьи</p></body></html>`,
			wantBody: "Первый абзац. Второй абзац . Третий",
		},
		{
			name: "class container paragraphs",
			html: `<html><body><div class="news-text"><p>Иванов назначен министром.</p><p>Указ подписан.</p></div>
				<p>подвал</p></body></html>`,
			wantBody: "Иванов назначен министром. Указ подписан.",
		},
		{
			name: "container without paragraphs falls to next selector",
			html: `<html><body><div class="article-text">только текст</div>
				<div class="content"><p>из контента</p></div></body></html>`,
			wantBody: "из контента",
		},
		{
			name:     "all page paragraphs",
			html:     `<html><body><div><p>раз</p></div><section><p>два   три</p></section></body></html>`,
			wantBody: "раз два три",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantBody, p.Body(mustDoc(t, tt.html)))
		})
	}
}

func TestArticleParser_BodyExtracted(t *testing.T) {
	p := NewArticleParser(dates.NewNormalizer(time.UTC), nil)

	t.Run("text only in nested divs", func(t *testing.T) {
		doc := mustDoc(t, `<html><head><title>Кадровые решения</title></head><body>
			<header><div>Главная</div><div>Новости</div></header>
			<main><div class="wrap"><div class="body-block">
				<div>Президент Беларуси Александр Лукашенко принял кадровые решения во время доклада руководителей
				государственных органов в Минске, сообщили в пресс-службе главы государства.</div>
				<div>Указом главы государства Петров Сергей Иванович назначен председателем Государственного комитета
				по науке и технологиям Республики Беларусь, ранее он работал заместителем министра образования.</div>
				<div>Кроме того, согласовано назначение нескольких руководителей районных исполнительных комитетов
				в Гомельской и Витебской областях, кандидатуры рассматривались на заседании в течение недели.</div>
			</div></div></main>
			<footer><div>Все права защищены</div></footer>
		</body></html>`)
		require.Empty(t, doc.Find("p").Nodes)

		body := p.Body(doc)
		assert.Contains(t, body, "Петров Сергей Иванович назначен председателем Государственного комитета")
		assert.NotContains(t, body, "\n")
	})

	t.Run("nothing to extract", func(t *testing.T) {
		var buf bytes.Buffer
		lgr.Setup(lgr.Out(&buf), lgr.Err(&buf), lgr.LevelBraces)
		defer lgr.Setup()

		a := domain.Article{URL: "https://example.com/empty"}
		p.LoadBody(&a, mustDoc(t, `<html><head></head><body></body></html>`))
		assert.True(t, a.BodyLoaded)
		assert.Empty(t, a.Body)
		assert.Contains(t, buf.String(), "[WARN]")
		assert.Contains(t, buf.String(), "no body text extracted from https://example.com/empty")
	})
}

func TestArticleParser_LoadBody(t *testing.T) {
	p := NewArticleParser(dates.NewNormalizer(time.UTC), nil)
	doc := mustDoc(t, `<html><body><div class="text"><p>тело</p></div></body></html>`)

	a := domain.Article{URL: "https://example.com/a"}
	p.LoadBody(&a, doc)
	assert.True(t, a.BodyLoaded)
	assert.Equal(t, "тело", a.Body)

	a.Body = "kept"
	p.LoadBody(&a, doc)
	assert.Equal(t, "kept", a.Body, "second load is no-op")
}

func TestArticleParser_Published(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	p := NewArticleParser(dates.NewNormalizer(time.UTC), func() time.Time { return now })

	tests := []struct {
		name      string
		html      string
		want      time.Time
		wantFound bool
	}{
		{
			name:      "date_full",
			html:      `<div class="date_full">5 марта 2026, 10:15</div>`,
			want:      time.Date(2026, 3, 5, 10, 15, 0, 0, time.UTC),
			wantFound: true,
		},
		{
			name:      "time datetime attribute",
			html:      `<time datetime="2026-03-04T09:30:00">вчера</time>`,
			want:      time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
			wantFound: true,
		},
		{
			name:      "unparsable first source falls through",
			html:      `<div class="date_full">недавно</div><span class="news-date">04.03.2026</span>`,
			want:      time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			wantFound: true,
		},
		{
			name:      "meta published time",
			html:      `<html><head><meta property="article:published_time" content="2026-03-01T08:00:00Z"></head></html>`,
			want:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			wantFound: true,
		},
		{
			name:      "nothing found defaults to now",
			html:      `<p>без даты</p>`,
			want:      now,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := p.Published(mustDoc(t, tt.html))
			assert.Equal(t, tt.wantFound, ok)
			assert.True(t, tt.want.Equal(res), "got %v, want %v", res, tt.want)
		})
	}
}

func TestArticleParser_Parse(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	p := NewArticleParser(dates.NewNormalizer(time.UTC), func() time.Time { return now })
	item := domain.ListingItem{Title: "Заголовок", Snippet: "Анонс", Link: "https://example.com/n1"}

	a := p.Parse(item, mustDoc(t, `<div class="date_full">05.03.2026 09:00</div><p>тело</p>`))
	assert.Equal(t, "https://example.com/n1", a.URL)
	assert.Equal(t, "Заголовок", a.Title)
	assert.Equal(t, "Анонс", a.Snippet)
	assert.False(t, a.BodyLoaded)
	assert.Empty(t, a.Body)
	assert.False(t, a.PublishedDefaulted)
	assert.Equal(t, time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), a.Published)

	a = p.Parse(item, mustDoc(t, `<p>тело</p>`))
	assert.True(t, a.PublishedDefaulted)
	assert.Equal(t, now, a.Published)
}
