// Package feed renders stored appointments as an RSS 2.0 feed
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/umputun/appointwatch/pkg/domain"
)

const (
	feedTitle       = "Кадровые решения Президента Республики Беларусь"
	feedDescription = "Назначения, найденные в новостной ленте"
)

// Generator creates RSS feeds from records
type Generator struct {
	baseURL string
	policy  *bluemonday.Policy
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from relevant records, irrelevant ones are skipped
func (g *Generator) GenerateRSS(records []domain.Record) (string, error) {
	items := make([]*RSSItem, 0, len(records))
	for _, rec := range records {
		if !rec.Relevant {
			continue
		}
		items = append(items, g.convertToRSSItem(rec))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         feedTitle,
			Link:          g.baseURL + "/",
			Description:   feedDescription,
			Language:      "ru",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem makes a feed item with person and position in the title and notification text as description
func (g *Generator) convertToRSSItem(rec domain.Record) *RSSItem {
	title := g.clean(rec.Title)
	if rec.PersonName != "" && rec.PersonName != domain.PersonNotDetermined {
		title = g.clean(rec.PersonName) + ": " + g.clean(rec.Position)
	}

	var desc []string
	if rec.Notification != nil {
		desc = append(desc, g.clean(rec.Notification.Text))
	}
	if s := g.clean(rec.Snippet); s != "" {
		desc = append(desc, s)
	}

	item := &RSSItem{
		Title:       title,
		Link:        rec.URL,
		GUID:        RSSGUID{Value: rec.URL, IsPermaLink: true},
		Description: strings.Join(desc, "\n\n"),
		PubDate:     rec.PublicationDate.Format(time.RFC1123Z),
	}
	if rec.Stage != domain.StageNone {
		item.Categories = []string{string(rec.Stage)}
	}
	return item
}

// clean strips any markup from scraped text, entities are decoded back since xml encoder escapes on its own
func (g *Generator) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(g.policy.Sanitize(s)))
}
