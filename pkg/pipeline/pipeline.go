// Package pipeline runs one crawl: listing traversal, article fetch, relevance check, field extraction
// and notification, emitting a record per fetched article to sinks.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/appointwatch/pkg/content"
	"github.com/umputun/appointwatch/pkg/dates"
	"github.com/umputun/appointwatch/pkg/domain"
	"github.com/umputun/appointwatch/pkg/extract"
	"github.com/umputun/appointwatch/pkg/frontier"
	"github.com/umputun/appointwatch/pkg/listing"
	"github.com/umputun/appointwatch/pkg/notify"
	"github.com/umputun/appointwatch/pkg/relevance"
)

// Sink receives produced records
type Sink interface {
	Put(ctx context.Context, rec domain.Record) error
}

// SinkFunc is an adapter to use ordinary functions as sinks
type SinkFunc func(ctx context.Context, rec domain.Record) error

// Put calls f(ctx, rec)
func (f SinkFunc) Put(ctx context.Context, rec domain.Record) error {
	return f(ctx, rec)
}

// Params defines pipeline collaborators. Only Fetcher and Listing are required.
type Params struct {
	Fetcher    frontier.Fetcher
	Listing    *listing.Parser
	Articles   *content.ArticleParser
	Classifier *relevance.Classifier
	Extractor  *extract.Extractor
	Location   *time.Location   // reference day and is-today are computed here, time.Local if nil
	Now        func() time.Time // time.Now if nil
	Prefilter  bool             // fetch only articles whose listing title and snippet match the classifier
}

// Pipeline processes listing items into records
type Pipeline struct {
	Params
}

// New makes a pipeline, filling missing optional collaborators with defaults
func New(p Params) *Pipeline {
	if p.Location == nil {
		p.Location = time.Local
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Classifier == nil {
		p.Classifier = relevance.NewDefault()
	}
	if p.Extractor == nil {
		p.Extractor = extract.NewDefault()
	}
	if p.Articles == nil {
		p.Articles = content.NewArticleParser(dates.NewNormalizer(p.Location), p.Now)
	}
	return &Pipeline{Params: p}
}

// Run crawls from startURL and sends a record for every fetched article to sinks.
// The reference day is taken once, at start. Only a listing fetch failure makes Run fail,
// the summary is returned in any case.
func (p *Pipeline) Run(ctx context.Context, startURL string, sinks ...Sink) (domain.Summary, error) {
	reference := domain.DayOf(p.Now().In(p.Location))
	lgr.Printf("[INFO] crawl started from %s, reference day %s", startURL, reference)

	var filter frontier.Filter
	if p.Prefilter {
		filter = func(item domain.ListingItem) bool {
			return p.Classifier.Match(item.Title + " " + item.Snippet)
		}
	}

	ctrl := frontier.New(p.Fetcher, p.Listing, reference, filter)
	var fetched, relevant int
	var crawlErr error
	for item, err := range ctrl.Crawl(ctx, startURL) {
		if err != nil {
			crawlErr = err
			break
		}
		rec, ok := p.process(ctx, item, reference)
		if !ok {
			continue
		}
		fetched++
		if rec.Relevant {
			relevant++
			lgr.Printf("[INFO] relevant article %q, %s, stage %s", rec.Title, rec.URL, rec.Stage)
		}
		for _, s := range sinks {
			if err := s.Put(ctx, rec); err != nil {
				lgr.Printf("[WARN] failed to store record %s: %v", rec.URL, err)
			}
		}
	}

	sum := ctrl.Summary()
	sum.Fetched, sum.Relevant = fetched, relevant
	lgr.Printf("[INFO] crawl finished (%s): pages %d, items %d, fetched %d, relevant %d",
		sum.Termination, sum.Pages, sum.Items, sum.Fetched, sum.Relevant)
	if crawlErr != nil {
		return sum, fmt.Errorf("crawl %s: %w", startURL, crawlErr)
	}
	return sum, nil
}

// process fetches the article of item and turns it into a record, false if the article could not be fetched
func (p *Pipeline) process(ctx context.Context, item domain.ListingItem, reference domain.Day) (domain.Record, bool) {
	doc, err := p.Fetcher.Fetch(ctx, item.Link)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch article %s: %v", item.Link, err)
		return domain.Record{}, false
	}

	article := p.Articles.Parse(item, doc)
	published := domain.DayOf(article.Published.In(p.Location))
	isToday := published == reference

	cls := p.Classifier.Evaluate(article.Title, published, reference, func() string {
		p.Articles.LoadBody(&article, doc)
		return article.Body
	})
	if !cls.Relevant {
		return domain.NewRecord(article, cls, isToday, domain.Fields{}, nil, p.Now()), true
	}

	p.Articles.LoadBody(&article, doc)
	fields := p.Extractor.Extract(article.Text())
	n := notify.Compose(fields.PersonOrSentinel(), fields.PositionOrSentinel(), article.URL)
	return domain.NewRecord(article, cls, isToday, fields, &n, p.Now()), true
}
