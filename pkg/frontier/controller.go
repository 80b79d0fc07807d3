// Package frontier walks the paginated news listing from the newest page backward and stops at the date boundary.
//
// The listing is assumed to be ordered newest-first, both within a page and across pages. The boundary stop
// relies on it: the first item dated before the reference day means every item after it is older too, so the
// controller stops right there and never requests another page. If the site ever breaks this ordering,
// items published on the reference day after an older item will be missed.
package frontier

import (
	"context"
	"fmt"
	"iter"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/appointwatch/pkg/domain"
	"github.com/umputun/appointwatch/pkg/listing"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Fetcher gets a parsed page by URL
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Filter decides whether a listing item is worth fetching
type Filter func(item domain.ListingItem) bool

// Controller drives listing traversal for a single run with a fixed reference day
type Controller struct {
	fetcher   Fetcher
	parser    *listing.Parser
	reference domain.Day
	filter    Filter

	boundary    bool // write-once, no requests of any kind after it is set
	termination domain.Termination
	pages       int
	items       int
	qualified   int
}

// New makes a controller. Items dated before reference end the crawl. filter is optional.
func New(fetcher Fetcher, parser *listing.Parser, reference domain.Day, filter Filter) *Controller {
	return &Controller{
		fetcher:     fetcher,
		parser:      parser,
		reference:   reference,
		filter:      filter,
		termination: domain.TerminationRunning,
	}
}

// Crawl returns a lazy sequence of qualifying listing items starting from startURL.
// Pages are requested only when the consumer pulls past the previous page. A listing fetch failure
// is yielded as the final error. Once the boundary was crossed the sequence is empty.
func (c *Controller) Crawl(ctx context.Context, startURL string) iter.Seq2[domain.ListingItem, error] {
	return func(yield func(domain.ListingItem, error) bool) {
		if c.boundary {
			return
		}
		pageURL := startURL
		for page := c.pages + 1; ; page++ {
			if ctx.Err() != nil {
				c.termination = domain.TerminationStopped
				return
			}

			doc, err := c.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				if ctx.Err() != nil {
					c.termination = domain.TerminationStopped
					return
				}
				c.termination = domain.TerminationFailed
				yield(domain.ListingItem{}, fmt.Errorf("fetch listing page %d: %w", page, err))
				return
			}
			c.pages++

			res := c.parser.Parse(doc)
			if len(res.Entries) == 0 {
				lgr.Printf("[INFO] listing page %d has no items, done", page)
				c.termination = domain.TerminationExhausted
				return
			}

			if !c.walkPage(ctx, page, res.Entries, yield) {
				return
			}

			if res.NextPath == "" {
				lgr.Printf("[INFO] no more listing pages after page %d", page)
				c.termination = domain.TerminationExhausted
				return
			}
			next, err := c.parser.NextURL(res.NextPath)
			if err != nil {
				lgr.Printf("[WARN] can't resolve next page path %q: %v", res.NextPath, err)
				c.termination = domain.TerminationExhausted
				return
			}
			lgr.Printf("[DEBUG] moving to listing page %d, %s", page+1, next)
			pageURL = next
		}
	}
}

// walkPage yields qualifying entries of a page in order, returns false if the crawl must stop
func (c *Controller) walkPage(ctx context.Context, page int, entries []listing.Entry,
	yield func(domain.ListingItem, error) bool) bool {
	qualified := 0
	defer func() {
		lgr.Printf("[INFO] listing page %d: %d entries, %d qualified", page, len(entries), qualified)
	}()

	for _, e := range entries {
		c.items++
		if !e.Date.IsZero() && e.Date.Before(c.reference) {
			lgr.Printf("[INFO] item %q dated %s is before %s, boundary crossed", e.Title, e.Date, c.reference)
			c.boundary = true
			c.termination = domain.TerminationBoundary
			return false
		}
		if e.Title == "" || e.Link == "" {
			lgr.Printf("[DEBUG] skip listing entry without title or link on page %d", page)
			continue
		}

		item := domain.ListingItem{Title: e.Title, Snippet: e.Snippet, Link: e.Link, Date: e.Date, Page: page}
		if c.filter != nil && !c.filter(item) {
			lgr.Printf("[DEBUG] filtered out %q", item.Title)
			continue
		}

		qualified++
		c.qualified++
		if !yield(item, nil) || ctx.Err() != nil {
			c.termination = domain.TerminationStopped
			return false
		}
	}
	return true
}

// BoundaryCrossed reports whether an item older than the reference day was seen
func (c *Controller) BoundaryCrossed() bool {
	return c.boundary
}

// Summary returns crawl counters and termination reason
func (c *Controller) Summary() domain.Summary {
	return domain.Summary{
		Reference:   c.reference,
		Pages:       c.pages,
		Items:       c.items,
		Qualified:   c.qualified,
		Termination: c.termination,
	}
}
