// Package fetch retrieves HTML pages politely: one request at a time, a fixed delay between requests,
// browser-like headers and retries with backoff for transient failures.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/gocolly/colly/v2"
)

// DefaultUserAgent is sent when no user agent configured
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const (
	ctxBody   = "body"
	ctxURL    = "url"
	ctxStatus = "status"
)

// errPermanent marks failures not worth retrying
var errPermanent = errors.New("permanent failure")

// StatusError is returned for non-success HTTP responses
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Config defines fetcher parameters
type Config struct {
	UserAgent  string
	Delay      time.Duration // pause between consecutive requests
	Timeout    time.Duration // per request
	Retries    int           // attempts per page, at least one
	RetryDelay time.Duration // initial backoff
}

// Collector fetches pages with colly, serializing all requests
type Collector struct {
	base       *colly.Collector
	retries    int
	retryDelay time.Duration
	mu         sync.Mutex
}

// New makes a fetcher. Zero config fields get defaults.
func New(cfg Config) (*Collector, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	c := colly.NewCollector(colly.UserAgent(cfg.UserAgent), colly.AllowURLRevisit())
	c.SetRequestTimeout(cfg.Timeout)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: cfg.Delay}); err != nil {
		return nil, fmt.Errorf("set limit rule: %w", err)
	}

	return &Collector{base: c, retries: cfg.Retries, retryDelay: cfg.RetryDelay}, nil
}

// Fetch gets the page and parses it. Client errors other than 429 fail at once,
// everything else is retried with backoff. Document Url is the final URL after redirects.
func (f *Collector) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var doc *goquery.Document
	retrier := repeater.NewBackoff(f.retries, f.retryDelay, repeater.WithMaxDelay(30*time.Second))
	err := retrier.Do(ctx, func() error {
		var err error
		doc, err = f.fetchOnce(ctx, pageURL)
		if err != nil {
			lgr.Printf("[DEBUG] fetch attempt for %s failed: %v", pageURL, err)
		}
		return err
	}, errPermanent)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (f *Collector) fetchOnce(ctx context.Context, pageURL string) (*goquery.Document, error) {
	c := f.base.Clone()
	colly.StdlibContext(ctx)(c)
	c.OnRequest(func(r *colly.Request) {
		setBrowserHeaders(r.Headers)
	})
	c.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(ctxBody, r.Body)
		r.Ctx.Put(ctxURL, r.Request.URL)
	})
	c.OnError(func(r *colly.Response, _ error) {
		r.Ctx.Put(ctxStatus, r.StatusCode)
	})

	cctx := colly.NewContext()
	if err := c.Request(http.MethodGet, pageURL, nil, cctx, nil); err != nil {
		code, _ := cctx.GetAny(ctxStatus).(int)
		if code == 0 {
			return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
		}
		serr := &StatusError{URL: pageURL, Code: code}
		if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %w", errPermanent, serr)
		}
		return nil, serr
	}

	body, ok := cctx.GetAny(ctxBody).([]byte)
	if !ok {
		return nil, fmt.Errorf("fetch %s: no response body", pageURL)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", errPermanent, pageURL, err)
	}
	if u, ok := cctx.GetAny(ctxURL).(*url.URL); ok {
		doc.Url = u
	}
	return doc, nil
}
