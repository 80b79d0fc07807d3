// Package listing parses the site's paginated news listing: teaser items, their compact dates
// and the "load more" affordance pointing to the next page.
package listing

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/appointwatch/pkg/domain"
)

// markup selectors of the listing page
const (
	itemSelector      = ".lenta_item"
	titleSelector     = ".lenta_item_title"
	linkSelector      = "a[href]"
	snippetSelector   = ".lenta_textsmall"
	daySelector       = ".new_date .day"
	monthYearSelector = ".new_date .month_year"
	loadMoreSelector  = "div.load_more[onclick]"
)

// Entry represents a raw listing entry as it appears on the page, before any filtering.
// Title or Link may be empty, the controller decides what to do with such entries.
type Entry struct {
	Title   string
	Snippet string
	Link    string
	Date    domain.Day // zero if date fragments are missing or malformed
}

// Page represents a parsed listing page
type Page struct {
	Entries  []Entry
	NextPath string // relative path of the next page, empty if there is no continue affordance
}

// Parser extracts listing entries from listing page documents
type Parser struct {
	root *url.URL
}

// NewParser makes a listing parser resolving links against site root
func NewParser(root *url.URL) *Parser {
	return &Parser{root: root}
}

// Parse extracts ordered entries and the next page path from a listing document
func (p *Parser) Parse(doc *goquery.Document) Page {
	var res Page
	doc.Find(itemSelector).Each(func(_ int, s *goquery.Selection) {
		res.Entries = append(res.Entries, p.entry(s))
	})

	doc.Find(loadMoreSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		onclick, _ := s.Attr("onclick")
		if path, ok := NextPagePath(onclick); ok {
			res.NextPath = path
			return false
		}
		return true
	})
	return res
}

// NextURL resolves the next page path against site root
func (p *Parser) NextURL(path string) (string, error) {
	return ResolveLink(p.root, path)
}

func (p *Parser) entry(s *goquery.Selection) Entry {
	var e Entry
	e.Title = collapseSpaces(s.Find(titleSelector).First().Text())
	e.Snippet = collapseSpaces(s.Find(snippetSelector).First().Text())

	if href, ok := s.Find(linkSelector).First().Attr("href"); ok {
		link, err := ResolveLink(p.root, href)
		if err != nil {
			lgr.Printf("[DEBUG] bad listing link %q: %v", href, err)
		}
		e.Link = link
	}

	day := s.Find(daySelector).First()
	monthYear := s.Find(monthYearSelector).First()
	if day.Length() > 0 && monthYear.Length() > 0 {
		if d, ok := ParseItemDate(day.Text(), monthYear.Text()); ok {
			e.Date = d
		} else {
			lgr.Printf("[WARN] failed to parse listing date, day=%q, month_year=%q", day.Text(), monthYear.Text())
		}
	}
	return e
}

// collapseSpaces trims s and replaces whitespace runs with single spaces
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
