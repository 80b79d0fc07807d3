package content

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/appointwatch/pkg/dates"
	"github.com/umputun/appointwatch/pkg/domain"
)

// articleBodySelector is the semantic body container, all its text nodes make the body
const articleBodySelector = `div[itemprop="articleBody"]`

// BodySelectors are class-based body containers tried in order when there is no semantic container.
// Paragraph text of the first container having paragraphs is used.
var BodySelectors = []string{
	".article-text", ".news-text", ".content", "article", ".post-content", "#article-content", ".detail-text", ".text",
}

// dateSource is a place on the article page where publication date may be found
type dateSource struct {
	selector string
	attr     string // empty means element text
}

// dateSources are tried in order, the first parsable value wins
var dateSources = []dateSource{
	{selector: ".date_full"},
	{selector: "time[datetime]", attr: "datetime"},
	{selector: ".date"},
	{selector: ".news-date"},
	{selector: ".publication-date"},
	{selector: `meta[property="article:published_time"]`, attr: "content"},
	{selector: ".meta-date"},
	{selector: ".article-date"},
}

// ArticleParser extracts article data from fetched article pages
type ArticleParser struct {
	dates *dates.Normalizer
	now   func() time.Time
}

// NewArticleParser makes article parser. now is used for publication date when the page has none.
func NewArticleParser(normalizer *dates.Normalizer, now func() time.Time) *ArticleParser {
	if now == nil {
		now = time.Now
	}
	return &ArticleParser{dates: normalizer, now: now}
}

// Parse makes an article from listing item and its page. Body is not loaded, see LoadBody.
func (p *ArticleParser) Parse(item domain.ListingItem, doc *goquery.Document) domain.Article {
	published, ok := p.Published(doc)
	if !ok {
		lgr.Printf("[WARN] no publication date found for %s, using processing time", item.Link)
	}
	return domain.Article{
		URL:                item.Link,
		Title:              item.Title,
		Snippet:            item.Snippet,
		Published:          published,
		PublishedDefaulted: !ok,
	}
}

// LoadBody fills article body from the page once, repeated calls are no-op
func (p *ArticleParser) LoadBody(a *domain.Article, doc *goquery.Document) {
	if a.BodyLoaded {
		return
	}
	a.Body = p.Body(doc)
	a.BodyLoaded = true
	if a.Body == "" {
		lgr.Printf("[WARN] no body text extracted from %s", a.URL)
	}
}

// Published returns publication date from the page. If nothing parsable found,
// returns current time and false, the result is never zero.
func (p *ArticleParser) Published(doc *goquery.Document) (time.Time, bool) {
	for _, src := range dateSources {
		s := doc.Find(src.selector).First()
		if s.Length() == 0 {
			continue
		}
		value := s.Text()
		if src.attr != "" {
			value, _ = s.Attr(src.attr)
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		if t, ok := p.dates.Parse(value); ok {
			return t, true
		}
		lgr.Printf("[DEBUG] unparsable date %q in %s", value, src.selector)
	}
	return p.now().In(p.dates.Location()), false
}

// Body returns article text trying the semantic container, class-based containers,
// all page paragraphs and finally trafilatura extraction. Empty if all failed.
func (p *ArticleParser) Body(doc *goquery.Document) string {
	strategies := []func(*goquery.Document) string{semanticBody, classBody, paragraphsBody, extractedBody}
	for _, s := range strategies {
		if res := s(doc); res != "" {
			return res
		}
	}
	return ""
}

func semanticBody(doc *goquery.Document) string {
	container := doc.Find(articleBodySelector).First()
	if container.Length() == 0 {
		return ""
	}
	var parts []string
	collectText(container, &parts)
	return strings.Join(parts, " ")
}

func classBody(doc *goquery.Document) string {
	for _, sel := range BodySelectors {
		container := doc.Find(sel)
		if container.Length() == 0 {
			continue
		}
		if res := paragraphs(container.Find("p")); res != "" {
			return res
		}
	}
	return ""
}

func paragraphsBody(doc *goquery.Document) string {
	return paragraphs(doc.Find("p"))
}

// extractedBody runs trafilatura over the whole page as the last resort
func extractedBody(doc *goquery.Document) string {
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     doc.Url,
	}
	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil || result == nil {
		lgr.Printf("[DEBUG] trafilatura extraction failed: %v", err)
		return ""
	}
	return strings.Join(strings.Fields(result.ContentText), " ")
}

// collectText appends trimmed text nodes of s in document order, skipping scripts and styles
func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
		case "script", "style", "#comment":
		default:
			collectText(c, parts)
		}
	})
}

func paragraphs(s *goquery.Selection) string {
	var parts []string
	s.Each(func(_ int, p *goquery.Selection) {
		if t := strings.Join(strings.Fields(p.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}
