package domain

import "time"

// ListingItem represents a single teaser on a listing page
type ListingItem struct {
	Title   string
	Snippet string
	Link    string // absolute article URL
	Date    Day    // zero if the listing entry had no parsable date
	Page    int    // listing page number the item was found on
}

// Article represents a fetched article page with the listing data it came from
type Article struct {
	URL     string
	Title   string
	Snippet string

	// Body is always present, empty until loaded. BodyLoaded tells "not loaded" from "loaded but empty".
	Body       string
	BodyLoaded bool

	Published          time.Time
	PublishedDefaulted bool // true when no date was found on the page and processing time was used
}

// Text returns title, snippet and body joined into one text for field extraction.
// Parts are separated by a sentence break unless they already end with one.
func (a Article) Text() string {
	res := ""
	for _, part := range []string{a.Title, a.Snippet, a.Body} {
		if part == "" {
			continue
		}
		if res != "" {
			switch res[len(res)-1] {
			case '.', '!', '?':
				res += " "
			default:
				res += ". "
			}
		}
		res += part
	}
	return res
}
