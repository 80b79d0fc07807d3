// Package dates parses the date encodings found on article pages into a single time value
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps genitive Russian month names, as used in "08 января 2026", to month numbers
var months = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

// Layouts are structured templates tried in order after the exact long form
var Layouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"02 01 2006",
}

const longForm = `(\d{1,2})\s+([а-яё]+)\s+(\d{4})(?:,\s*(\d{1,2}):(\d{2}))?`

var (
	reLongExact = regexp.MustCompile(`^` + longForm + `$`)
	reLongLoose = regexp.MustCompile(longForm)
)

// Normalizer parses date texts in a fixed location
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer makes a normalizer for the given location, time.Local if nil
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Location returns location used for parsing
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Parse tries the exact long form, then structured layouts, then a loose long-form search.
// The first success wins. Texts carrying their own offset (RFC3339) keep it.
func (n *Normalizer) Parse(text string) (time.Time, bool) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return time.Time{}, false
	}

	if t, ok := n.parseLong(reLongExact, text); ok {
		return t, true
	}

	for _, layout := range Layouts {
		if t, err := time.ParseInLocation(layout, text, n.loc); err == nil {
			return t, true
		}
	}

	return n.parseLong(reLongLoose, text)
}

func (n *Normalizer) parseLong(re *regexp.Regexp, text string) (time.Time, bool) {
	m := re.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return time.Time{}, false
	}
	month, ok := months[m[2]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	hour, minute := 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if hour > 23 || minute > 59 {
			return time.Time{}, false
		}
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, n.loc)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false // 31 февраля and alike
	}
	return t, true
}
