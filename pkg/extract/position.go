package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minPositionLength is the number of characters a position candidate must exceed
const minPositionLength = 5

// TitleNouns are position nouns used by the dash-bounded template
var TitleNouns = []string{
	"председатель", "начальник", "министр", "руководитель", "директор", "заместитель", "советник", "помощник",
	"представитель",
}

// PositionKeywords are used by the last-resort sentence scan
var PositionKeywords = []string{
	"председатель", "министр", "начальник", "директор", "руководитель", "заместитель", "советник", "помощник",
	"представитель", "посол", "судья", "прокурор",
}

var titleNounsGroup = `(?:` + strings.Join(TitleNouns, "|") + `)`

// position templates in order of preference, each captures the position phrase in group 1
var positionTemplates = []*regexp.Regexp{
	regexp.MustCompile(`(?i)на должность\s+([^.]+)`),
	regexp.MustCompile(`(?i)назначен\s+([^.]+)`),
	regexp.MustCompile(`(?i)назначена\s+([^.]+)`),
	regexp.MustCompile(`(?i)–\s+([^.]+?\s+` + titleNounsGroup + `[^.]+)`),
	regexp.MustCompile(`(?i)—\s+([^.]+?\s+` + titleNounsGroup + `[^.]+)`),
}

var reSpaces = regexp.MustCompile(`\s+`)

// PositionStrategies returns the position chain: templates first, then a keyword sentence scan
func PositionStrategies() []Strategy {
	res := make([]Strategy, 0, len(positionTemplates)+1)
	for _, re := range positionTemplates {
		res = append(res, Template(re))
	}
	return append(res, KeywordSentence(PositionKeywords))
}

// Template returns a strategy taking group 1 of the first match of re, accepted only if long enough after cleanup
func Template(re *regexp.Regexp) Strategy {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			return "", false
		}
		res := cleanPosition(m[1])
		if utf8.RuneCountInString(res) <= minPositionLength {
			return "", false
		}
		return res, true
	}
}

// KeywordSentence returns a strategy taking the first sentence fragment containing any of keywords.
// Keywords are tried in order, so the first keyword found anywhere in text decides the fragment.
func KeywordSentence(keywords []string) Strategy {
	res := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		res = append(res, regexp.MustCompile(`(?i)[^.]*`+regexp.QuoteMeta(k)+`[^.]*`))
	}
	return func(text string) (string, bool) {
		for _, re := range res {
			if m := re.FindString(text); m != "" {
				return cleanPosition(m), true
			}
		}
		return "", false
	}
}

// cleanPosition collapses whitespace and strips trailing punctuation
func cleanPosition(s string) string {
	s = reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.TrimSpace(strings.TrimRight(s, ".,;:"))
}
