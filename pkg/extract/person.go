package extract

import (
	"regexp"
	"strings"
)

// reFullName matches 2-3 consecutive capitalized Cyrillic words
var reFullName = regexp.MustCompile(`[А-ЯЁ][а-яё]+(?:\s+[А-ЯЁ][а-яё]+){1,2}`)

// ExcludedNameWords are institutional words, a capitalized sequence containing any of them is not a person.
// Matching is by substring, so stems cover inflected forms ("Совет" rejects "Совета").
var ExcludedNameWords = []string{
	"Президент", "Республик", "Беларус", "Комитет", "Совет", "Министр", "Государствен", "Национальн",
	"Администраци", "Председател", "Указ",
}

// PersonStrategies returns the person name chain
func PersonStrategies() []Strategy {
	return []Strategy{CapitalizedName(ExcludedNameWords)}
}

// CapitalizedName returns a strategy taking the first 2-3 word capitalized sequence free of excluded words
func CapitalizedName(excluded []string) Strategy {
	return func(text string) (string, bool) {
		for _, candidate := range reFullName.FindAllString(text, -1) {
			if containsAnyWord(candidate, excluded) {
				continue
			}
			return strings.Join(strings.Fields(candidate), " "), true
		}
		return "", false
	}
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
