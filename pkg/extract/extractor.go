// Package extract pulls a person's name and position title out of appointment news text.
// Each field is extracted by an ordered chain of strategies, the first successful strategy wins.
package extract

import (
	"github.com/go-pkgz/lgr"

	"github.com/umputun/appointwatch/pkg/domain"
)

// Strategy extracts a value from text, returns false if nothing matched
type Strategy func(text string) (string, bool)

// FirstMatch runs strategies in order and returns the first successful result
func FirstMatch(text string, strategies ...Strategy) (string, bool) {
	for _, s := range strategies {
		if res, ok := s(text); ok {
			return res, true
		}
	}
	return "", false
}

// Extractor extracts person name and position with configurable strategy chains
type Extractor struct {
	Person   []Strategy
	Position []Strategy
}

// NewDefault makes an extractor with the built-in chains
func NewDefault() *Extractor {
	return &Extractor{Person: PersonStrategies(), Position: PositionStrategies()}
}

// Extract runs both chains over text. Failures are logged and reported via Found flags.
func (e *Extractor) Extract(text string) domain.Fields {
	var res domain.Fields
	res.PersonName, res.PersonFound = FirstMatch(text, e.Person...)
	if !res.PersonFound {
		lgr.Printf("[WARN] person name not found in %q", preview(text))
	}
	res.Position, res.PositionFound = FirstMatch(text, e.Position...)
	if !res.PositionFound {
		lgr.Printf("[WARN] position not found in %q", preview(text))
	}
	return res
}

func preview(text string) string {
	const limit = 80
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
