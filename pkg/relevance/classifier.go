// Package relevance decides whether an article announces a presidential personnel decision.
// The check is a keyword heuristic: text must mention a relevant category and an appointment phrase.
package relevance

import (
	"strings"

	"github.com/umputun/appointwatch/pkg/domain"
)

// CategoryKeywords mark presidential, political or personnel news
var CategoryKeywords = []string{
	"президент", "политика", "власть", "кадровые решения", "назначения", "указ", "государство",
}

// AppointmentKeywords mark appointment-related phrases. The list overlaps with CategoryKeywords on purpose,
// both lists are maintained separately.
var AppointmentKeywords = []string{
	"президент назначил",
	"указом президента назначен",
	"президент принял кадровые решения",
	"назначен на должность",
	"освобожден от должности",
	"освобождён от должности",
	"назначена на должность",
	"назначен",
	"назначена",
	"назначены",
	"присвоено звание",
	"присвоен класс",
	"назначение",
	"кадровые решения",
	"перемещение",
	"увольнение",
	"отставка",
}

// Classifier checks texts against two independent keyword sets
type Classifier struct {
	categories   []string
	appointments []string
}

// New makes a classifier with the given keyword sets. Keywords are matched case-insensitively.
func New(categories, appointments []string) *Classifier {
	return &Classifier{categories: lowerAll(categories), appointments: lowerAll(appointments)}
}

// NewDefault makes a classifier with the built-in keyword sets
func NewDefault() *Classifier {
	return New(CategoryKeywords, AppointmentKeywords)
}

// Match reports whether text contains at least one category keyword and at least one appointment keyword
func (c *Classifier) Match(text string) bool {
	text = strings.ToLower(text)
	return containsAny(text, c.categories) && containsAny(text, c.appointments)
}

// Evaluate runs the two-pass check. Title pass needs the article published on the reference day and a
// matching title; if it passes, body is never requested. Otherwise body pass checks body text with no date gate.
func (c *Classifier) Evaluate(title string, published, reference domain.Day, body func() string) domain.Classification {
	if published == reference && c.Match(title) {
		return domain.Classification{Relevant: true, Stage: domain.StageTitle}
	}
	if c.Match(body()) {
		return domain.Classification{Relevant: true, Stage: domain.StageBody}
	}
	return domain.Classification{}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func lowerAll(keywords []string) []string {
	res := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			res = append(res, k)
		}
	}
	return res
}
