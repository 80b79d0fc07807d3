package domain

import (
	"encoding/json"
	"time"
)

// sentinel strings shown when extraction failed
const (
	PersonNotDetermined  = "Не удалось определить ФИО"
	PositionNotSpecified = "Должность не указана"
)

// RawContentLimit is the number of body characters kept in a record for audit
const RawContentLimit = 1000

// Stage tells which classification pass decided relevance
type Stage string

// classification stages
const (
	StageNone  Stage = ""
	StageTitle Stage = "title"
	StageBody  Stage = "body"
)

// Classification represents the result of the two-pass relevance check
type Classification struct {
	Relevant bool
	Stage    Stage
}

// Fields represents person name and position extracted from article text
type Fields struct {
	PersonName    string
	PersonFound   bool
	Position      string
	PositionFound bool
}

// PersonOrSentinel returns extracted person name or the "not determined" sentinel
func (f Fields) PersonOrSentinel() string {
	if !f.PersonFound {
		return PersonNotDetermined
	}
	return f.PersonName
}

// PositionOrSentinel returns extracted position or the "not specified" sentinel
func (f Fields) PositionOrSentinel() string {
	if !f.PositionFound {
		return PositionNotSpecified
	}
	return f.Position
}

// Notification represents a notification about a new appointment
type Notification struct {
	Header string `json:"header"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Record represents the final result of processing one article
type Record struct {
	Title            string
	URL              string
	Snippet          string
	PersonName       string // rendered value, sentinel included; empty for irrelevant records
	Position         string // rendered value, sentinel included; empty for irrelevant records
	PublicationDate  time.Time
	IsPublishedToday bool
	Relevant         bool
	Stage            Stage
	Notification     *Notification // nil unless relevant
	ScrapedAt        time.Time
	RawContent       string
}

// NewRecord builds a record from processed article parts. fields and notification are used only if relevant.
func NewRecord(a Article, cls Classification, isToday bool, fields Fields, n *Notification, scrapedAt time.Time) Record {
	rec := Record{
		Title:            a.Title,
		URL:              a.URL,
		Snippet:          a.Snippet,
		PublicationDate:  a.Published,
		IsPublishedToday: isToday,
		Relevant:         cls.Relevant,
		Stage:            cls.Stage,
		ScrapedAt:        scrapedAt,
		RawContent:       truncateRunes(a.Body, RawContentLimit),
	}
	if cls.Relevant {
		rec.PersonName = fields.PersonOrSentinel()
		rec.Position = fields.PositionOrSentinel()
		rec.Notification = n
	}
	return rec
}

// MarshalJSON renders record in flat export form, with nulls for fields of irrelevant records
func (r Record) MarshalJSON() ([]byte, error) {
	type export struct {
		Title              string  `json:"title"`
		URL                string  `json:"url"`
		Snippet            string  `json:"snippet"`
		PersonName         *string `json:"person_name"`
		Position           *string `json:"position"`
		PublicationDate    string  `json:"publication_date"`
		IsToday            bool    `json:"is_today"`
		Relevant           bool    `json:"relevant"`
		ClassifiedBy       string  `json:"classified_by,omitempty"`
		NotificationHeader *string `json:"notification_header"`
		NotificationText   *string `json:"notification_text"`
		NotificationSource *string `json:"notification_source"`
		ScrapedAt          string  `json:"scraping_timestamp"`
		RawContent         string  `json:"raw_content"`
	}

	e := export{
		Title:           r.Title,
		URL:             r.URL,
		Snippet:         r.Snippet,
		PublicationDate: r.PublicationDate.Format(time.RFC3339),
		IsToday:         r.IsPublishedToday,
		Relevant:        r.Relevant,
		ClassifiedBy:    string(r.Stage),
		ScrapedAt:       r.ScrapedAt.Format(time.RFC3339),
		RawContent:      r.RawContent,
	}
	if r.Relevant {
		e.PersonName, e.Position = &r.PersonName, &r.Position
	}
	if r.Notification != nil {
		e.NotificationHeader = &r.Notification.Header
		e.NotificationText = &r.Notification.Text
		e.NotificationSource = &r.Notification.Source
	}
	return json.Marshal(e)
}

// truncateRunes cuts s to at most n characters, not bytes
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
