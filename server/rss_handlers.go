package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/appointwatch/pkg/feed"
	"github.com/umputun/appointwatch/pkg/repository"
)

const defaultRSSLimit = 100

// rssHandler serves RSS feed of relevant records
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.GetRecords(r.Context(), repository.RecordFilter{RelevantOnly: true, Limit: defaultRSSLimit})
	if err != nil {
		lgr.Printf("[ERROR] failed to get records for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(s.cfg.BaseURL).GenerateRSS(records)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
