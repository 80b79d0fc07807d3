package fetch

import (
	"math/rand"
	"net/http"
)

// acceptLanguages are Accept-Language values of browsers a Belarusian reader would use
var acceptLanguages = []string{
	"ru-RU,ru;q=0.9",
	"ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"ru-BY,ru;q=0.9,be;q=0.8",
	"be-BY,be;q=0.9,ru;q=0.8",
	"ru,en;q=0.9",
}

// setBrowserHeaders adds page-navigation headers with some randomization.
// User-Agent is set by the collector.
func setBrowserHeaders(h *http.Header) {
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "same-origin")

	if rand.Float32() < 0.3 { //nolint:gosec // header variation only
		h.Set("DNT", "1")
	}
}
