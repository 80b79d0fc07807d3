package domain

import "time"

// Termination tells why a crawl stopped
type Termination string

// termination reasons
const (
	TerminationRunning   Termination = "running"
	TerminationExhausted Termination = "exhausted" // no continue affordance or empty page
	TerminationBoundary  Termination = "boundary"  // an item older than the reference day was seen
	TerminationStopped   Termination = "stopped"   // consumer stopped pulling or context canceled
	TerminationFailed    Termination = "failed"    // listing page could not be fetched
)

// Summary represents counters of a single crawl run
type Summary struct {
	Reference   Day
	Pages       int
	Items       int // listing items seen, including skipped and filtered
	Qualified   int // items passed to article processing
	Fetched     int // articles fetched and parsed
	Relevant    int
	Termination Termination
}

// Run represents a stored crawl run
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Summary    Summary
	Error      string
}
