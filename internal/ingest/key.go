// Package ingest implements deduplication and persistence of fetched job
// candidates.
package ingest

import (
	"strings"

	"jobscraper/ingest-service/internal/model"
)

// CompositeKey builds the natural identity of a posting. The upstream source
// exposes no stable ID, so the (position, company, location, date) tuple
// stands in for one: all four must match exactly for two postings to be the
// same listing.
func CompositeKey(position, company, location, date string) string {
	return strings.Join([]string{position, company, location, date}, "|")
}

// CandidateKey is CompositeKey applied to a fetched candidate.
func CandidateKey(c model.RawJobCandidate) string {
	return CompositeKey(c.Position, c.Company, c.Location, c.Date)
}

// HasRequiredFields reports whether a candidate carries every field a stored
// posting must have. Candidates failing this check are dropped silently,
// never surfaced as errors.
func HasRequiredFields(c model.RawJobCandidate) bool {
	return c.Position != "" &&
		c.Company != "" &&
		c.Location != "" &&
		c.Date != "" &&
		c.JobURL != ""
}
