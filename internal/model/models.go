// Package model defines shared data structures for the ingest service.
package model

import "time"

// SalaryNotSpecified is stored when the source omits a salary.
const SalaryNotSpecified = "Not specified"

// RawJobCandidate is one listing as returned by the external job source,
// before validation and deduplication. The source has no stable identifier,
// so the (position, company, location, date) tuple acts as the natural key.
type RawJobCandidate struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	JobURL      string `json:"jobUrl"`
	Salary      string `json:"salary,omitempty"`
	CompanyLogo string `json:"companyLogo,omitempty"`
	AgoTime     string `json:"agoTime,omitempty"`
}

// RawJob mirrors a raw_jobs table row: a scraped listing that passed
// validation and deduplication. isMatureJob and linkPassed are flipped later
// by the downstream maturation service, never by this one.
type RawJob struct {
	ID          string    `json:"id"`
	Position    string    `json:"position"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	JobURL      string    `json:"jobUrl"`
	Salary      string    `json:"salary"`
	CompanyLogo string    `json:"companyLogo"`
	AgoTime     string    `json:"agoTime"`
	IsEasyApply bool      `json:"isEasyApply"`
	IsMatureJob bool      `json:"isMatureJob"`
	LinkPassed  bool      `json:"linkPassed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SearchCriteria is one unit of crawl work: a keyword plus the fixed filter
// set and a zero-based page cursor (string-encoded, as the source API wants
// it). Built per iteration by the crawler and discarded after use.
type SearchCriteria struct {
	Keyword         string `json:"keyword"`
	Location        string `json:"location,omitempty"`
	DateSincePosted string `json:"dateSincePosted,omitempty"`
	JobType         string `json:"jobType,omitempty"`
	RemoteFilter    string `json:"remoteFilter,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	SortBy          string `json:"sortBy,omitempty"`
	Page            string `json:"page,omitempty"`
}

// SearchDefaults holds the fixed filter values applied to every scheduled
// search, merged with each keyword by the crawler.
type SearchDefaults struct {
	Location        string
	DateSincePosted string
	JobType         string
	RemoteFilter    string
	ExperienceLevel string
	SortBy          string
}

// Criteria merges a keyword and page cursor with the fixed defaults.
func (d SearchDefaults) Criteria(keyword, page string) SearchCriteria {
	return SearchCriteria{
		Keyword:         keyword,
		Location:        d.Location,
		DateSincePosted: d.DateSincePosted,
		JobType:         d.JobType,
		RemoteFilter:    d.RemoteFilter,
		ExperienceLevel: d.ExperienceLevel,
		SortBy:          d.SortBy,
		Page:            page,
	}
}

// MatureJob mirrors a mature_jobs table row: a raw job promoted by the
// downstream maturation service into a vetted, contactable posting.
type MatureJob struct {
	ID         string    `json:"id"`
	RawJobID   *string   `json:"rawJobId"`
	Source     Source    `json:"source"`
	URL        string    `json:"url,omitempty"`
	Email      string    `json:"email,omitempty"`
	IsApplied  bool      `json:"isApplied"`
	IsRelevant bool      `json:"isRelevant"`
	AppliedBy  []string  `json:"appliedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
