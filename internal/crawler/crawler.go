// Package crawler implements the scheduled multi-keyword crawl sweep: for
// each configured keyword it pages through the external source until a page
// yields nothing new, then hands the run over to the maturation pipeline.
package crawler

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"jobscraper/ingest-service/internal/model"
)

// Fetcher queries the external job source for one page of results.
type Fetcher interface {
	Fetch(ctx context.Context, criteria model.SearchCriteria) ([]model.RawJobCandidate, error)
}

// Ingestor persists a fetched batch and reports which postings were new.
type Ingestor interface {
	Ingest(ctx context.Context, candidates []model.RawJobCandidate) ([]model.RawJob, error)
}

// Notifier triggers the downstream maturation pipeline.
type Notifier interface {
	Notify(ctx context.Context) error
}

// Locker serializes sweeps across service replicas. Acquire returns false
// when another sweep already holds the lease.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Publisher announces a finished sweep to interested consumers.
type Publisher interface {
	PublishSweepDone(ctx context.Context, summary SweepSummary)
}

// SweepSummary is the outcome of one full sweep.
type SweepSummary struct {
	RunID          string `json:"runId"`
	NewJobs        int    `json:"newJobs"`
	Pages          int    `json:"pages"`
	FailedKeywords int    `json:"failedKeywords"`
}

// Crawler walks keywords strictly in list order and pages strictly in
// increasing order, one fetch at a time — sequential on purpose, to bound
// load on the third-party source.
type Crawler struct {
	fetcher   Fetcher
	ingestor  Ingestor
	notifier  Notifier
	lock      Locker    // optional
	publisher Publisher // optional
	keywords  []string
	defaults  model.SearchDefaults
}

// New constructs a Crawler. lock and publisher may be nil.
func New(fetcher Fetcher, ingestor Ingestor, notifier Notifier, lock Locker, publisher Publisher, keywords []string, defaults model.SearchDefaults) *Crawler {
	return &Crawler{
		fetcher:   fetcher,
		ingestor:  ingestor,
		notifier:  notifier,
		lock:      lock,
		publisher: publisher,
		keywords:  keywords,
		defaults:  defaults,
	}
}

// Sweep runs one full pass over every configured keyword, then fires the
// maturation trigger exactly once. Per-keyword failures are contained: they
// end that keyword's pagination and the sweep moves on. Only the notify
// error propagates, and only after all ingestion work is durably committed.
func (c *Crawler) Sweep(ctx context.Context) error {
	if c.lock != nil {
		ok, err := c.lock.Acquire(ctx)
		if err != nil {
			slog.Warn("sweep lock acquire failed, proceeding without it", "err", err)
		} else if !ok {
			log.Println("[crawler] another sweep is already running — skipping")
			return nil
		} else {
			defer func() {
				if err := c.lock.Release(context.WithoutCancel(ctx)); err != nil {
					slog.Warn("sweep lock release failed", "err", err)
				}
			}()
		}
	}

	runID := uuid.NewString()
	log.Printf("[crawler] sweep %s started — %d keyword(s)", runID, len(c.keywords))

	summary := SweepSummary{RunID: runID}
	for _, keyword := range c.keywords {
		newCount, pages, err := c.crawlKeyword(ctx, keyword)
		summary.NewJobs += newCount
		summary.Pages += pages
		if err != nil {
			summary.FailedKeywords++
			log.Printf("[crawler] keyword %q abandoned on page %d: %v — continuing", keyword, pages, err)
		}
	}

	log.Printf("[crawler] sweep %s complete — new=%d pages=%d failedKeywords=%d",
		runID, summary.NewJobs, summary.Pages, summary.FailedKeywords)

	if c.publisher != nil {
		c.publisher.PublishSweepDone(ctx, summary)
	}

	log.Println("[crawler] triggering maturation pipeline — this may take several minutes")
	if err := c.notifier.Notify(ctx); err != nil {
		return fmt.Errorf("maturation notify: %w", err)
	}
	return nil
}

// crawlKeyword pages through the source for one keyword. Pagination ends
// when a page yields zero new postings: an empty page means the source is
// exhausted, and a duplicates-only page is treated as no more new content
// (an accepted approximation — deeper pages could theoretically still hold
// fresh results). Any fetch or ingest error also ends this keyword.
func (c *Crawler) crawlKeyword(ctx context.Context, keyword string) (newCount, pages int, err error) {
	for page := 0; ; page++ {
		criteria := c.defaults.Criteria(keyword, strconv.Itoa(page))

		inserted, err := c.FetchAndStore(ctx, criteria)
		if err != nil {
			return newCount, page, err
		}
		pages++

		if len(inserted) == 0 {
			log.Printf("[crawler] no new jobs for keyword %q on page %d", keyword, page)
			return newCount, pages, nil
		}

		newCount += len(inserted)
		log.Printf("[crawler] keyword %q page %d: %d new job(s)", keyword, page, len(inserted))
	}
}

// FetchAndStore runs a single fetch+ingest cycle. The scheduled sweep uses
// it per page; the HTTP API exposes it directly for ad hoc queries.
func (c *Crawler) FetchAndStore(ctx context.Context, criteria model.SearchCriteria) ([]model.RawJob, error) {
	candidates, err := c.fetcher.Fetch(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	inserted, err := c.ingestor.Ingest(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return inserted, nil
}
