// Package scheduler wires up the cron job that fires the daily crawl sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobscraper/ingest-service/internal/crawler"
)

// Scheduler wraps robfig/cron and manages the sweep schedule. The
// SkipIfStillRunning chain drops a tick that fires while the previous sweep
// is still in flight — sweeps never overlap within one process.
type Scheduler struct {
	cron    *cron.Cron
	crawler *crawler.Crawler
	spec    string // cron spec, e.g. "0 4 * * *"
}

// New creates a Scheduler firing on the given cron spec.
func New(c *crawler.Crawler, spec string) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cron.DefaultLogger),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		crawler: c,
		spec:    spec,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] cron started — spec: %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

// runSweep is the top-level handler for one scheduled run. By the time the
// sweep returns an error all ingestion work is committed — only the
// maturation hand-off can still fail, and the next day's run is its retry.
func (s *Scheduler) runSweep(ctx context.Context) {
	log.Println("[scheduler] sweep started")

	if err := s.crawler.Sweep(ctx); err != nil {
		log.Printf("[scheduler] sweep finished with error: %v", err)
		return
	}

	log.Println("[scheduler] sweep complete")
}
