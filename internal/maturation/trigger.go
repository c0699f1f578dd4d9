// Package maturation notifies the downstream service that fresh raw jobs are
// ready for promotion.
package maturation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"syscall"
	"time"
)

// The downstream pipeline walks every new raw job, so a generous timeout;
// the original operators report runs of several minutes.
const notifyTimeout = 10 * time.Minute

var (
	// ErrNotConfigured means MATURE_JOB_URL was never set.
	ErrNotConfigured = errors.New("mature job endpoint not configured")
	// ErrUnreachable marks transport failures reaching the endpoint.
	ErrUnreachable = errors.New("mature job service unreachable")
	// ErrDownstream marks a 5xx response from the endpoint.
	ErrDownstream = errors.New("mature job service error")
)

// Trigger fires the single outbound notify call that hands a finished sweep
// over to the maturation pipeline. No payload, no retry: the next scheduled
// sweep is the retry mechanism.
type Trigger struct {
	endpoint string
	client   *http.Client
}

// NewTrigger constructs a Trigger. An empty endpoint is allowed — Notify
// then fails with ErrNotConfigured (the caller logs and moves on, since the
// ingestion work is already committed by that point).
func NewTrigger(endpoint string) *Trigger {
	return &Trigger{
		endpoint: endpoint,
		client:   &http.Client{Timeout: notifyTimeout},
	}
}

// Configured reports whether an endpoint was set.
func (t *Trigger) Configured() bool { return t.endpoint != "" }

// Notify POSTs an empty body to the maturation endpoint. Any status below
// 500 counts as delivered — a 4xx means the downstream received and rejected
// the call, which is its business, not a transport failure.
func (t *Trigger) Notify(ctx context.Context) error {
	if t.endpoint == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("build notify request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			log.Printf("[maturation] downstream unreachable at %s — is the service running?", t.endpoint)
			return fmt.Errorf("%w: connection refused", ErrUnreachable)
		}
		log.Printf("[maturation] notify failed: %v", err)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrDownstream, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusOK {
		log.Println("[maturation] pipeline completed successfully")
	} else {
		log.Printf("[maturation] pipeline completed with status %d", resp.StatusCode)
	}
	return nil
}
