package crawler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sweepLockKey = "ingest:sweep:lock"
	// A sweep over all keywords normally finishes well inside this; the TTL
	// only matters if a holder dies without releasing.
	sweepLockTTL = 2 * time.Hour
)

// RunLock is a Redis SET NX EX lease that keeps two service replicas from
// sweeping at the same time. In-process overlap is already prevented by the
// scheduler's skip-if-still-running chain; this guards across processes.
type RunLock struct {
	rdb *redis.Client
}

// NewRunLock constructs a RunLock.
func NewRunLock(rdb *redis.Client) *RunLock {
	return &RunLock{rdb: rdb}
}

// Acquire takes the lease. false means another sweep holds it.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	return l.rdb.SetNX(ctx, sweepLockKey, time.Now().UTC().Format(time.RFC3339), sweepLockTTL).Result()
}

// Release drops the lease.
func (l *RunLock) Release(ctx context.Context) error {
	return l.rdb.Del(ctx, sweepLockKey).Err()
}
