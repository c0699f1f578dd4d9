package crawler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// sweepDoneChannel carries sweep summaries for downstream consumers
// (dashboards, the gateway's SSE feed).
const sweepDoneChannel = "EVENT_RAW_JOBS_INGESTED"

// RedisPublisher publishes sweep summaries on a Redis channel. Publishing is
// best-effort: a failure is logged, never fatal to the sweep.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher constructs a RedisPublisher.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// PublishSweepDone announces a finished sweep.
func (p *RedisPublisher) PublishSweepDone(ctx context.Context, summary SweepSummary) {
	event, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("marshal sweep summary failed", "err", err)
		return
	}
	if err := p.rdb.Publish(ctx, sweepDoneChannel, event).Err(); err != nil {
		slog.Warn("publish EVENT_RAW_JOBS_INGESTED failed", "runId", summary.RunID, "err", err)
	}
}
