package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobscraper/ingest-service/internal/model"
)

// ErrNotFound is returned when a mature job does not exist.
var ErrNotFound = errors.New("mature job not found")

const matureJobColumns = `id, raw_job_id, source, url, email, is_applied,
	is_relevant, applied_by, created_at, updated_at`

// MatureJobStore persists promoted postings in the mature_jobs table.
// Rows are created by the downstream maturation service and managed here
// (listing, applied-by bookkeeping).
type MatureJobStore struct {
	pool *pgxpool.Pool
}

// NewMatureJobStore constructs a MatureJobStore.
func NewMatureJobStore(pool *pgxpool.Pool) *MatureJobStore {
	return &MatureJobStore{pool: pool}
}

// Create inserts a mature job and returns the stored row.
func (s *MatureJobStore) Create(ctx context.Context, mj model.MatureJob) (*model.MatureJob, error) {
	if mj.AppliedBy == nil {
		mj.AppliedBy = []string{}
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO mature_jobs (raw_job_id, source, url, email, is_applied,
		                          is_relevant, applied_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		mj.RawJobID, string(mj.Source), mj.URL, mj.Email, mj.IsApplied,
		mj.IsRelevant, mj.AppliedBy,
	).Scan(&mj.ID, &mj.CreatedAt, &mj.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert mature job: %w", err)
	}
	return &mj, nil
}

// List returns one page of mature jobs, newest first, plus the total count.
func (s *MatureJobStore) List(ctx context.Context, page, limit int) ([]model.MatureJob, int, error) {
	offset := (page - 1) * limit

	rows, err := s.pool.Query(ctx,
		`SELECT `+matureJobColumns+`
		 FROM mature_jobs
		 ORDER BY created_at DESC
		 OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list mature jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.MatureJob, 0, limit)
	for rows.Next() {
		var mj model.MatureJob
		var source string
		if err := rows.Scan(
			&mj.ID, &mj.RawJobID, &source, &mj.URL, &mj.Email, &mj.IsApplied,
			&mj.IsRelevant, &mj.AppliedBy, &mj.CreatedAt, &mj.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan mature job: %w", err)
		}
		mj.Source = model.Source(source)
		jobs = append(jobs, mj)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mature_jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count mature jobs: %w", err)
	}
	return jobs, total, nil
}

// UpdateAppliedBy applies set semantics to the applied-by user list
// (removals first, then additions, no duplicates) and optionally flips the
// relevance flag. Returns ErrNotFound for an unknown ID.
func (s *MatureJobStore) UpdateAppliedBy(ctx context.Context, id string, add, remove []string, isRelevant *bool) (*model.MatureJob, error) {
	var current []string
	err := s.pool.QueryRow(ctx,
		`SELECT applied_by FROM mature_jobs WHERE id = $1`, id,
	).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load applied_by: %w", err)
	}

	appliedBy := applySetOps(current, add, remove)

	var mj model.MatureJob
	var source string
	err = s.pool.QueryRow(ctx,
		`UPDATE mature_jobs
		 SET applied_by  = $1,
		     is_relevant = COALESCE($2::boolean, is_relevant),
		     updated_at  = NOW()
		 WHERE id = $3
		 RETURNING `+matureJobColumns,
		appliedBy, isRelevant, id,
	).Scan(
		&mj.ID, &mj.RawJobID, &source, &mj.URL, &mj.Email, &mj.IsApplied,
		&mj.IsRelevant, &mj.AppliedBy, &mj.CreatedAt, &mj.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update applied_by: %w", err)
	}
	mj.Source = model.Source(source)
	return &mj, nil
}

// applySetOps treats the applied-by list as a set, preserving first-seen
// order of the survivors.
func applySetOps(current, add, remove []string) []string {
	removed := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		removed[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(current)+len(add))
	result := make([]string, 0, len(current)+len(add))
	for _, id := range current {
		if _, drop := removed[id]; drop {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	// Additions are applied after removals, so an ID in both lists stays.
	for _, id := range add {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
