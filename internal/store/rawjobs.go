// Package store implements PostgreSQL-backed persistence for raw and mature
// jobs.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobscraper/ingest-service/internal/model"
)

const rawJobColumns = `id, position, company, location, posted_date, job_url,
	salary, company_logo, ago_time, is_easy_apply, is_mature_job, link_passed,
	created_at, updated_at`

// RawJobStore persists scraped postings in the raw_jobs table.
type RawJobStore struct {
	pool *pgxpool.Pool
}

// NewRawJobStore constructs a RawJobStore.
func NewRawJobStore(pool *pgxpool.Pool) *RawJobStore {
	return &RawJobStore{pool: pool}
}

// FindExistingKeys returns the subset of the given dedup keys that already
// have a stored posting. One query per batch regardless of batch size.
func (s *RawJobStore) FindExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	if len(keys) == 0 {
		return map[string]struct{}{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT dedup_key FROM raw_jobs WHERE dedup_key = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("query existing keys: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan dedup key: %w", err)
		}
		existing[key] = struct{}{}
	}
	return existing, rows.Err()
}

// Insert stores one posting. The unique index on dedup_key is the backstop
// against a concurrent sweep inserting the same key between the batched
// existence check and this call; losing that race returns nil, nil.
func (s *RawJobStore) Insert(ctx context.Context, job model.RawJob, dedupKey string) (*model.RawJob, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO raw_jobs (position, company, location, posted_date, job_url,
		                       salary, company_logo, ago_time, is_easy_apply,
		                       is_mature_job, link_passed, dedup_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (dedup_key) DO NOTHING
		 RETURNING id, created_at, updated_at`,
		job.Position, job.Company, job.Location, job.Date, job.JobURL,
		job.Salary, job.CompanyLogo, job.AgoTime, job.IsEasyApply,
		job.IsMatureJob, job.LinkPassed, dedupKey,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert raw job: %w", err)
	}
	return &job, nil
}

// List returns one page of stored postings, newest first, plus the total
// row count.
func (s *RawJobStore) List(ctx context.Context, page, limit int) ([]model.RawJob, int, error) {
	offset := (page - 1) * limit

	rows, err := s.pool.Query(ctx,
		`SELECT `+rawJobColumns+`
		 FROM raw_jobs
		 ORDER BY created_at DESC
		 OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list raw jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.RawJob, 0, limit)
	for rows.Next() {
		var j model.RawJob
		if err := rows.Scan(
			&j.ID, &j.Position, &j.Company, &j.Location, &j.Date, &j.JobURL,
			&j.Salary, &j.CompanyLogo, &j.AgoTime, &j.IsEasyApply,
			&j.IsMatureJob, &j.LinkPassed, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan raw job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := s.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Count returns the number of stored postings.
func (s *RawJobStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM raw_jobs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count raw jobs: %w", err)
	}
	return total, nil
}
