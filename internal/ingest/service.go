package ingest

import (
	"context"
	"errors"
	"fmt"

	"jobscraper/ingest-service/internal/model"
)

// ErrStoreUnavailable wraps persistence failures during an ingest call.
// The whole batch fails; each insert is independent, so no partial state is
// left inconsistent.
var ErrStoreUnavailable = errors.New("raw job store unavailable")

// Store is the subset of raw-job persistence the ingestion service needs.
type Store interface {
	// FindExistingKeys returns the subset of keys already present.
	FindExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
	// Insert persists one job under its dedup key. A nil, nil return means a
	// concurrent insert already owns the key.
	Insert(ctx context.Context, job model.RawJob, dedupKey string) (*model.RawJob, error)
}

// Service filters a fetched batch down to postings not yet stored and
// persists only those.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Ingest deduplicates one fetch call's results against the store and inserts
// the new, valid candidates sequentially, returning exactly the inserted
// rows. The caller uses an empty return to end pagination for the current
// keyword, so already-seen and invalid candidates must not count as new.
//
// The existence check is a single batched query over the whole candidate
// list, not one query per candidate — pages can carry dozens of candidates.
func (s *Service) Ingest(ctx context.Context, candidates []model.RawJobCandidate) ([]model.RawJob, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		keys = append(keys, CandidateKey(c))
	}

	existing, err := s.store.FindExistingKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if existing == nil {
		existing = make(map[string]struct{})
	}

	inserted := make([]model.RawJob, 0, len(candidates))
	for _, c := range candidates {
		key := CandidateKey(c)
		if _, ok := existing[key]; ok {
			continue
		}
		if !HasRequiredFields(c) {
			continue
		}

		row, err := s.store.Insert(ctx, newRawJob(c), key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if row == nil {
			// Lost a concurrent-insert race on the key; treat as duplicate.
			continue
		}

		// Marking the key existing also collapses in-batch duplicates.
		existing[key] = struct{}{}
		inserted = append(inserted, *row)
	}

	return inserted, nil
}

// newRawJob applies the storage defaults for optional candidate fields.
func newRawJob(c model.RawJobCandidate) model.RawJob {
	salary := c.Salary
	if salary == "" {
		salary = model.SalaryNotSpecified
	}
	return model.RawJob{
		Position:    c.Position,
		Company:     c.Company,
		Location:    c.Location,
		Date:        c.Date,
		JobURL:      c.JobURL,
		Salary:      salary,
		CompanyLogo: c.CompanyLogo,
		AgoTime:     c.AgoTime,
		IsEasyApply: false,
		IsMatureJob: false,
		LinkPassed:  false,
	}
}
