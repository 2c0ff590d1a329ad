package assessments

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
)

// MemoryRepo stores assessments in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Assessment
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Assessment)}
}

// Create stores a copy of the assessment; later changes to the caller's
// maps or slices do not reach the stored value.
func (r *MemoryRepo) Create(ctx context.Context, assessment Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[assessment.ID] = cloneAssessment(assessment)
	return nil
}

// GetByID returns an assessment by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[assessmentID]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return cloneAssessment(a), nil
}

// List returns assessments newest first, with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Assessment, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, cloneAssessment(a))
	}
	r.mu.RUnlock()

	if offset >= len(all) {
		return []Assessment{}, nil
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// SetReportKey records where the exported report lives.
func (r *MemoryRepo) SetReportKey(ctx context.Context, assessmentID, reportKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[assessmentID]
	if !ok {
		return ErrNotFound
	}
	a.ReportKey = reportKey
	r.byID[assessmentID] = a
	return nil
}

// cloneAssessment copies CompanyInfo and the top-level slices.
// Nested values inside CompanyInfo are still shared.
func cloneAssessment(a Assessment) Assessment {
	a.CompanyInfo = maps.Clone(a.CompanyInfo)
	a.Responses = slices.Clone(a.Responses)
	a.CategoryScores = slices.Clone(a.CategoryScores)
	a.Recommendations = slices.Clone(a.Recommendations)
	a.Warnings = slices.Clone(a.Warnings)
	return a
}

var _ Repo = (*MemoryRepo)(nil)
