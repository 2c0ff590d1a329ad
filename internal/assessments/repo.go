package assessments

import "context"

// Repo defines persistence operations for assessments.
type Repo interface {
	Create(ctx context.Context, assessment Assessment) error
	GetByID(ctx context.Context, assessmentID string) (Assessment, error)
	List(ctx context.Context, limit, offset int) ([]Assessment, error)
	SetReportKey(ctx context.Context, assessmentID, reportKey string) error
}
