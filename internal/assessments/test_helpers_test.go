package assessments

import (
	"os"
	"testing"
	"time"

	"readiness-backend/internal/readiness"
	"readiness-backend/internal/shared/telemetry"
)

var fixedNow = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

func quietLogs(t *testing.T) {
	t.Helper()
	telemetry.SetOutput(discard{})
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// uniformAnswers answers every catalog question with score.
func uniformAnswers(score int) []readiness.Answer {
	questions := readiness.MustDefaultCatalog().Questions()
	out := make([]readiness.Answer, 0, len(questions))
	for _, q := range questions {
		out = append(out, readiness.Answer{QuestionID: q.ID, Score: score})
	}
	return out
}

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{
		Repo: repo,
		Now:  func() time.Time { return fixedNow },
	}, repo
}
