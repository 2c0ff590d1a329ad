package assessments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"readiness-backend/internal/queue"
	"readiness-backend/internal/readiness"
	"readiness-backend/internal/readiness/recommendations"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/storage/object"
	"readiness-backend/internal/shared/telemetry"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	reportPrefix = "reports/"
)

// Service scores submissions, stores them and exports reports.
// Catalog and Engine default to the built-in ones when nil. Store and
// JobQueue are optional.
type Service struct {
	Repo     Repo
	Catalog  *readiness.Catalog
	Engine   *recommendations.Engine
	Store    object.ObjectStore
	JobQueue queue.Client
	Now      func() time.Time
}

// Submit scores the submission, stores the result and enqueues a report
// export. Invalid answers are reported as warnings and do not fail the call.
func (s *Service) Submit(ctx context.Context, sub Submission) (Assessment, error) {
	if s.Repo == nil {
		return Assessment{}, errors.New("assessments repo not configured")
	}
	catalog := s.catalog()

	start := time.Now()
	result := readiness.Score(sub.Responses, catalog)
	recs := s.engine().Generate(recommendationInput(result, catalog))
	metrics.ObserveScoring(time.Since(start))

	a := Assessment{
		ID:              uuid.NewString(),
		CompanyInfo:     sub.CompanyInfo,
		Responses:       cloneAnswers(sub.Responses),
		OverallScore:    result.Overall,
		CategoryScores:  result.Categories,
		Recommendations: recs,
		Warnings:        result.Warnings,
		CreatedAt:       s.now(),
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		metrics.IncAssessmentFailed()
		telemetry.Error("assessment.store_failed", map[string]any{
			"assessment_id": a.ID,
			"request_id":    requestIDFromContext(ctx),
			"error":         err.Error(),
		})
		return Assessment{}, fmt.Errorf("store assessment: %w", err)
	}

	metrics.IncAssessmentSubmitted(a.OverallScore)
	for _, w := range a.Warnings {
		metrics.IncAnswerWarning(w.Reason)
	}
	for _, r := range a.Recommendations {
		metrics.IncRecommendation(r.Priority.String())
	}
	telemetry.Info("assessment.submitted", map[string]any{
		"assessment_id":   a.ID,
		"request_id":      requestIDFromContext(ctx),
		"overall":         a.OverallScore,
		"answered":        len(sub.Responses) - len(a.Warnings),
		"warnings":        len(a.Warnings),
		"recommendations": len(a.Recommendations),
	})

	s.enqueueExport(ctx, a.ID)
	return a, nil
}

// Get returns an assessment by ID.
func (s *Service) Get(ctx context.Context, assessmentID string) (Assessment, error) {
	assessmentID = strings.TrimSpace(assessmentID)
	if assessmentID == "" {
		return Assessment{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, assessmentID)
}

// List returns assessments newest first. limit is clamped to [1,100].
func (s *Service) List(ctx context.Context, limit, offset int) ([]Assessment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

// Report renders the Markdown report for one assessment.
func (s *Service) Report(ctx context.Context, assessmentID string) ([]byte, error) {
	a, err := s.Get(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return RenderReport(a, s.catalog())
}

// ExportReport writes reports/<id>.md and reports/<id>.json to the object
// store and records the Markdown key on the assessment.
func (s *Service) ExportReport(ctx context.Context, assessmentID string) (string, error) {
	if s.Store == nil {
		return "", ErrStoreNotConfigured
	}
	a, err := s.Get(ctx, assessmentID)
	if err != nil {
		return "", err
	}

	key, err := s.writeReport(ctx, a)
	if err != nil {
		metrics.IncReportExport("error")
		telemetry.Error("assessment.export_failed", map[string]any{
			"assessment_id": a.ID,
			"request_id":    requestIDFromContext(ctx),
			"error":         err.Error(),
		})
		return "", err
	}

	metrics.IncReportExport("ok")
	telemetry.Info("assessment.exported", map[string]any{
		"assessment_id": a.ID,
		"request_id":    requestIDFromContext(ctx),
		"report_key":    key,
	})
	return key, nil
}

func (s *Service) writeReport(ctx context.Context, a Assessment) (string, error) {
	md, err := RenderReport(a, s.catalog())
	if err != nil {
		return "", err
	}
	mdKey := reportPrefix + a.ID + ".md"
	if _, err := s.Store.Put(ctx, mdKey, "text/markdown; charset=utf-8", bytes.NewReader(md)); err != nil {
		return "", fmt.Errorf("put %s: %w", mdKey, err)
	}

	a.ReportKey = mdKey
	payload, err := json.MarshalIndent(NewResultResponse(a), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report json: %w", err)
	}
	jsonKey := reportPrefix + a.ID + ".json"
	if _, err := s.Store.Put(ctx, jsonKey, "application/json", bytes.NewReader(payload)); err != nil {
		return "", fmt.Errorf("put %s: %w", jsonKey, err)
	}

	if err := s.Repo.SetReportKey(ctx, a.ID, mdKey); err != nil {
		return "", fmt.Errorf("record report key: %w", err)
	}
	return mdKey, nil
}

func (s *Service) enqueueExport(ctx context.Context, assessmentID string) {
	if s.JobQueue == nil {
		return
	}
	msg := queue.NewMessage(assessmentID, requestIDFromContext(ctx), s.now())
	if err := s.JobQueue.Send(ctx, msg); err != nil {
		telemetry.Warn("assessment.enqueue_failed", map[string]any{
			"assessment_id": assessmentID,
			"request_id":    msg.RequestID,
			"error":         err.Error(),
		})
		return
	}
	telemetry.Info("assessment.export_enqueued", map[string]any{
		"assessment_id": assessmentID,
		"request_id":    msg.RequestID,
	})
}

// CatalogInUse returns the catalog the service scores against.
func (s *Service) CatalogInUse() *readiness.Catalog {
	return s.catalog()
}

func (s *Service) catalog() *readiness.Catalog {
	if s.Catalog != nil {
		return s.Catalog
	}
	return readiness.MustDefaultCatalog()
}

func (s *Service) engine() *recommendations.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return recommendations.NewEngine()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// recommendationInput adapts a score result to the recommender's input.
func recommendationInput(result readiness.Result, catalog *readiness.Catalog) recommendations.Input {
	in := recommendations.Input{
		Overall:    result.Overall,
		Categories: make([]recommendations.CategoryInput, 0, len(result.Categories)),
	}
	for _, cs := range result.Categories {
		ci := recommendations.CategoryInput{
			Key:     cs.Key,
			Name:    cs.Name,
			Average: cs.Average,
		}
		if cat, ok := catalog.Category(cs.Key); ok {
			ci.Description = cat.Description
		}
		in.Categories = append(in.Categories, ci)
	}
	return in
}

func cloneAnswers(in []readiness.Answer) []readiness.Answer {
	out := make([]readiness.Answer, len(in))
	copy(out, in)
	return out
}
