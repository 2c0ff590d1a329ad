package assessments

import (
	"math"
	"time"

	"readiness-backend/internal/readiness"
	"readiness-backend/internal/readiness/recommendations"
)

// Submission is the POST body for a new assessment. CompanyInfo is opaque and
// stored as given.
type Submission struct {
	Responses   []readiness.Answer `json:"responses"`
	CompanyInfo map[string]any     `json:"company_info"`
}

// ResultResponse is the public view of an assessment.
type ResultResponse struct {
	AssessmentID    string                           `json:"assessmentId"`
	OverallScore    float64                          `json:"overall_score"`
	CategoryScores  map[string]float64               `json:"category_scores"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
	Warnings        []readiness.ValidationError      `json:"warnings"`
	ReportKey       string                           `json:"reportKey,omitempty"`
	CreatedAt       time.Time                        `json:"createdAt"`
}

// SummaryResponse is one row of the list endpoint.
type SummaryResponse struct {
	AssessmentID        string    `json:"assessmentId"`
	OverallScore        float64   `json:"overall_score"`
	ReadinessLevel      string    `json:"readinessLevel"`
	RecommendationCount int       `json:"recommendationCount"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NewResultResponse rounds scores to two decimals.
func NewResultResponse(a Assessment) ResultResponse {
	scores := make(map[string]float64, len(a.CategoryScores))
	for _, cs := range a.CategoryScores {
		scores[cs.Key] = round2(cs.Average)
	}
	recs := a.Recommendations
	if recs == nil {
		recs = []recommendations.Recommendation{}
	}
	warnings := a.Warnings
	if warnings == nil {
		warnings = []readiness.ValidationError{}
	}
	return ResultResponse{
		AssessmentID:    a.ID,
		OverallScore:    round2(a.OverallScore),
		CategoryScores:  scores,
		Recommendations: recs,
		Warnings:        warnings,
		ReportKey:       a.ReportKey,
		CreatedAt:       a.CreatedAt,
	}
}

func newSummaryResponse(a Assessment) SummaryResponse {
	return SummaryResponse{
		AssessmentID:        a.ID,
		OverallScore:        round2(a.OverallScore),
		ReadinessLevel:      ReadinessLevel(a.OverallScore),
		RecommendationCount: len(a.Recommendations),
		CreatedAt:           a.CreatedAt,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
