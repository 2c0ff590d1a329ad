package assessments

import (
	"time"

	"readiness-backend/internal/readiness"
	"readiness-backend/internal/readiness/recommendations"
)

// Assessment is one scored submission. Scores are kept at full precision;
// rounding happens when building responses.
type Assessment struct {
	ID              string                           `json:"id"`
	CompanyInfo     map[string]any                   `json:"companyInfo,omitempty"`
	Responses       []readiness.Answer               `json:"responses"`
	OverallScore    float64                          `json:"overallScore"`
	CategoryScores  []readiness.CategoryScore        `json:"categoryScores"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
	Warnings        []readiness.ValidationError      `json:"warnings"`
	ReportKey       string                           `json:"reportKey,omitempty"`
	CreatedAt       time.Time                        `json:"createdAt"`
}
