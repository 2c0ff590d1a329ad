package assessments

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"readiness-backend/internal/readiness"
	"readiness-backend/internal/readiness/recommendations"
)

// Readiness levels by overall score.
const (
	LevelAdvanced   = "Advanced"
	LevelDeveloping = "Developing"
	LevelEmerging   = "Emerging"
	LevelBeginning  = "Beginning"
)

// ReadinessLevel maps an overall score to its band.
func ReadinessLevel(overall float64) string {
	switch {
	case overall >= 4.0:
		return LevelAdvanced
	case overall >= 3.0:
		return LevelDeveloping
	case overall >= 2.0:
		return LevelEmerging
	default:
		return LevelBeginning
	}
}

//go:embed report.md.tmpl
var reportTemplateText string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": func(v float64) string { return fmt.Sprintf("%.2f", round2(v)) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"bar":   scoreBar,
}).Parse(reportTemplateText))

type reportRow struct {
	Name     string
	Weight   float64
	Answered int
	Average  float64
	Skipped  bool
}

type reportData struct {
	ID              string
	CreatedAt       string
	Company         string
	Overall         float64
	Level           string
	Rows            []reportRow
	Recommendations []recommendations.Recommendation
	Warnings        []readiness.ValidationError
}

// RenderReport renders a Markdown report. Categories appear in catalog order;
// unanswered categories are listed as not assessed.
func RenderReport(a Assessment, catalog *readiness.Catalog) ([]byte, error) {
	if catalog == nil {
		catalog = readiness.MustDefaultCatalog()
	}
	scored := make(map[string]readiness.CategoryScore, len(a.CategoryScores))
	for _, cs := range a.CategoryScores {
		scored[cs.Key] = cs
	}

	data := reportData{
		ID:              a.ID,
		CreatedAt:       a.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
		Company:         companyName(a.CompanyInfo),
		Overall:         a.OverallScore,
		Level:           ReadinessLevel(a.OverallScore),
		Recommendations: a.Recommendations,
		Warnings:        a.Warnings,
	}
	for _, cat := range catalog.Categories() {
		cs, ok := scored[cat.Key]
		data.Rows = append(data.Rows, reportRow{
			Name:     cat.Name,
			Weight:   cat.Weight,
			Answered: cs.Answered,
			Average:  cs.Average,
			Skipped:  !ok,
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func companyName(info map[string]any) string {
	for _, key := range []string{"name", "company_name", "company"} {
		if v, ok := info[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// scoreBar draws a five-cell bar, one cell per whole point.
func scoreBar(v float64) string {
	filled := int(v + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > readiness.MaxScore {
		filled = readiness.MaxScore
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", readiness.MaxScore-filled)
}
