package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Nested values are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, company_info, responses, overall_score, category_scores, recommendations, warnings, report_key, created_at`

// Create inserts a new assessment.
func (r *PGRepo) Create(ctx context.Context, a Assessment) error {
	const query = `
INSERT INTO assessments (
	id, company_info, responses, overall_score, category_scores, recommendations, warnings, report_key, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	companyInfo, err := marshalJSONB(a.CompanyInfo, "{}")
	if err != nil {
		return err
	}
	responses, err := marshalJSONB(a.Responses, "[]")
	if err != nil {
		return err
	}
	categoryScores, err := marshalJSONB(a.CategoryScores, "[]")
	if err != nil {
		return err
	}
	recs, err := marshalJSONB(a.Recommendations, "[]")
	if err != nil {
		return err
	}
	warnings, err := marshalJSONB(a.Warnings, "[]")
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		a.ID,
		companyInfo,
		responses,
		a.OverallScore,
		categoryScores,
		recs,
		warnings,
		a.ReportKey,
		a.CreatedAt,
	)
	return err
}

// GetByID returns an assessment by ID.
func (r *PGRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	query := `SELECT ` + selectColumns + ` FROM assessments WHERE id = $1 LIMIT 1`
	a, err := scanAssessment(r.DB.QueryRowContext(ctx, query, assessmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	return a, nil
}

// List returns assessments newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Assessment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + ` FROM assessments ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetReportKey records where the exported report lives.
func (r *PGRepo) SetReportKey(ctx context.Context, assessmentID, reportKey string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE assessments SET report_key = $2 WHERE id = $1`, assessmentID, reportKey)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (Assessment, error) {
	var a Assessment
	var companyInfo, responses, categoryScores, recs, warnings []byte
	if err := row.Scan(
		&a.ID,
		&companyInfo,
		&responses,
		&a.OverallScore,
		&categoryScores,
		&recs,
		&warnings,
		&a.ReportKey,
		&a.CreatedAt,
	); err != nil {
		return Assessment{}, err
	}
	if err := unmarshalJSONB(companyInfo, &a.CompanyInfo); err != nil {
		return Assessment{}, fmt.Errorf("decode company_info: %w", err)
	}
	if err := unmarshalJSONB(responses, &a.Responses); err != nil {
		return Assessment{}, fmt.Errorf("decode responses: %w", err)
	}
	if err := unmarshalJSONB(categoryScores, &a.CategoryScores); err != nil {
		return Assessment{}, fmt.Errorf("decode category_scores: %w", err)
	}
	if err := unmarshalJSONB(recs, &a.Recommendations); err != nil {
		return Assessment{}, fmt.Errorf("decode recommendations: %w", err)
	}
	if err := unmarshalJSONB(warnings, &a.Warnings); err != nil {
		return Assessment{}, fmt.Errorf("decode warnings: %w", err)
	}
	return a, nil
}

func marshalJSONB(v any, empty string) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(payload) == "null" {
		return empty, nil
	}
	return string(payload), nil
}

func unmarshalJSONB(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

var _ Repo = (*PGRepo)(nil)
