package readiness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Answer is one submitted response to a question.
type Answer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Score      int    `json:"score" validate:"min=1,max=5"`

	// rawScore holds a score that was not a JSON integer, as received.
	rawScore string
}

// UnmarshalJSON accepts any JSON value for score. Anything other than an
// integer leaves Score at zero and is reported by Score as out of range, so
// one bad answer does not reject the whole submission.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var wire struct {
		QuestionID string          `json:"question_id"`
		Score      json.RawMessage `json:"score"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*a = Answer{QuestionID: wire.QuestionID}

	raw := bytes.TrimSpace(wire.Score)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		a.rawScore = string(raw)
		return nil
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil && i >= -1<<31 && i < 1<<31 {
			a.Score = int(i)
			return nil
		}
	}
	a.rawScore = string(raw)
	return nil
}

// CategoryScore is the aggregate of every valid answer in one category.
type CategoryScore struct {
	Key                  string  `json:"key"`
	Name                 string  `json:"name"`
	Weight               float64 `json:"weight"`
	Average              float64 `json:"average"`
	WeightedContribution float64 `json:"weightedContribution"`
	Answered             int     `json:"answered"`
}

// Result is the output of Score. Categories holds only categories with at
// least one valid answer, in catalog order.
type Result struct {
	Overall    float64           `json:"overall"`
	Categories []CategoryScore   `json:"categories"`
	Warnings   []ValidationError `json:"warnings"`
}

// CategoryScore returns the score for key if that category was answered.
func (r Result) CategoryScore(key string) (CategoryScore, bool) {
	for _, cs := range r.Categories {
		if cs.Key == key {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

var answerValidator = validator.New()

// Score aggregates answers into per-category averages and one weighted overall
// score. Invalid answers are skipped and reported in Result.Warnings.
// Unanswered categories contribute nothing, so a partial survey lowers the
// attainable maximum. A nil catalog means the default catalog.
func Score(answers []Answer, catalog *Catalog) Result {
	if catalog == nil {
		catalog = MustDefaultCatalog()
	}

	sums := make([]float64, len(catalog.categories))
	counts := make([]int, len(catalog.categories))
	warnings := make([]ValidationError, 0)

	for i, a := range answers {
		a.QuestionID = strings.TrimSpace(a.QuestionID)
		if verr, ok := validateAnswer(i, a); !ok {
			warnings = append(warnings, verr)
			continue
		}
		idx, ok := catalog.categoryIndexOf(a.QuestionID)
		if !ok {
			warnings = append(warnings, ValidationError{
				Index:      i,
				QuestionID: a.QuestionID,
				Reason:     ReasonUnknownQuestion,
				Message:    "question is not part of the catalog",
			})
			continue
		}
		sums[idx] += float64(a.Score)
		counts[idx]++
	}

	result := Result{
		Categories: make([]CategoryScore, 0, len(catalog.categories)),
		Warnings:   warnings,
	}
	for idx, cat := range catalog.categories {
		if counts[idx] == 0 {
			continue
		}
		avg := sums[idx] / float64(counts[idx])
		// explicit conversion keeps the product rounded before summation (no FMA)
		contribution := float64(avg * cat.Weight)
		result.Overall += contribution
		result.Categories = append(result.Categories, CategoryScore{
			Key:                  cat.Key,
			Name:                 cat.Name,
			Weight:               cat.Weight,
			Average:              avg,
			WeightedContribution: contribution,
			Answered:             counts[idx],
		})
	}
	return result
}

func validateAnswer(index int, a Answer) (ValidationError, bool) {
	err := answerValidator.Struct(a)
	if err == nil {
		return ValidationError{}, true
	}
	verr := ValidationError{Index: index, QuestionID: a.QuestionID}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		verr.Reason = ReasonScoreOutOfRange
		verr.Message = err.Error()
		return verr, false
	}
	fe := fieldErrs[0]
	switch fe.Field() {
	case "QuestionID":
		verr.Reason = ReasonMissingQuestionID
		verr.Message = "question_id is required"
	default:
		verr.Reason = ReasonScoreOutOfRange
		if a.rawScore != "" {
			verr.Message = fmt.Sprintf("score %s is not an integer in [%d,%d]", a.rawScore, MinScore, MaxScore)
		} else {
			verr.Message = fmt.Sprintf("score %d outside [%d,%d]", a.Score, MinScore, MaxScore)
		}
	}
	return verr, false
}
