package readiness

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel wrapped by every ConfigurationError.
var ErrConfiguration = errors.New("catalog configuration error")

// ConfigurationError reports a catalog that cannot be used for scoring.
// It is only produced while building a Catalog, never per request.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Reasons attached to a ValidationError.
const (
	ReasonMissingQuestionID = "missing_question_id"
	ReasonUnknownQuestion   = "unknown_question"
	ReasonScoreOutOfRange   = "score_out_of_range"
)

// ValidationError describes one answer that was excluded from aggregation.
type ValidationError struct {
	Index      int    `json:"index"`
	QuestionID string `json:"questionId"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("answer[%d] %q: %s", e.Index, e.QuestionID, e.Message)
}
