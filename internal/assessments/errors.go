package assessments

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrStoreNotConfigured = errors.New("object store not configured")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeNotFound   = "not_found"
	ErrorCodeStorage    = "storage_error"
	ErrorCodeInternal   = "internal_error"
)
