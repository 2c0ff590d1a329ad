package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"readiness-backend/internal/assessments"
	"readiness-backend/internal/queue"
)

// Processor exports the report of one assessment.
type Processor interface {
	ExportReport(ctx context.Context, assessmentID string) (string, error)
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingAssessmentID indicates a message without an assessment id.
type ErrMissingAssessmentID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingAssessmentID) Error() string { return "missing assessment id" }

// ErrUnsupportedVersion indicates a message from a newer producer.
type ErrUnsupportedVersion struct {
	Version int
}

func (e ErrUnsupportedVersion) Error() string { return "unsupported message version" }

// ErrProcess indicates the export failed after successful parsing.
type ErrProcess struct {
	AssessmentID string
	RequestID    string
	Err          error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "export report"
	}
	return "export report: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Permanent reports whether retrying the message cannot succeed.
func (e ErrProcess) Permanent() bool {
	return errors.Is(e.Err, assessments.ErrNotFound) || errors.Is(e.Err, assessments.ErrStoreNotConfigured)
}

// ParseMessage validates and decodes the queue payload. Messages without a
// version are treated as version 1.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if msg.Version > queue.MessageVersion {
		return msg, meta, ErrUnsupportedVersion{Version: msg.Version}
	}
	if strings.TrimSpace(msg.AssessmentID) == "" {
		return msg, meta, ErrMissingAssessmentID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

// HandleMessage parses the payload and exports the referenced report. It
// returns the stored report key.
func HandleMessage(ctx context.Context, processor Processor, body string) (string, error) {
	if processor == nil {
		return "", errors.New("report processor not configured")
	}
	msg, _, err := ParseMessage(body)
	if err != nil {
		return "", err
	}
	return Process(ctx, processor, msg)
}

// Process exports the report for an already decoded message.
func Process(ctx context.Context, processor Processor, msg queue.Message) (string, error) {
	if processor == nil {
		return "", errors.New("report processor not configured")
	}
	ctx = assessments.WithRequestID(ctx, msg.RequestID)
	key, err := processor.ExportReport(ctx, msg.AssessmentID)
	if err != nil {
		return "", ErrProcess{AssessmentID: msg.AssessmentID, RequestID: msg.RequestID, Err: err}
	}
	return key, nil
}
