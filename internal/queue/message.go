package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is the current report-export job schema.
const MessageVersion = 1

// Message asks a worker to export the report of one assessment.
type Message struct {
	AssessmentID string `json:"assessmentId"`
	RequestID    string `json:"requestId,omitempty"`
	EnqueuedAt   string `json:"enqueuedAt"`
	Version      int    `json:"version"`
}

// NewMessage stamps a report-export job for assessmentID.
func NewMessage(assessmentID, requestID string, now time.Time) Message {
	return Message{
		AssessmentID: assessmentID,
		RequestID:    requestID,
		EnqueuedAt:   now.UTC().Format(time.RFC3339),
		Version:      MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
