package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSender struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSender) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSClientSendEncodesBody(t *testing.T) {
	sender := &fakeSender{}
	client := NewSQSClientWith(sender, "https://sqs.example/queue")

	msg := NewMessage("a-1", "req-1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.inputs) != 1 {
		t.Fatalf("expected one send, got %d", len(sender.inputs))
	}
	in := sender.inputs[0]
	if aws.ToString(in.QueueUrl) != "https://sqs.example/queue" {
		t.Fatalf("unexpected queue url %q", aws.ToString(in.QueueUrl))
	}
	decoded, err := DecodeMessage([]byte(aws.ToString(in.MessageBody)))
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.AssessmentID != "a-1" {
		t.Fatalf("unexpected assessment id %q", decoded.AssessmentID)
	}
}

func TestSQSClientSendWrapsError(t *testing.T) {
	boom := errors.New("boom")
	client := NewSQSClientWith(&fakeSender{err: boom}, "q")
	err := client.Send(context.Background(), Message{AssessmentID: "a-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "", " "); err == nil {
		t.Fatalf("expected error for empty queue url")
	}
}
