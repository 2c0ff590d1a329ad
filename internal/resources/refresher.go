package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/storage/object"
	"readiness-backend/internal/shared/telemetry"
)

// DigestKey is where the latest digest is stored.
const DigestKey = "resources/digest.json"

// ErrNoDigest means no refresh has completed yet.
var ErrNoDigest = errors.New("no resource digest yet")

// Digest is a snapshot of the library with its summary.
type Digest struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Resources   []Resource `json:"resources"`
	Sections    []Section  `json:"sections"`
	Summary     Summary    `json:"summary"`
}

// Refresher rebuilds the digest and publishes it to the object store.
type Refresher struct {
	Library *Library
	Store   object.ObjectStore
	Now     func() time.Time
}

// Refresh builds a digest from the library and writes it to DigestKey.
func (r *Refresher) Refresh(ctx context.Context) (Digest, error) {
	if r.Library == nil || r.Store == nil {
		return Digest{}, errors.New("refresher not configured")
	}
	now := r.now()
	d := Digest{
		GeneratedAt: now,
		Resources:   r.Library.Resources(),
		Sections:    r.Library.Sections(),
		Summary:     r.Library.Summary(now),
	}
	payload, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		metrics.IncResourceRefresh("error")
		return Digest{}, fmt.Errorf("encode digest: %w", err)
	}
	if _, err := r.Store.Put(ctx, DigestKey, "application/json", bytes.NewReader(payload)); err != nil {
		metrics.IncResourceRefresh("error")
		telemetry.Error("resources.refresh_failed", map[string]any{"error": err.Error()})
		return Digest{}, fmt.Errorf("put digest: %w", err)
	}

	metrics.IncResourceRefresh("ok")
	telemetry.Info("resources.refreshed", map[string]any{
		"resources":    len(d.Resources),
		"categories":   len(d.Summary.Categories),
		"generated_at": now.Format(time.RFC3339),
	})
	return d, nil
}

// Latest reads the last published digest.
func (r *Refresher) Latest(ctx context.Context) (Digest, error) {
	if r.Store == nil {
		return Digest{}, ErrNoDigest
	}
	rc, err := r.Store.Open(ctx, DigestKey)
	if errors.Is(err, object.ErrNotFound) {
		return Digest{}, ErrNoDigest
	}
	if err != nil {
		return Digest{}, fmt.Errorf("open digest: %w", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return Digest{}, fmt.Errorf("read digest: %w", err)
	}
	var d Digest
	if err := json.Unmarshal(body, &d); err != nil {
		return Digest{}, fmt.Errorf("decode digest: %w", err)
	}
	return d, nil
}

// RunDaily refreshes once immediately, then every day at the HH:MM given in
// at (local time), until ctx is cancelled. Failed refreshes are logged and
// retried at the next slot.
func (r *Refresher) RunDaily(ctx context.Context, at string) error {
	if _, err := NextRun(r.now(), at); err != nil {
		return err
	}
	for {
		if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
			telemetry.Warn("resources.refresh_retry_scheduled", map[string]any{"error": err.Error()})
		}
		next, _ := NextRun(time.Now(), at)
		telemetry.Info("resources.next_run", map[string]any{"at": next.Format(time.RFC3339)})

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}
