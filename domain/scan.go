package domain

import (
	"context"
	"time"
)

// ScanPayloadType is the envelope type emitted by the QR generator.
const ScanPayloadType = "school-attendance"

// PlaceholderName marks payload encodings that carry no real name; the
// resolver must take the display name from the matched record instead.
const PlaceholderName = "Unknown"

// ScanPayload is the parsed form of a raw scan string. Transient: parsed,
// resolved, then discarded.
type ScanPayload struct {
	Type        string `json:"type"`
	SubjectID   string `json:"subjectId"`
	Role        string `json:"role"`
	SubjectName string `json:"subjectName"`
	GeneratedAt string `json:"generatedAt"`
}

// HasUsableName reports whether the payload itself carried a real name.
func (p ScanPayload) HasUsableName() bool {
	return p.SubjectName != "" && p.SubjectName != PlaceholderName
}

// ScanResult is what the scanner UI gets back after a frame is processed.
type ScanResult struct {
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	Action              string    `json:"action"`
	Timestamp           time.Time `json:"timestamp"`
	IsLate              bool      `json:"is_late"`
	IsEarly             bool      `json:"is_early"`
	SubjectID           string    `json:"subject_id"`
	EventID             string    `json:"event_id"`
	Notified            bool      `json:"notified"`
	NotificationWarning string    `json:"notification_warning,omitempty"`
}

type ResolverUseCase interface {
	Resolve(ctx context.Context, raw string) (*Identity, error)
	Lookup(ctx context.Context, code string) (*Identity, error)
}

// Session states for the scanner lifecycle.
const (
	SessionIdle        = "idle"
	SessionScanning    = "scanning"
	SessionResolving   = "resolving"
	SessionRecording   = "recording"
	SessionResult      = "result"
	SessionManualEntry = "manual-entry"
	SessionCameraError = "camera-error"
)

type ScanSessionUseCase interface {
	Open(ctx context.Context) error
	Frame(ctx context.Context, raw, explicitAction string) (*ScanResult, error)
	ManualEntry(ctx context.Context, code, explicitAction string) (*ScanResult, error)
	ScanNext(ctx context.Context) error
	Reset(ctx context.Context) error
	CameraError(ctx context.Context, reason string) error
	RetryCamera(ctx context.Context) error
	State() string
	LastResult() *ScanResult
	Teardown()
}

// CooldownStore suppresses re-processing of the same physical scan burst.
// Acquire returns false while a previous acquisition is still cooling down.
// Release frees the key early so a failed attempt does not block a retry.
type CooldownStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
