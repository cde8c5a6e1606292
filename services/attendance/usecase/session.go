package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"attendance/domain"
)

// DefaultCooldown absorbs repeated camera frames of the same code. Two
// seconds is long enough for a handful of duplicate decodes and short enough
// that the next student in line is not blocked.
const DefaultCooldown = 2 * time.Second

// ScanSession drives one scanner terminal through
// idle -> scanning -> resolving -> recording -> result, with a manual-entry
// branch and a camera-error sub-state.
type ScanSession struct {
	mu         sync.Mutex
	state      string
	lastResult *domain.ScanResult
	active     bool

	resolver    domain.ResolverUseCase
	recorder    domain.RecorderUseCase
	dispatcher  domain.DispatcherUseCase
	cooldown    domain.CooldownStore
	cooldownTTL time.Duration

	log     *logrus.Logger
	nowFunc func() time.Time
}

func NewScanSession(
	resolver domain.ResolverUseCase,
	recorder domain.RecorderUseCase,
	dispatcher domain.DispatcherUseCase,
	cooldown domain.CooldownStore,
	log *logrus.Logger,
) *ScanSession {
	return &ScanSession{
		state:       domain.SessionIdle,
		active:      true,
		resolver:    resolver,
		recorder:    recorder,
		dispatcher:  dispatcher,
		cooldown:    cooldown,
		cooldownTTL: DefaultCooldown,
		log:         log,
		nowFunc:     time.Now,
	}
}

var _ domain.ScanSessionUseCase = (*ScanSession)(nil)

func (s *ScanSession) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ScanSession) LastResult() *domain.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

func (s *ScanSession) setState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		// Torn down while a frame was in flight; the work completed in the
		// background but must not surface a transition.
		return
	}
	s.state = state
}

func (s *ScanSession) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionIdle {
		return domain.ErrSessionState
	}
	s.state = domain.SessionScanning
	return nil
}

// Frame runs one decoded camera frame through resolve -> record -> notify.
func (s *ScanSession) Frame(ctx context.Context, raw, explicitAction string) (*domain.ScanResult, error) {
	s.mu.Lock()
	if s.state != domain.SessionScanning {
		s.mu.Unlock()
		return nil, domain.ErrSessionState
	}
	s.mu.Unlock()

	// Debounce before any work: repeated frames of the same code inside the
	// cool-down window are absorbed silently. Best effort only; a cooldown
	// store error never blocks a scan.
	held := false
	acquired, err := s.cooldown.Acquire(ctx, raw, s.cooldownTTL)
	if err != nil {
		s.log.Warnf("cooldown store unavailable, scan not debounced: %v", err)
	} else if !acquired {
		return nil, domain.ErrScanSuppressed
	} else {
		held = true
	}

	s.setState(domain.SessionResolving)

	identity, err := s.resolver.Resolve(ctx, raw)
	if err != nil {
		// Parse and lookup failures are terminal for this frame only.
		s.releaseCooldown(ctx, raw, held)
		s.setState(domain.SessionScanning)
		return nil, err
	}

	result, err := s.process(ctx, identity, explicitAction)
	if err != nil {
		s.releaseCooldown(ctx, raw, held)
		s.setState(domain.SessionScanning)
		return nil, err
	}
	return result, nil
}

// releaseCooldown frees the key after a failed frame. No event exists, so
// rescanning the same code immediately must work.
func (s *ScanSession) releaseCooldown(ctx context.Context, raw string, held bool) {
	if !held {
		return
	}
	if err := s.cooldown.Release(ctx, raw); err != nil {
		s.log.Warnf("cooldown release failed: %v", err)
	}
}

// ManualEntry accepts a typed subject code, validated by direct lookup.
func (s *ScanSession) ManualEntry(ctx context.Context, code, explicitAction string) (*domain.ScanResult, error) {
	s.mu.Lock()
	if s.state != domain.SessionIdle && s.state != domain.SessionScanning && s.state != domain.SessionManualEntry {
		s.mu.Unlock()
		return nil, domain.ErrSessionState
	}
	s.state = domain.SessionManualEntry
	s.mu.Unlock()

	identity, err := s.resolver.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	result, err := s.process(ctx, identity, explicitAction)
	if err != nil {
		s.setState(domain.SessionManualEntry)
		return nil, err
	}
	return result, nil
}

// process is the shared recording tail of the camera and manual paths.
func (s *ScanSession) process(ctx context.Context, identity *domain.Identity, explicitAction string) (*domain.ScanResult, error) {
	now := s.nowFunc()
	decision := EvaluateWindow(now)

	// Explicit tab selection wins; otherwise follow the window suggestion,
	// defaulting to time-in when neither window applies.
	action := explicitAction
	if action == "" {
		action = decision.SuggestedAction
	}
	if action == "" {
		action = domain.ActionTimeIn
	}

	s.setState(domain.SessionRecording)

	event, err := s.recorder.Record(ctx, identity, action, now)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{
		Name:      event.SubjectName,
		Role:      event.Role,
		Action:    event.Action,
		Timestamp: event.Timestamp,
		IsLate:    action == domain.ActionTimeIn && decision.IsLateCheckIn,
		IsEarly:   action == domain.ActionTimeOut && decision.IsEarlyCheckOut,
		SubjectID: event.SubjectID,
		EventID:   event.ID,
	}

	// Fire and forget relative to the recorded event: a sink failure is a
	// warning on the result, never a rollback or a retry.
	record, err := s.dispatcher.Notify(ctx, event, identity, decision)
	if err != nil {
		s.log.Warnf("notification dispatch failed for event %s: %v", event.ID, err)
		result.NotificationWarning = err.Error()
	} else if record != nil {
		result.Notified = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return result, nil
	}
	s.state = domain.SessionResult
	s.lastResult = result
	return result, nil
}

func (s *ScanSession) ScanNext(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionResult {
		return domain.ErrSessionState
	}
	s.state = domain.SessionScanning
	return nil
}

func (s *ScanSession) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.SessionIdle
	s.lastResult = nil
	return nil
}

// CameraError parks the session in a sub-state offering manual retry. The
// session never falls back to manual entry on its own.
func (s *ScanSession) CameraError(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionIdle && s.state != domain.SessionScanning {
		return domain.ErrSessionState
	}
	s.log.Warnf("camera unavailable: %s", reason)
	s.state = domain.SessionCameraError
	return nil
}

func (s *ScanSession) RetryCamera(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionCameraError {
		return domain.ErrSessionState
	}
	s.state = domain.SessionScanning
	return nil
}

// Teardown marks the session unmounted. In-flight work may still complete in
// the background but will no longer cause state transitions.
func (s *ScanSession) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.state = domain.SessionIdle
	s.lastResult = nil
}

// ErrorOutcome maps a frame error to a metrics label.
func ErrorOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, domain.ErrUnknownSubject):
		return "unknown_subject"
	case errors.Is(err, domain.ErrScanSuppressed):
		return "suppressed"
	case errors.Is(err, domain.ErrRecordStore):
		return "record_store_failure"
	case errors.Is(err, domain.ErrSessionState):
		return "bad_state"
	default:
		return "error"
	}
}
