package delivery

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance/domain"
)

type stubSession struct {
	state      string
	result     *domain.ScanResult
	frameErr   error
	lastRaw    string
	lastAction string
}

func (s *stubSession) Open(ctx context.Context) error { return nil }

func (s *stubSession) Frame(ctx context.Context, raw, explicitAction string) (*domain.ScanResult, error) {
	s.lastRaw, s.lastAction = raw, explicitAction
	if s.frameErr != nil {
		return nil, s.frameErr
	}
	return s.result, nil
}

func (s *stubSession) ManualEntry(ctx context.Context, code, explicitAction string) (*domain.ScanResult, error) {
	return s.Frame(ctx, code, explicitAction)
}

func (s *stubSession) ScanNext(ctx context.Context) error                  { return nil }
func (s *stubSession) Reset(ctx context.Context) error                     { return nil }
func (s *stubSession) CameraError(ctx context.Context, reason string) error { return nil }
func (s *stubSession) RetryCamera(ctx context.Context) error               { return nil }
func (s *stubSession) State() string                                       { return s.state }
func (s *stubSession) LastResult() *domain.ScanResult                      { return s.result }
func (s *stubSession) Teardown()                                           {}

func newTestApp(session domain.ScanSessionUseCase) *fiber.App {
	app := fiber.New()
	NewScanHandler(app, session)
	return app
}

func TestFrameHandlerSuccess(t *testing.T) {
	session := &stubSession{
		state: domain.SessionResult,
		result: &domain.ScanResult{
			Name:      "Bob Williams",
			Role:      domain.RoleStudent,
			Action:    domain.ActionTimeIn,
			Timestamp: time.Now(),
			SubjectID: "STU-0001",
			EventID:   "evt-1",
			Notified:  true,
		},
	}
	app := newTestApp(session)

	req := httptest.NewRequest("POST", "/scan/frame", strings.NewReader(`{"payload":"STU-0001"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "STU-0001", session.lastRaw)
	assert.Empty(t, session.lastAction)
}

func TestFrameHandlerValidation(t *testing.T) {
	app := newTestApp(&stubSession{state: domain.SessionScanning})

	req := httptest.NewRequest("POST", "/scan/frame", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFrameHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid payload", err: domain.ErrInvalidPayload, wantStatus: fiber.StatusBadRequest},
		{name: "unknown subject", err: domain.ErrUnknownSubject, wantStatus: fiber.StatusNotFound},
		{name: "suppressed", err: domain.ErrScanSuppressed, wantStatus: fiber.StatusConflict},
		{name: "record store", err: domain.ErrRecordStore, wantStatus: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubSession{state: domain.SessionScanning, frameErr: tt.err})

			req := httptest.NewRequest("POST", "/scan/frame", strings.NewReader(`{"payload":"x"}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestManualHandlerRequiresSubjectID(t *testing.T) {
	app := newTestApp(&stubSession{state: domain.SessionScanning})

	req := httptest.NewRequest("POST", "/scan/manual", strings.NewReader(`{"action":"time-in"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWindowHandler(t *testing.T) {
	app := newTestApp(&stubSession{state: domain.SessionIdle})

	req := httptest.NewRequest("GET", "/scan/window", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
