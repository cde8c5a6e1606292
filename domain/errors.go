package domain

import "errors"

// Error taxonomy for a single scan attempt. Parse and lookup failures are
// terminal for the attempt only; the session stays alive.
var (
	// ErrInvalidPayload means the scan string matched no known encoding.
	ErrInvalidPayload = errors.New("scan payload matches no known encoding")

	// ErrUnknownSubject means the payload parsed but no candidate matched
	// and the payload carried no usable name.
	ErrUnknownSubject = errors.New("subject not found")

	// ErrRecordStore wraps record-store insert/find failures. No event
	// exists; the same scan is safe to retry.
	ErrRecordStore = errors.New("record store failure")

	// ErrNotification wraps sink failures. The attendance event remains
	// valid; dispatch is never retried automatically.
	ErrNotification = errors.New("notification dispatch failed")

	// ErrScanSuppressed is returned while the cool-down window absorbs
	// repeated camera frames of the same code.
	ErrScanSuppressed = errors.New("duplicate scan suppressed")

	// ErrSessionState is returned when an operation does not apply to the
	// session's current state.
	ErrSessionState = errors.New("operation not valid in current session state")
)
