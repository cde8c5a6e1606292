package usecase

import (
	"time"

	"attendance/domain"
)

// EvaluateWindow computes the check-in/check-out gating for the given
// wall-clock time. Pure and deterministic; no I/O.
//
// Check-in is open from 06:00 until 10:00, check-out from 14:00 until 18:00.
// The exact top of the closing hour (10:00:00, 18:00:00) is still open; the
// rest of that hour is closed. That one-minute overlap with the closed state
// matches the deployed scanners and is pinned by tests, so leave it alone.
func EvaluateWindow(now time.Time) domain.TimeWindowDecision {
	hour, minute := now.Hour(), now.Minute()

	decision := domain.TimeWindowDecision{
		CanCheckIn:  (hour >= 6 && hour < 10) || (hour == 10 && minute == 0),
		CanCheckOut: (hour >= 14 && hour < 18) || (hour == 18 && minute == 0),

		// Late means any time past 08:00:00 sharp.
		IsLateCheckIn: hour > 8 || (hour == 8 && (minute > 0 || now.Second() > 0 || now.Nanosecond() > 0)),

		// Early means before 15:00, whether or not check-out is even open.
		IsEarlyCheckOut: hour < 15,
	}

	switch {
	case decision.CanCheckIn:
		decision.SuggestedAction = domain.ActionTimeIn
	case decision.CanCheckOut:
		decision.SuggestedAction = domain.ActionTimeOut
	}

	return decision
}
