package domain

import (
	"context"
	"time"
)

const (
	ActionTimeIn  = "time-in"
	ActionTimeOut = "time-out"

	StatusEntry = "entry"
	StatusExit  = "exit"
)

// AttendanceEvent is an immutable record of one accepted scan. Only the
// Processed flag is ever flipped, by a downstream batch job.
type AttendanceEvent struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SubjectID   string    `gorm:"type:varchar(64);not null;index" json:"subject_id"`
	SubjectName string    `gorm:"type:varchar(150);not null" json:"subject_name"`
	Role        string    `gorm:"type:varchar(10);not null" json:"role"`
	Action      string    `gorm:"type:varchar(10);not null" json:"action"`
	Status      string    `gorm:"type:varchar(10);not null" json:"status"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	Processed   bool      `gorm:"not null;default:false" json:"processed"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// StatusForAction derives the stored status mechanically from the action.
func StatusForAction(action string) string {
	if action == ActionTimeOut {
		return StatusExit
	}
	return StatusEntry
}

// TimeWindowDecision is computed fresh from wall-clock time, never persisted.
// SuggestedAction is empty when neither window is open.
type TimeWindowDecision struct {
	CanCheckIn      bool   `json:"can_check_in"`
	CanCheckOut     bool   `json:"can_check_out"`
	IsLateCheckIn   bool   `json:"is_late_check_in"`
	IsEarlyCheckOut bool   `json:"is_early_check_out"`
	SuggestedAction string `json:"suggested_action,omitempty"`
}

type AttendanceRepo interface {
	InsertEvent(ctx context.Context, event *AttendanceEvent) (*AttendanceEvent, error)
	ListEventsByDay(ctx context.Context, subjectID string, day time.Time) (*[]AttendanceEvent, error)
	LatestEventForDay(ctx context.Context, subjectID string, day time.Time) (*AttendanceEvent, error)
}

type RecorderUseCase interface {
	Record(ctx context.Context, identity *Identity, action string, now time.Time) (*AttendanceEvent, error)
}
