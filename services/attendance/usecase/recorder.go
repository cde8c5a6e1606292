package usecase

import (
	"context"
	"fmt"
	"time"

	"attendance/domain"
)

type recorderUC struct {
	attendanceRepo domain.AttendanceRepo
}

// NewRecorderUseCase appends attendance events. Append-only: no duplicate
// suppression happens here; the scan session's cool-down is the only guard.
func NewRecorderUseCase(repo domain.AttendanceRepo) domain.RecorderUseCase {
	return &recorderUC{
		attendanceRepo: repo,
	}
}

func (rUC *recorderUC) Record(ctx context.Context, identity *domain.Identity, action string, now time.Time) (*domain.AttendanceEvent, error) {
	if action != domain.ActionTimeIn && action != domain.ActionTimeOut {
		return nil, fmt.Errorf("unknown attendance action %q", action)
	}

	event := &domain.AttendanceEvent{
		SubjectID:   identity.ID,
		SubjectName: identity.DisplayName,
		Role:        identity.Role,
		Action:      action,
		Status:      domain.StatusForAction(action),
		Timestamp:   now,
	}

	return rUC.attendanceRepo.InsertEvent(ctx, event)
}
