package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance/domain"
)

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(database *gorm.DB) domain.AttendanceRepo {
	return &attendanceRepository{
		db: database,
	}
}

// InsertEvent appends one event. Create-only: events are never updated or
// deleted by this service.
func (ar *attendanceRepository) InsertEvent(ctx context.Context, event *domain.AttendanceEvent) (*domain.AttendanceEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := ar.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("%w: could not insert attendance event: %v", domain.ErrRecordStore, err)
	}

	return event, nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

func (ar *attendanceRepository) ListEventsByDay(ctx context.Context, subjectID string, day time.Time) (*[]domain.AttendanceEvent, error) {
	var events []domain.AttendanceEvent

	start, end := dayBounds(day)
	query := ar.db.WithContext(ctx).Where("timestamp >= ? AND timestamp < ?", start, end)
	if subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}

	if err := query.Order("timestamp").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("%w: could not list attendance events: %v", domain.ErrRecordStore, err)
	}

	return &events, nil
}

// LatestEventForDay returns the subject's most recent event on the given
// calendar day, or nil. Its action is the subject's current status.
func (ar *attendanceRepository) LatestEventForDay(ctx context.Context, subjectID string, day time.Time) (*domain.AttendanceEvent, error) {
	var event domain.AttendanceEvent

	start, end := dayBounds(day)
	err := ar.db.WithContext(ctx).
		Where("subject_id = ? AND timestamp >= ? AND timestamp < ?", subjectID, start, end).
		Order("timestamp DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: could not fetch latest event: %v", domain.ErrRecordStore, err)
	}

	return &event, nil
}
