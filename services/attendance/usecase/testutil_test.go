package usecase

import (
	"context"
	"fmt"
	"time"

	"attendance/domain"
)

const testTimeout = time.Second

type fakeSubjectRepo struct {
	subjects []domain.Subject
	err      error
}

func (f *fakeSubjectRepo) GetAllSubjects(ctx context.Context, role string) (*[]domain.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Subject
	for _, s := range f.subjects {
		if role == "" || s.Role == role {
			out = append(out, s)
		}
	}
	return &out, nil
}

func (f *fakeSubjectRepo) FindByCode(ctx context.Context, code string) (*domain.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.subjects {
		if f.subjects[i].Matches(code) {
			return &f.subjects[i], nil
		}
	}
	return nil, domain.ErrUnknownSubject
}

type fakeAttendanceRepo struct {
	events    []domain.AttendanceEvent
	insertErr error
	nextID    int
}

func (f *fakeAttendanceRepo) InsertEvent(ctx context.Context, event *domain.AttendanceEvent) (*domain.AttendanceEvent, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	event.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.events = append(f.events, *event)
	return event, nil
}

func (f *fakeAttendanceRepo) ListEventsByDay(ctx context.Context, subjectID string, day time.Time) (*[]domain.AttendanceEvent, error) {
	var out []domain.AttendanceEvent
	for _, e := range f.events {
		if subjectID == "" || e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return &out, nil
}

func (f *fakeAttendanceRepo) LatestEventForDay(ctx context.Context, subjectID string, day time.Time) (*domain.AttendanceEvent, error) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].SubjectID == subjectID {
			return &f.events[i], nil
		}
	}
	return nil, nil
}

type fakeNotificationRepo struct {
	records   []domain.NotificationRecord
	insertErr error
}

func (f *fakeNotificationRepo) InsertRecord(ctx context.Context, record *domain.NotificationRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeNotificationRepo) GetHistory(ctx context.Context) (*[]domain.NotificationRecord, error) {
	return &f.records, nil
}

type sentMessage struct {
	contact string
	message string
}

type fakeSink struct {
	status string
	err    error
	sent   []sentMessage
}

func (f *fakeSink) Send(ctx context.Context, contact, message string) (string, error) {
	if f.err != nil {
		return domain.DeliveryFailed, f.err
	}
	f.sent = append(f.sent, sentMessage{contact: contact, message: message})
	if f.status == "" {
		return domain.DeliveryDelivered, nil
	}
	return f.status, nil
}

type fakeCooldown struct {
	acquired map[string]bool
	err      error
}

func newFakeCooldown() *fakeCooldown {
	return &fakeCooldown{acquired: make(map[string]bool)}
}

func (f *fakeCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.acquired[key] {
		return false, nil
	}
	f.acquired[key] = true
	return true, nil
}

func (f *fakeCooldown) Release(ctx context.Context, key string) error {
	delete(f.acquired, key)
	return nil
}

func studentBob() domain.Subject {
	return domain.Subject{
		SubjectID:       1,
		ExternalID:      "STU-0001",
		Name:            "Bob Williams",
		Role:            domain.RoleStudent,
		GuardianContact: "08123456789",
	}
}

func teacherCarol() domain.Subject {
	return domain.Subject{
		SubjectID:  2,
		ExternalID: "TCH-0001",
		Name:       "Carol Mendoza",
		Role:       domain.RoleTeacher,
	}
}
