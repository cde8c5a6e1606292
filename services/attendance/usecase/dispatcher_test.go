package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance/domain"
)

func TestGreetingTemplates(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		flagged bool
		want    string
	}{
		{name: "late check-in", action: domain.ActionTimeIn, flagged: true, want: "Better late than never, Alice! Welcome to school."},
		{name: "on-time check-in", action: domain.ActionTimeIn, flagged: false, want: "Good morning, Alice! Have a blessed day at school."},
		{name: "early check-out", action: domain.ActionTimeOut, flagged: true, want: "Have a wonderful evening, Alice! See you tomorrow."},
		{name: "regular check-out", action: domain.ActionTimeOut, flagged: false, want: "Great day at school, Alice! Get home safely."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Greeting("Alice Johnson", tt.action, tt.flagged); got != tt.want {
				t.Errorf("Greeting() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeMessagePools(t *testing.T) {
	morning := ComposeMessage("Alice Johnson", domain.ActionTimeIn, false, func(n int) int { return 0 })
	if !strings.HasPrefix(morning, "Good morning, Alice!") {
		t.Errorf("morning message starts with %q", morning)
	}
	if !strings.Contains(morning, morningScriptures[0]) {
		t.Errorf("morning message missing scripture: %q", morning)
	}

	evening := ComposeMessage("Alice Johnson", domain.ActionTimeOut, false, func(n int) int { return n - 1 })
	if !strings.Contains(evening, eveningScriptures[len(eveningScriptures)-1]) {
		t.Errorf("evening message missing scripture: %q", evening)
	}
}

func newTestDispatcher(repo *fakeNotificationRepo, sink *fakeSink) *dispatcherUC {
	return &dispatcherUC{
		notificationRepo: repo,
		sink:             sink,
		pickFn:           func(n int) int { return 0 },
	}
}

func TestNotifyStudent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := &fakeSink{}
	uc := newTestDispatcher(repo, sink)

	bob := studentBob()
	identity := bob.Identity()
	event := &domain.AttendanceEvent{
		ID:          "evt-1",
		SubjectID:   identity.ID,
		SubjectName: identity.DisplayName,
		Role:        identity.Role,
		Action:      domain.ActionTimeIn,
		Status:      domain.StatusEntry,
		Timestamp:   time.Date(2024, 9, 2, 7, 50, 0, 0, time.Local),
	}

	record, err := uc.Notify(context.Background(), event, &identity, domain.TimeWindowDecision{CanCheckIn: true})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, domain.DeliveryDelivered, record.Status)
	assert.Equal(t, "08123456789", record.Contact)
	assert.True(t, strings.HasPrefix(record.Message, "Good morning, Bob!"))
	assert.Len(t, repo.records, 1)
	assert.Len(t, sink.sent, 1)
}

func TestNotifySkipped(t *testing.T) {
	tests := []struct {
		name     string
		identity domain.Identity
	}{
		{name: "teacher", identity: teacherCarol().Identity()},
		{name: "student without guardian contact", identity: domain.Identity{ID: "STU-0002", DisplayName: "Dana Cruz", Role: domain.RoleStudent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeNotificationRepo{}
			sink := &fakeSink{}
			uc := newTestDispatcher(repo, sink)

			event := &domain.AttendanceEvent{
				SubjectID:   tt.identity.ID,
				SubjectName: tt.identity.DisplayName,
				Role:        tt.identity.Role,
				Action:      domain.ActionTimeIn,
			}

			record, err := uc.Notify(context.Background(), event, &tt.identity, domain.TimeWindowDecision{})
			require.NoError(t, err)
			assert.Nil(t, record)
			assert.Empty(t, repo.records)
			assert.Empty(t, sink.sent)
		})
	}
}

func TestNotifySinkFailure(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := &fakeSink{err: assert.AnError}
	uc := newTestDispatcher(repo, sink)

	bob := studentBob()
	identity := bob.Identity()
	event := &domain.AttendanceEvent{
		SubjectID:   identity.ID,
		SubjectName: identity.DisplayName,
		Role:        identity.Role,
		Action:      domain.ActionTimeOut,
	}

	record, err := uc.Notify(context.Background(), event, &identity, domain.TimeWindowDecision{IsEarlyCheckOut: true})
	assert.ErrorIs(t, err, domain.ErrNotification)
	assert.Nil(t, record)
	assert.Empty(t, repo.records)
}

func TestNotifyEarlyFlagPicksCheckOutGreeting(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := &fakeSink{}
	uc := newTestDispatcher(repo, sink)

	bob := studentBob()
	identity := bob.Identity()
	event := &domain.AttendanceEvent{
		SubjectID:   identity.ID,
		SubjectName: identity.DisplayName,
		Role:        identity.Role,
		Action:      domain.ActionTimeOut,
	}

	// IsLateCheckIn must not leak into check-out greetings.
	record, err := uc.Notify(context.Background(), event, &identity, domain.TimeWindowDecision{IsLateCheckIn: true, IsEarlyCheckOut: false})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(record.Message, "Great day at school, Bob!"))
}
