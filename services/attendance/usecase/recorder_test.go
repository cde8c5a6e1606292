package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance/domain"
)

func TestRecordDerivesStatus(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	uc := NewRecorderUseCase(repo)

	bob := studentBob()
	identity := bob.Identity()
	now := time.Date(2024, 9, 2, 7, 50, 0, 0, time.Local)

	in, err := uc.Record(context.Background(), &identity, domain.ActionTimeIn, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEntry, in.Status)
	assert.Equal(t, "Bob Williams", in.SubjectName)
	assert.Equal(t, now, in.Timestamp)
	assert.False(t, in.Processed)

	out, err := uc.Record(context.Background(), &identity, domain.ActionTimeOut, now.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExit, out.Status)
}

func TestRecordAppendOnly(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	uc := NewRecorderUseCase(repo)

	bob := studentBob()
	identity := bob.Identity()
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		event, err := uc.Record(context.Background(), &identity, domain.ActionTimeIn, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.False(t, seen[event.ID], "event id %s reused", event.ID)
		seen[event.ID] = true
	}
	// Repeated calls always append; there is no duplicate suppression here.
	assert.Len(t, repo.events, 5)
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	uc := NewRecorderUseCase(repo)

	bob := studentBob()
	identity := bob.Identity()

	_, err := uc.Record(context.Background(), &identity, "lunch-break", time.Now())
	assert.Error(t, err)
	assert.Empty(t, repo.events)
}
