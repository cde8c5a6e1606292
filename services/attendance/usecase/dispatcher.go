package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"attendance/domain"
)

// One verse is rotated into every guardian message: the morning pool for
// check-ins, the evening pool for check-outs.
var morningScriptures = []string{
	"\"This is the day the Lord has made; let us rejoice and be glad in it.\" - Psalm 118:24",
	"\"The steadfast love of the Lord never ceases; his mercies never come to an end; they are new every morning.\" - Lamentations 3:22-23",
	"\"Commit to the Lord whatever you do, and he will establish your plans.\" - Proverbs 16:3",
	"\"I can do all things through Christ who strengthens me.\" - Philippians 4:13",
	"\"But they who wait for the Lord shall renew their strength.\" - Isaiah 40:31",
}

var eveningScriptures = []string{
	"\"In peace I will lie down and sleep, for you alone, Lord, make me dwell in safety.\" - Psalm 4:8",
	"\"The Lord will watch over your coming and going both now and forevermore.\" - Psalm 121:8",
	"\"Give thanks to the Lord, for he is good; his love endures forever.\" - Psalm 107:1",
	"\"Come to me, all you who are weary and burdened, and I will give you rest.\" - Matthew 11:28",
	"\"Let the morning bring me word of your unfailing love, for I have put my trust in you.\" - Psalm 143:8",
}

// FirstName is the first whitespace-delimited token of the subject's name.
func FirstName(subjectName string) string {
	fields := strings.Fields(subjectName)
	if len(fields) == 0 {
		return subjectName
	}
	return fields[0]
}

// Greeting returns the literal template for the (action, flag) pair. The
// early check-out wording reads like a farewell rather than a warning; that
// is what the school signed off on, so the text stays as is.
func Greeting(subjectName, action string, flagged bool) string {
	firstName := FirstName(subjectName)

	if action == domain.ActionTimeIn {
		if flagged {
			return fmt.Sprintf("Better late than never, %s! Welcome to school.", firstName)
		}
		return fmt.Sprintf("Good morning, %s! Have a blessed day at school.", firstName)
	}

	if flagged {
		return fmt.Sprintf("Have a wonderful evening, %s! See you tomorrow.", firstName)
	}
	return fmt.Sprintf("Great day at school, %s! Get home safely.", firstName)
}

// ComposeMessage joins the greeting with a scripture picked by pickFn.
func ComposeMessage(subjectName, action string, flagged bool, pickFn func(n int) int) string {
	pool := morningScriptures
	if action == domain.ActionTimeOut {
		pool = eveningScriptures
	}
	return Greeting(subjectName, action, flagged) + "\n\n" + pool[pickFn(len(pool))]
}

type dispatcherUC struct {
	notificationRepo domain.NotificationRepo
	sink             domain.NotificationSink
	pickFn           func(n int) int
}

// NewDispatcherUseCase composes and delivers guardian notifications. Invoked
// at most once per recorded event and never retried.
func NewDispatcherUseCase(repo domain.NotificationRepo, sink domain.NotificationSink) domain.DispatcherUseCase {
	return &dispatcherUC{
		notificationRepo: repo,
		sink:             sink,
		pickFn:           rand.Intn,
	}
}

func (dUC *dispatcherUC) Notify(ctx context.Context, event *domain.AttendanceEvent, identity *domain.Identity, decision domain.TimeWindowDecision) (*domain.NotificationRecord, error) {
	// Skipped, not an error: only students with a guardian contact on file
	// generate messages.
	if identity.Role != domain.RoleStudent || identity.GuardianContact == "" {
		return nil, nil
	}

	flagged := decision.IsLateCheckIn
	if event.Action == domain.ActionTimeOut {
		flagged = decision.IsEarlyCheckOut
	}

	message := ComposeMessage(event.SubjectName, event.Action, flagged, dUC.pickFn)

	status, err := dUC.sink.Send(ctx, identity.GuardianContact, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}

	record := &domain.NotificationRecord{
		SubjectID:   event.SubjectID,
		SubjectName: event.SubjectName,
		Contact:     identity.GuardianContact,
		Message:     message,
		Timestamp:   event.Timestamp,
		Status:      status,
	}

	if err := dUC.notificationRepo.InsertRecord(ctx, record); err != nil {
		// The message already went out; report the bookkeeping failure but
		// do not retry delivery.
		return nil, fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}

	return record, nil
}
