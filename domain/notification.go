package domain

import (
	"context"
	"time"
)

const (
	DeliveryDelivered = "delivered"
	DeliverySent      = "sent"
	DeliveryFailed    = "failed"
)

// NotificationRecord is created at most once per attendance event, only for
// students with a guardian contact on file.
type NotificationRecord struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SubjectID   string    `gorm:"type:varchar(64);not null;index" json:"subject_id"`
	SubjectName string    `gorm:"type:varchar(150);not null" json:"subject_name"`
	Contact     string    `gorm:"type:varchar(20);not null" json:"contact"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
	Status      string    `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NotificationSink delivers a composed message to a guardian contact and
// reports the transport's delivery status. Transport internals live behind
// this interface.
type NotificationSink interface {
	Send(ctx context.Context, contact, message string) (string, error)
}

type NotificationRepo interface {
	InsertRecord(ctx context.Context, record *NotificationRecord) error
	GetHistory(ctx context.Context) (*[]NotificationRecord, error)
}

type DispatcherUseCase interface {
	Notify(ctx context.Context, event *AttendanceEvent, identity *Identity, decision TimeWindowDecision) (*NotificationRecord, error)
}

type NotificationHistoryUseCase interface {
	GetHistory(ctx context.Context) (*[]NotificationRecord, error)
}
