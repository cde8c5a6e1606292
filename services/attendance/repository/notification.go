package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance/domain"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) domain.NotificationRepo {
	return &notificationRepository{
		db: database,
	}
}

func (nr *notificationRepository) InsertRecord(ctx context.Context, record *domain.NotificationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if err := nr.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("%w: could not insert notification record: %v", domain.ErrRecordStore, err)
	}

	return nil
}

func (nr *notificationRepository) GetHistory(ctx context.Context) (*[]domain.NotificationRecord, error) {
	var records []domain.NotificationRecord

	if err := nr.db.WithContext(ctx).Order("timestamp DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: could not fetch notification history: %v", domain.ErrRecordStore, err)
	}

	return &records, nil
}
