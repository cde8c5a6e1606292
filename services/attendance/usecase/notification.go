package usecase

import (
	"context"
	"time"

	"attendance/domain"
)

type notificationUC struct {
	notificationRepo domain.NotificationRepo
	TimeOut          time.Duration
}

func NewNotificationHistoryUseCase(repo domain.NotificationRepo, timeOut time.Duration) domain.NotificationHistoryUseCase {
	return &notificationUC{
		notificationRepo: repo,
		TimeOut:          timeOut,
	}
}

func (nUC *notificationUC) GetHistory(ctx context.Context) (*[]domain.NotificationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	records, err := nUC.notificationRepo.GetHistory(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}
