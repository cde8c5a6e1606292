package usecase

import (
	"context"
	"time"

	"attendance/domain"
)

type subjectUC struct {
	subjectRepo domain.SubjectRepo
	TimeOut     time.Duration
}

func NewSubjectUseCase(repo domain.SubjectRepo, timeOut time.Duration) domain.SubjectUseCase {
	return &subjectUC{
		subjectRepo: repo,
		TimeOut:     timeOut,
	}
}

func (sUC *subjectUC) GetAllSubjects(ctx context.Context, role string) (*[]domain.Subject, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	subjects, err := sUC.subjectRepo.GetAllSubjects(ctx, role)
	if err != nil {
		return nil, err
	}
	return subjects, nil
}
