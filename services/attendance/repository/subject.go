package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"attendance/domain"
)

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(database *gorm.DB) domain.SubjectRepo {
	return &subjectRepository{
		db: database,
	}
}

func (sr *subjectRepository) GetAllSubjects(ctx context.Context, role string) (*[]domain.Subject, error) {
	var subjects []domain.Subject

	query := sr.db.WithContext(ctx)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Order("name").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("%w: could not fetch subjects: %v", domain.ErrRecordStore, err)
	}

	return &subjects, nil
}

func (sr *subjectRepository) FindByCode(ctx context.Context, code string) (*domain.Subject, error) {
	var subject domain.Subject

	query := sr.db.WithContext(ctx).Where("external_id = ?", code)
	if id, err := strconv.Atoi(code); err == nil {
		query = sr.db.WithContext(ctx).Where("external_id = ? OR subject_id = ?", code, id)
	}

	err := query.First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, fmt.Errorf("%w: could not fetch subject %s: %v", domain.ErrRecordStore, code, err)
	}

	return &subject, nil
}
