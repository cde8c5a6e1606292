package domain

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Subject is a person known to the school: a student or a teacher.
// The ExternalID is the code printed on the ID card / QR sticker.
type Subject struct {
	SubjectID       int            `gorm:"primaryKey;autoIncrement" json:"subject_id"`
	ExternalID      string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"external_id" valid:"required~External ID is required"`
	Name            string         `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Role            string         `gorm:"type:varchar(10);not null" json:"role" valid:"required~Role is required,in(student|teacher)~Invalid role"`
	GuardianContact string         `gorm:"type:varchar(20)" json:"guardian_contact"`
	Class           string         `gorm:"type:varchar(10)" json:"class"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// Identity is a subject resolved for one scan. Immutable once resolved.
type Identity struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Role            string `json:"role"`
	GuardianContact string `json:"guardian_contact,omitempty"`
}

// Identity flattens the record into the resolved form handed to the
// recorder and dispatcher.
func (s Subject) Identity() Identity {
	id := s.ExternalID
	if id == "" {
		id = strconv.Itoa(s.SubjectID)
	}
	return Identity{
		ID:              id,
		DisplayName:     s.Name,
		Role:            s.Role,
		GuardianContact: s.GuardianContact,
	}
}

// Matches reports whether code equals the external id or the internal id.
// Case-sensitive exact match only.
func (s Subject) Matches(code string) bool {
	return s.ExternalID == code || strconv.Itoa(s.SubjectID) == code
}

type SubjectRepo interface {
	GetAllSubjects(ctx context.Context, role string) (*[]Subject, error)
	FindByCode(ctx context.Context, code string) (*Subject, error)
}

type SubjectUseCase interface {
	GetAllSubjects(ctx context.Context, role string) (*[]Subject, error)
}
