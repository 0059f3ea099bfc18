// file: internals/features/school/academics/subjects/model/subjects_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_id" json:"subject_id"`
	SubjectCode string    `gorm:"type:varchar(24);not null;uniqueIndex:uq_subjects_code;column:subject_code" json:"subject_code"`
	SubjectName string    `gorm:"type:varchar(120);not null;column:subject_name" json:"subject_name"`

	SubjectCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:subject_updated_at" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeSave(tx *gorm.DB) error {
	m.SubjectCode = strings.ToUpper(strings.TrimSpace(m.SubjectCode))
	m.SubjectName = strings.TrimSpace(m.SubjectName)
	return nil
}
