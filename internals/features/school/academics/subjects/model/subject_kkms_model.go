// file: internals/features/school/academics/subjects/model/subject_kkms_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultKKM dipakai bila subject_kkms belum diisi untuk (subject, term).
const DefaultKKM = 70.00

type SubjectKKMModel struct {
	SubjectKKMID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_kkm_id" json:"subject_kkm_id"`
	SubjectKKMSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subject_kkms_subject_term,priority:1;column:subject_kkm_subject_id" json:"subject_kkm_subject_id"`
	SubjectKKMTermID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subject_kkms_subject_term,priority:2;column:subject_kkm_term_id" json:"subject_kkm_term_id"`
	SubjectKKMValue     float64   `gorm:"type:numeric(5,2);not null;default:70.00;column:subject_kkm_value" json:"subject_kkm_value"`

	SubjectKKMCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:subject_kkm_created_at" json:"subject_kkm_created_at"`
	SubjectKKMUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:subject_kkm_updated_at" json:"subject_kkm_updated_at"`
}

func (SubjectKKMModel) TableName() string { return "subject_kkms" }

func (m *SubjectKKMModel) BeforeSave(tx *gorm.DB) error {
	if m.SubjectKKMValue < 0 || m.SubjectKKMValue > 100 {
		return fmt.Errorf("subject_kkm_value harus 0..100, dapat %.2f", m.SubjectKKMValue)
	}
	return nil
}
