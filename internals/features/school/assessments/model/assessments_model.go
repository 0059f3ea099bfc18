// file: internals/features/school/assessments/model/assessments_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================
// Enum: Assessment Category
// =========================

type AssessmentCategory string

const (
	AssessmentCategoryTugas   AssessmentCategory = "tugas"
	AssessmentCategoryQuiz    AssessmentCategory = "quiz"
	AssessmentCategoryUTS     AssessmentCategory = "uts"
	AssessmentCategoryUAS     AssessmentCategory = "uas"
	AssessmentCategoryPraktik AssessmentCategory = "praktik"
)

func (c AssessmentCategory) Valid() bool {
	switch c {
	case AssessmentCategoryTugas, AssessmentCategoryQuiz, AssessmentCategoryUTS,
		AssessmentCategoryUAS, AssessmentCategoryPraktik:
		return true
	}
	return false
}

// =========================
// Model: assessments
// =========================

type AssessmentModel struct {
	AssessmentID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assessment_id" json:"assessment_id"`
	AssessmentTeachingAssignmentID uuid.UUID `gorm:"type:uuid;not null;index;column:assessment_teaching_assignment_id" json:"assessment_teaching_assignment_id"`

	AssessmentTitle    string             `gorm:"type:varchar(180);not null;column:assessment_title" json:"assessment_title"`
	AssessmentCategory AssessmentCategory `gorm:"type:varchar(16);not null;column:assessment_category" json:"assessment_category"`

	// bobot dalam persen (0 < w <= 100)
	AssessmentWeight   float64 `gorm:"type:numeric(5,2);not null;column:assessment_weight" json:"assessment_weight"`
	AssessmentMaxScore float64 `gorm:"type:numeric(6,2);not null;default:100;column:assessment_max_score" json:"assessment_max_score"`

	AssessmentDate *time.Time `gorm:"type:date;column:assessment_date" json:"assessment_date,omitempty"`

	AssessmentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:assessment_created_at" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:assessment_updated_at" json:"assessment_updated_at"`
	AssessmentDeletedAt gorm.DeletedAt `gorm:"column:assessment_deleted_at;index" json:"assessment_deleted_at,omitempty"`
}

func (AssessmentModel) TableName() string { return "assessments" }

func (m *AssessmentModel) BeforeSave(tx *gorm.DB) error {
	m.AssessmentTitle = strings.TrimSpace(m.AssessmentTitle)
	m.AssessmentCategory = AssessmentCategory(strings.ToLower(strings.TrimSpace(string(m.AssessmentCategory))))
	if !m.AssessmentCategory.Valid() {
		return errors.New("assessment_category tidak valid")
	}
	if m.AssessmentWeight <= 0 || m.AssessmentWeight > 100 {
		return errors.New("assessment_weight harus 0 < w <= 100")
	}
	if m.AssessmentMaxScore <= 0 {
		return errors.New("assessment_max_score harus > 0")
	}
	return nil
}
