// file: internals/features/school/assessments/model/assessment_scores_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentScoreModel struct {
	AssessmentScoreID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assessment_score_id" json:"assessment_score_id"`
	AssessmentScoreAssessmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assessment_scores_assessment_student,priority:1;column:assessment_score_assessment_id" json:"assessment_score_assessment_id"`
	AssessmentScoreStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assessment_scores_assessment_student,priority:2;index;column:assessment_score_student_id" json:"assessment_score_student_id"`

	// 0..assessment_max_score (dicek di service, tidak bisa CHECK lintas tabel)
	AssessmentScoreValue float64 `gorm:"type:numeric(6,2);not null;column:assessment_score_value" json:"assessment_score_value"`

	AssessmentScoreCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:assessment_score_created_at" json:"assessment_score_created_at"`
	AssessmentScoreUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:assessment_score_updated_at" json:"assessment_score_updated_at"`
}

func (AssessmentScoreModel) TableName() string { return "assessment_scores" }
