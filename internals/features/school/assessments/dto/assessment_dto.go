// file: internals/features/school/assessments/dto/assessment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"raportku_backend/internals/features/school/assessments/model"
	"raportku_backend/internals/features/school/assessments/service"
)

// =======================
// Request DTO
// =======================

type CreateAssessmentRequest struct {
	AssessmentTeachingAssignmentID uuid.UUID `json:"assessment_teaching_assignment_id" validate:"required"`
	AssessmentTitle                string    `json:"assessment_title"                  validate:"required,min=2,max=180"`
	AssessmentCategory             string    `json:"assessment_category"               validate:"required,oneof=tugas quiz uts uas praktik"`
	AssessmentWeight               float64   `json:"assessment_weight"                 validate:"gt=0,lte=100"`
	// 0 → default 100
	AssessmentMaxScore float64    `json:"assessment_max_score" validate:"omitempty,gt=0"`
	AssessmentDate     *time.Time `json:"assessment_date,omitempty"`
}

func (p *CreateAssessmentRequest) Normalize() {
	p.AssessmentTitle = strings.TrimSpace(p.AssessmentTitle)
	p.AssessmentCategory = strings.ToLower(strings.TrimSpace(p.AssessmentCategory))
	if p.AssessmentMaxScore == 0 {
		p.AssessmentMaxScore = 100
	}
}

func (p *CreateAssessmentRequest) ToModel() model.AssessmentModel {
	return model.AssessmentModel{
		AssessmentTeachingAssignmentID: p.AssessmentTeachingAssignmentID,
		AssessmentTitle:                p.AssessmentTitle,
		AssessmentCategory:             model.AssessmentCategory(p.AssessmentCategory),
		AssessmentWeight:               p.AssessmentWeight,
		AssessmentMaxScore:             p.AssessmentMaxScore,
		AssessmentDate:                 p.AssessmentDate,
	}
}

type ScoreRowDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Score     *float64  `json:"score"      validate:"required"`
}

// Rentang 0..max_score dicek di service (butuh max_score dari DB).
type BulkScoreRequest struct {
	Scores []ScoreRowDTO `json:"scores" validate:"required,min=1,dive"`
}

func (p *BulkScoreRequest) ToInput() []service.ScoreInput {
	out := make([]service.ScoreInput, 0, len(p.Scores))
	for _, s := range p.Scores {
		out = append(out, service.ScoreInput{StudentID: s.StudentID, Score: *s.Score})
	}
	return out
}

// =======================
// Response DTO
// =======================

type AssessmentResponse struct {
	AssessmentID                   uuid.UUID                `json:"assessment_id"`
	AssessmentTeachingAssignmentID uuid.UUID                `json:"assessment_teaching_assignment_id"`
	AssessmentTitle                string                   `json:"assessment_title"`
	AssessmentCategory             model.AssessmentCategory `json:"assessment_category"`
	AssessmentWeight               float64                  `json:"assessment_weight"`
	AssessmentMaxScore             float64                  `json:"assessment_max_score"`
	AssessmentDate                 *time.Time               `json:"assessment_date,omitempty"`
	AssessmentCreatedAt            time.Time                `json:"assessment_created_at"`
}

func FromModel(m model.AssessmentModel) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID:                   m.AssessmentID,
		AssessmentTeachingAssignmentID: m.AssessmentTeachingAssignmentID,
		AssessmentTitle:                m.AssessmentTitle,
		AssessmentCategory:             m.AssessmentCategory,
		AssessmentWeight:               m.AssessmentWeight,
		AssessmentMaxScore:             m.AssessmentMaxScore,
		AssessmentDate:                 m.AssessmentDate,
		AssessmentCreatedAt:            m.AssessmentCreatedAt,
	}
}

type ScoreResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	Score     float64   `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromScores(rows []model.AssessmentScoreModel) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ScoreResponse{
			StudentID: r.AssessmentScoreStudentID,
			Score:     r.AssessmentScoreValue,
			UpdatedAt: r.AssessmentScoreUpdatedAt,
		})
	}
	return out
}
