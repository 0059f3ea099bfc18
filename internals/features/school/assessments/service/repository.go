// file: internals/features/school/assessments/service/repository.go
package service

import (
	"context"

	"github.com/google/uuid"

	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(r Repository) error) error

	CreateAssessment(ctx context.Context, m *assessmentModel.AssessmentModel) error
	ListAssessments(ctx context.Context, teachingAssignmentID uuid.UUID) ([]assessmentModel.AssessmentModel, error)
	FindAssessment(ctx context.Context, id uuid.UUID) (*assessmentModel.AssessmentModel, error)
	FindAssignment(ctx context.Context, id uuid.UUID) (*taModel.TeachingAssignmentModel, error)
	RosterSet(ctx context.Context, classGroupID, termID uuid.UUID) (map[uuid.UUID]bool, error)

	// UpsertScores: ON CONFLICT (assessment, student) DO UPDATE nilai.
	UpsertScores(ctx context.Context, rows []assessmentModel.AssessmentScoreModel) error
	ListScores(ctx context.Context, assessmentID uuid.UUID) ([]assessmentModel.AssessmentScoreModel, error)
}
