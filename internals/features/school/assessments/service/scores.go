// file: internals/features/school/assessments/service/scores.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	"raportku_backend/internals/helpers/apperrors"
)

type ScoreInput struct {
	StudentID uuid.UUID
	Score     float64
}

type ScoreService struct {
	Repo Repository
}

func NewScoreService(repo Repository) *ScoreService {
	return &ScoreService{Repo: repo}
}

// CreateAssessment: penugasan mengajar harus ada.
func (s *ScoreService) CreateAssessment(ctx context.Context, m *assessmentModel.AssessmentModel) error {
	err := s.Repo.WithTx(ctx, func(r Repository) error {
		if _, err := r.FindAssignment(ctx, m.AssessmentTeachingAssignmentID); err != nil {
			return err
		}
		return r.CreateAssessment(ctx, m)
	})
	return apperrors.WrapTx("buat penilaian", err)
}

func (s *ScoreService) ListAssessments(ctx context.Context, teachingAssignmentID uuid.UUID) ([]assessmentModel.AssessmentModel, error) {
	return s.Repo.ListAssessments(ctx, teachingAssignmentID)
}

// SaveScores: simpan massal nilai satu penilaian. Satu baris tidak valid → tidak ada yang disimpan.
func (s *ScoreService) SaveScores(ctx context.Context, assessmentID uuid.UUID, in []ScoreInput) ([]assessmentModel.AssessmentScoreModel, error) {
	var out []assessmentModel.AssessmentScoreModel
	err := s.Repo.WithTx(ctx, func(r Repository) error {
		a, err := r.FindAssessment(ctx, assessmentID)
		if err != nil {
			return err
		}
		ta, err := r.FindAssignment(ctx, a.AssessmentTeachingAssignmentID)
		if err != nil {
			return err
		}
		roster, err := r.RosterSet(ctx, ta.TeachingAssignmentClassGroupID, ta.TeachingAssignmentTermID)
		if err != nil {
			return err
		}

		rows, err := validateScores(a, roster, in)
		if err != nil {
			return err
		}
		if err := r.UpsertScores(ctx, rows); err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("simpan nilai", err)
	}
	log.Printf("[INFO] nilai disimpan: assessment=%s jumlah=%d", assessmentID, len(out))
	return out, nil
}

func validateScores(a *assessmentModel.AssessmentModel, roster map[uuid.UUID]bool, in []ScoreInput) ([]assessmentModel.AssessmentScoreModel, error) {
	if len(in) == 0 {
		return nil, apperrors.NewValidationError(errors.New("validation failed"),
			apperrors.FieldError{Field: "scores", Error: "required"})
	}
	var (
		fields []apperrors.FieldError
		rows   = make([]assessmentModel.AssessmentScoreModel, 0, len(in))
		seen   = map[uuid.UUID]int{}
	)
	for i, sc := range in {
		switch {
		case sc.StudentID == uuid.Nil:
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("scores[%d].student_id", i), Error: "required"})
		case !roster[sc.StudentID]:
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("scores[%d].student_id", i), Error: "not_enrolled"})
		default:
			if j, dup := seen[sc.StudentID]; dup {
				fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("scores[%d].student_id", i), Error: fmt.Sprintf("duplicate_of_%d", j)})
			}
			seen[sc.StudentID] = i
		}
		if sc.Score < 0 || sc.Score > a.AssessmentMaxScore {
			fields = append(fields, apperrors.FieldError{
				Field: fmt.Sprintf("scores[%d].score", i),
				Error: fmt.Sprintf("harus 0..%.2f", a.AssessmentMaxScore),
			})
		}
		rows = append(rows, assessmentModel.AssessmentScoreModel{
			AssessmentScoreAssessmentID: a.AssessmentID,
			AssessmentScoreStudentID:    sc.StudentID,
			AssessmentScoreValue:        sc.Score,
		})
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(errors.New("nilai tidak valid"), fields...)
	}
	return rows, nil
}

func (s *ScoreService) ListScores(ctx context.Context, assessmentID uuid.UUID) ([]assessmentModel.AssessmentScoreModel, error) {
	if _, err := s.Repo.FindAssessment(ctx, assessmentID); err != nil {
		return nil, err
	}
	return s.Repo.ListScores(ctx, assessmentID)
}
