// file: internals/features/school/assessments/service/gorm_repository.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	classService "raportku_backend/internals/features/school/classes/class_groups/service"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	"raportku_backend/internals/helpers/apperrors"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) CreateAssessment(ctx context.Context, m *assessmentModel.AssessmentModel) error {
	return apperrors.FromDB(r.db.WithContext(ctx).Create(m).Error)
}

func (r *gormRepository) ListAssessments(ctx context.Context, teachingAssignmentID uuid.UUID) ([]assessmentModel.AssessmentModel, error) {
	var rows []assessmentModel.AssessmentModel
	err := r.db.WithContext(ctx).
		Where("assessment_teaching_assignment_id = ?", teachingAssignmentID).
		Order("assessment_date ASC NULLS LAST, assessment_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list penilaian")
	}
	return rows, nil
}

func (r *gormRepository) FindAssessment(ctx context.Context, id uuid.UUID) (*assessmentModel.AssessmentModel, error) {
	var m assessmentModel.AssessmentModel
	err := r.db.WithContext(ctx).First(&m, "assessment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(apperrors.ErrNotFound, "penilaian")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cari penilaian")
	}
	return &m, nil
}

func (r *gormRepository) FindAssignment(ctx context.Context, id uuid.UUID) (*taModel.TeachingAssignmentModel, error) {
	var m taModel.TeachingAssignmentModel
	err := r.db.WithContext(ctx).First(&m, "teaching_assignment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(apperrors.ErrNotFound, "penugasan mengajar")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cari penugasan mengajar")
	}
	return &m, nil
}

func (r *gormRepository) RosterSet(ctx context.Context, classGroupID, termID uuid.UUID) (map[uuid.UUID]bool, error) {
	return classService.RosterSet(ctx, r.db, classGroupID, termID)
}

func (r *gormRepository) UpsertScores(ctx context.Context, rows []assessmentModel.AssessmentScoreModel) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "assessment_score_assessment_id"},
			{Name: "assessment_score_student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"assessment_score_value",
			"assessment_score_updated_at",
		}),
	}).CreateInBatches(&rows, 200).Error
	return apperrors.FromDB(err)
}

func (r *gormRepository) ListScores(ctx context.Context, assessmentID uuid.UUID) ([]assessmentModel.AssessmentScoreModel, error) {
	var rows []assessmentModel.AssessmentScoreModel
	err := r.db.WithContext(ctx).
		Where("assessment_score_assessment_id = ?", assessmentID).
		Order("assessment_score_student_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list nilai")
	}
	return rows, nil
}
