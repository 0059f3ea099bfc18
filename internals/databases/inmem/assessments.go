package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	assessmentModel "raportku_backend/internals/features/school/assessments/model"
	assessmentService "raportku_backend/internals/features/school/assessments/service"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	"raportku_backend/internals/helpers/apperrors"
)

type assessmentRepo struct {
	s  *Store
	tx *data
}

var _ assessmentService.Repository = (*assessmentRepo)(nil)

func (s *Store) AssessmentRepo() assessmentService.Repository {
	return &assessmentRepo{s: s}
}

func (r *assessmentRepo) WithTx(ctx context.Context, fn func(assessmentService.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.s.tx(func(d *data) error {
		return fn(&assessmentRepo{s: r.s, tx: d})
	})
}

func (r *assessmentRepo) CreateAssessment(ctx context.Context, m *assessmentModel.AssessmentModel) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		ensureID(&m.AssessmentID)
		m.AssessmentCreatedAt = now()
		m.AssessmentUpdatedAt = m.AssessmentCreatedAt
		d.assessments[m.AssessmentID] = *m
		return nil
	})
}

func (r *assessmentRepo) ListAssessments(ctx context.Context, teachingAssignmentID uuid.UUID) (out []assessmentModel.AssessmentModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, a := range d.assessments {
			if a.AssessmentTeachingAssignmentID == teachingAssignmentID && !a.AssessmentDeletedAt.Valid {
				out = append(out, a)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].AssessmentCreatedAt.Before(out[j].AssessmentCreatedAt)
		})
		return nil
	})
	return out, err
}

func (r *assessmentRepo) FindAssessment(ctx context.Context, id uuid.UUID) (out *assessmentModel.AssessmentModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		a, ok := d.assessments[id]
		if !ok || a.AssessmentDeletedAt.Valid {
			return errors.Wrap(apperrors.ErrNotFound, "penilaian")
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *assessmentRepo) FindAssignment(ctx context.Context, id uuid.UUID) (out *taModel.TeachingAssignmentModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		out, err = d.assignment(id)
		return err
	})
	return out, err
}

func (r *assessmentRepo) RosterSet(ctx context.Context, classGroupID, termID uuid.UUID) (out map[uuid.UUID]bool, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		out = d.rosterSet(classGroupID, termID)
		return nil
	})
	return out, err
}

func (r *assessmentRepo) UpsertScores(ctx context.Context, rows []assessmentModel.AssessmentScoreModel) error {
	return r.s.view(r.tx, func(d *data) error {
		t := now()
		for i := range rows {
			// gagal di tengah batch: baris sebelumnya sudah tertulis ke salinan transaksi
			if err := r.s.failWrite(); err != nil && i > 0 {
				return err
			}
			row := rows[i]
			row.AssessmentScoreCreatedAt = t
			for id, ex := range d.scores {
				if ex.AssessmentScoreAssessmentID == row.AssessmentScoreAssessmentID && ex.AssessmentScoreStudentID == row.AssessmentScoreStudentID {
					row.AssessmentScoreID = id
					row.AssessmentScoreCreatedAt = ex.AssessmentScoreCreatedAt
					break
				}
			}
			ensureID(&row.AssessmentScoreID)
			row.AssessmentScoreUpdatedAt = t
			d.scores[row.AssessmentScoreID] = row
			rows[i] = row
		}
		return r.s.failWrite()
	})
}

func (r *assessmentRepo) ListScores(ctx context.Context, assessmentID uuid.UUID) (out []assessmentModel.AssessmentScoreModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, sc := range d.scores {
			if sc.AssessmentScoreAssessmentID == assessmentID {
				out = append(out, sc)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].AssessmentScoreStudentID.String() < out[j].AssessmentScoreStudentID.String()
		})
		return nil
	})
	return out, err
}
