// file: internals/features/school/classes/class_groups/service/roster.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	"raportku_backend/internals/helpers/apperrors"
)

// RosterStudentIDs: siswa aktif yang terdaftar di rombel pada term tsb.
func RosterStudentIDs(ctx context.Context, db *gorm.DB, classGroupID, termID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.WithContext(ctx).
		Table("class_enrollments e").
		Joins("JOIN students s ON s.student_id = e.class_enrollment_student_id AND s.student_deleted_at IS NULL").
		Where("e.class_enrollment_class_group_id = ? AND e.class_enrollment_term_id = ?", classGroupID, termID).
		Order("s.student_name ASC").
		Pluck("e.class_enrollment_student_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "muat roster")
	}
	return ids, nil
}

// RosterSet: bentuk set dari RosterStudentIDs.
func RosterSet(ctx context.Context, db *gorm.DB, classGroupID, termID uuid.UUID) (map[uuid.UUID]bool, error) {
	ids, err := RosterStudentIDs(ctx, db, classGroupID, termID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func FindClassGroup(ctx context.Context, db *gorm.DB, id uuid.UUID) (*classModel.ClassGroupModel, error) {
	var m classModel.ClassGroupModel
	err := db.WithContext(ctx).First(&m, "class_group_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(apperrors.ErrNotFound, "rombel")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cari rombel")
	}
	return &m, nil
}

// Enroll: idempotent per (class_group, student); yang sudah terdaftar dilewati.
// Mengembalikan jumlah baris baru.
func Enroll(ctx context.Context, db *gorm.DB, cg *classModel.ClassGroupModel, studentIDs []uuid.UUID) (int64, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}
	rows := make([]classModel.ClassEnrollmentModel, 0, len(studentIDs))
	seen := make(map[uuid.UUID]bool, len(studentIDs))
	for _, sid := range studentIDs {
		if seen[sid] {
			continue
		}
		seen[sid] = true
		rows = append(rows, classModel.ClassEnrollmentModel{
			ClassEnrollmentClassGroupID: cg.ClassGroupID,
			ClassEnrollmentStudentID:    sid,
			ClassEnrollmentTermID:       cg.ClassGroupTermID,
		})
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "class_enrollment_class_group_id"},
				{Name: "class_enrollment_student_id"},
			},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, apperrors.FromDB(res.Error)
	}
	return res.RowsAffected, nil
}
