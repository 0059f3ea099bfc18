// file: internals/features/school/attendance/service/gorm_repository.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
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

func (r *gormRepository) ActiveTermID(ctx context.Context) (uuid.UUID, error) {
	var row struct {
		AcademicTermID uuid.UUID
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT academic_term_id
		FROM academic_terms
		WHERE academic_term_is_active = TRUE
		  AND academic_term_deleted_at IS NULL
		LIMIT 1
	`).Scan(&row).Error
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "cari term aktif")
	}
	if row.AcademicTermID == uuid.Nil {
		return uuid.Nil, apperrors.ErrNoActiveTerm
	}
	return row.AcademicTermID, nil
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

func (r *gormRepository) RosterStudentIDs(ctx context.Context, classGroupID, termID uuid.UUID) ([]uuid.UUID, error) {
	return classService.RosterStudentIDs(ctx, r.db, classGroupID, termID)
}

func (r *gormRepository) EnsureSession(ctx context.Context, s *attendanceModel.AttendanceSessionModel) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_session_teaching_assignment_id"},
			{Name: "attendance_session_date"},
		},
		DoNothing: true,
	}).Create(s).Error
	if err != nil {
		return apperrors.FromDB(err)
	}
	// muat ulang: saat konflik, id belum terisi
	err = db.Where("attendance_session_teaching_assignment_id = ? AND attendance_session_date = ?",
		s.AttendanceSessionTeachingAssignmentID, s.AttendanceSessionDate).
		First(s).Error
	return errors.Wrap(err, "muat sesi")
}

func (r *gormRepository) FindSession(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceSessionModel, error) {
	var m attendanceModel.AttendanceSessionModel
	err := r.db.WithContext(ctx).First(&m, "attendance_session_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(apperrors.ErrNotFound, "sesi absensi")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cari sesi absensi")
	}
	return &m, nil
}

func (r *gormRepository) SeedRecords(ctx context.Context, sessionID uuid.UUID, studentIDs []uuid.UUID) error {
	if len(studentIDs) == 0 {
		return nil
	}
	rows := make([]attendanceModel.AttendanceRecordModel, 0, len(studentIDs))
	for _, sid := range studentIDs {
		rows = append(rows, attendanceModel.AttendanceRecordModel{
			AttendanceRecordSessionID: sessionID,
			AttendanceRecordStudentID: sid,
			AttendanceRecordStatus:    attendanceModel.AttendanceUnmarked,
		})
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_record_session_id"},
			{Name: "attendance_record_student_id"},
		},
		DoNothing: true,
	}).CreateInBatches(&rows, 200).Error
	return apperrors.FromDB(err)
}

func (r *gormRepository) ListRecords(ctx context.Context, sessionID uuid.UUID) ([]attendanceModel.AttendanceRecordModel, error) {
	var rows []attendanceModel.AttendanceRecordModel
	err := r.db.WithContext(ctx).
		Model(&attendanceModel.AttendanceRecordModel{}).
		Select("attendance_records.*").
		Joins("JOIN students ON students.student_id = attendance_records.attendance_record_student_id").
		Where("attendance_record_session_id = ?", sessionID).
		Order("students.student_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list absensi")
	}
	return rows, nil
}

func (r *gormRepository) UpdateRecords(ctx context.Context, rows []attendanceModel.AttendanceRecordModel) error {
	db := r.db.WithContext(ctx)
	for _, row := range rows {
		if err := db.Model(&attendanceModel.AttendanceRecordModel{}).
			Where("attendance_record_id = ?", row.AttendanceRecordID).
			Updates(map[string]interface{}{
				"attendance_record_status": row.AttendanceRecordStatus,
				"attendance_record_note":   row.AttendanceRecordNote,
			}).Error; err != nil {
			return errors.Wrapf(err, "update absensi %s", row.AttendanceRecordStudentID)
		}
	}
	return nil
}

func (r *gormRepository) StudentStatuses(ctx context.Context, studentID, termID uuid.UUID) ([]attendanceModel.AttendanceStatus, error) {
	var out []attendanceModel.AttendanceStatus
	err := r.db.WithContext(ctx).
		Table("attendance_records ar").
		Joins("JOIN attendance_sessions s ON s.attendance_session_id = ar.attendance_record_session_id").
		Joins("JOIN teaching_assignments ta ON ta.teaching_assignment_id = s.attendance_session_teaching_assignment_id").
		Where("ar.attendance_record_student_id = ? AND ta.teaching_assignment_term_id = ?", studentID, termID).
		Pluck("ar.attendance_record_status", &out).Error
	if err != nil {
		return nil, errors.Wrap(err, "muat status absensi")
	}
	return out, nil
}
