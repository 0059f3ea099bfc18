// file: internals/features/school/report_cards/service/gorm_repository.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	"raportku_backend/internals/features/school/report_cards/calc"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
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
		ID uuid.UUID `gorm:"column:academic_term_id"`
	}
	q := r.db.WithContext(ctx).Raw(`
		SELECT academic_term_id
		FROM academic_terms
		WHERE academic_term_is_active = TRUE
		  AND academic_term_deleted_at IS NULL
		LIMIT 1
	`).Scan(&row)
	if q.Error != nil {
		return uuid.Nil, errors.Wrap(q.Error, "cari term aktif")
	}
	if row.ID == uuid.Nil {
		return uuid.Nil, apperrors.ErrNoActiveTerm
	}
	return row.ID, nil
}

func (r *gormRepository) FindEnrollment(ctx context.Context, enrollmentID uuid.UUID) (EnrollmentRef, error) {
	var m classModel.ClassEnrollmentModel
	err := r.db.WithContext(ctx).First(&m, "class_enrollment_id = ?", enrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EnrollmentRef{}, errors.Wrap(apperrors.ErrNotFound, "enrollment")
	}
	if err != nil {
		return EnrollmentRef{}, errors.Wrap(err, "cari enrollment")
	}
	return EnrollmentRef{
		EnrollmentID: m.ClassEnrollmentID,
		ClassGroupID: m.ClassEnrollmentClassGroupID,
		StudentID:    m.ClassEnrollmentStudentID,
		TermID:       m.ClassEnrollmentTermID,
	}, nil
}

func (r *gormRepository) LoadCohort(ctx context.Context, classGroupID, termID uuid.UUID) (*Cohort, error) {
	db := r.db.WithContext(ctx)

	var head struct {
		ClassGroupName string `gorm:"column:class_group_name"`
		AcademicYear   string `gorm:"column:academic_year"`
		TermName       string `gorm:"column:term_name"`
	}
	if err := db.Raw(`
		SELECT cg.class_group_name,
		       t.academic_term_academic_year AS academic_year,
		       t.academic_term_name          AS term_name
		FROM class_groups cg
		JOIN academic_terms t ON t.academic_term_id = ?
		                     AND t.academic_term_deleted_at IS NULL
		WHERE cg.class_group_id = ?
		  AND cg.class_group_deleted_at IS NULL
		LIMIT 1
	`, termID, classGroupID).Scan(&head).Error; err != nil {
		return nil, errors.Wrap(err, "muat rombel")
	}
	if head.ClassGroupName == "" {
		return nil, errors.Wrap(apperrors.ErrNotFound, "rombel / term")
	}

	co := &Cohort{
		ClassGroupID:   classGroupID,
		ClassGroupName: head.ClassGroupName,
		TermID:         termID,
		TermLabel:      head.AcademicYear + " " + head.TermName,
		KKM:            map[uuid.UUID]float64{},
		Scores:         map[uuid.UUID]map[uuid.UUID][]calc.ScoreEntry{},
		Attendance:     map[uuid.UUID][]attendanceModel.AttendanceStatus{},
		Existing:       map[uuid.UUID]reportModel.ReportCardModel{},
		Promotions:     map[uuid.UUID]reportModel.PromotionStatus{},
	}

	// roster saat ini
	if err := db.Raw(`
		SELECT e.class_enrollment_id               AS enrollment_id,
		       s.student_id,
		       s.student_name,
		       COALESCE(s.student_parent_name, '')  AS parent_name,
		       COALESCE(s.student_parent_email, '') AS parent_email
		FROM class_enrollments e
		JOIN students s ON s.student_id = e.class_enrollment_student_id
		               AND s.student_deleted_at IS NULL
		WHERE e.class_enrollment_class_group_id = ?
		  AND e.class_enrollment_term_id = ?
		ORDER BY s.student_name
	`, classGroupID, termID).Scan(&co.Members).Error; err != nil {
		return nil, errors.Wrap(err, "muat roster")
	}
	if len(co.Members) == 0 {
		return co, nil
	}

	studentIDs := make([]uuid.UUID, 0, len(co.Members))
	enrollmentIDs := make([]uuid.UUID, 0, len(co.Members))
	for _, m := range co.Members {
		studentIDs = append(studentIDs, m.StudentID)
		enrollmentIDs = append(enrollmentIDs, m.EnrollmentID)
	}

	// mapel yang diajarkan di rombel pada term ini
	if err := db.Raw(`
		SELECT DISTINCT s.subject_id AS id, s.subject_code AS code, s.subject_name AS name
		FROM teaching_assignments ta
		JOIN subjects s ON s.subject_id = ta.teaching_assignment_subject_id
		               AND s.subject_deleted_at IS NULL
		WHERE ta.teaching_assignment_class_group_id = ?
		  AND ta.teaching_assignment_term_id = ?
		ORDER BY s.subject_code
	`, classGroupID, termID).Scan(&co.Subjects).Error; err != nil {
		return nil, errors.Wrap(err, "muat mapel")
	}

	if len(co.Subjects) > 0 {
		subjectIDs := make([]uuid.UUID, 0, len(co.Subjects))
		for _, s := range co.Subjects {
			subjectIDs = append(subjectIDs, s.ID)
		}

		var kkms []struct {
			SubjectID uuid.UUID
			Value     float64
		}
		if err := db.Raw(`
			SELECT subject_kkm_subject_id AS subject_id, subject_kkm_value AS value
			FROM subject_kkms
			WHERE subject_kkm_term_id = ?
			  AND subject_kkm_subject_id IN ?
		`, termID, subjectIDs).Scan(&kkms).Error; err != nil {
			return nil, errors.Wrap(err, "muat KKM")
		}
		for _, k := range kkms {
			co.KKM[k.SubjectID] = k.Value
		}

		var scores []struct {
			StudentID    uuid.UUID
			SubjectID    uuid.UUID
			AssessmentID uuid.UUID
			Category     string
			Weight       float64
			MaxScore     float64
			Score        float64
		}
		if err := db.Raw(`
			SELECT sc.assessment_score_student_id     AS student_id,
			       ta.teaching_assignment_subject_id  AS subject_id,
			       a.assessment_id,
			       a.assessment_category              AS category,
			       a.assessment_weight                AS weight,
			       a.assessment_max_score             AS max_score,
			       sc.assessment_score_value          AS score
			FROM assessment_scores sc
			JOIN assessments a ON a.assessment_id = sc.assessment_score_assessment_id
			                  AND a.assessment_deleted_at IS NULL
			JOIN teaching_assignments ta ON ta.teaching_assignment_id = a.assessment_teaching_assignment_id
			WHERE ta.teaching_assignment_term_id = ?
			  AND ta.teaching_assignment_subject_id IN ?
			  AND sc.assessment_score_student_id IN ?
		`, termID, subjectIDs, studentIDs).Scan(&scores).Error; err != nil {
			return nil, errors.Wrap(err, "muat nilai")
		}
		for _, s := range scores {
			bySubject, ok := co.Scores[s.StudentID]
			if !ok {
				bySubject = map[uuid.UUID][]calc.ScoreEntry{}
				co.Scores[s.StudentID] = bySubject
			}
			bySubject[s.SubjectID] = append(bySubject[s.SubjectID], calc.ScoreEntry{
				AssessmentID: s.AssessmentID,
				Category:     s.Category,
				Weight:       s.Weight,
				MaxScore:     s.MaxScore,
				Score:        s.Score,
			})
		}
	}

	// present & unmarked tidak pernah dihitung, jadi tidak perlu dimuat
	var att []struct {
		StudentID uuid.UUID
		Status    attendanceModel.AttendanceStatus
	}
	if err := db.Raw(`
		SELECT ar.attendance_record_student_id AS student_id,
		       ar.attendance_record_status     AS status
		FROM attendance_records ar
		JOIN attendance_sessions s ON s.attendance_session_id = ar.attendance_record_session_id
		JOIN teaching_assignments ta ON ta.teaching_assignment_id = s.attendance_session_teaching_assignment_id
		WHERE ta.teaching_assignment_term_id = ?
		  AND ar.attendance_record_student_id IN ?
		  AND ar.attendance_record_status IN ?
	`, termID, studentIDs, []string{
		string(attendanceModel.AttendanceSick),
		string(attendanceModel.AttendancePermit),
		string(attendanceModel.AttendanceAbsent),
	}).Scan(&att).Error; err != nil {
		return nil, errors.Wrap(err, "muat absensi")
	}
	for _, a := range att {
		co.Attendance[a.StudentID] = append(co.Attendance[a.StudentID], a.Status)
	}

	var existing []reportModel.ReportCardModel
	if err := db.
		Where("report_card_class_enrollment_id IN ? AND report_card_term_id = ?", enrollmentIDs, termID).
		Find(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "muat rapor lama")
	}
	for _, c := range existing {
		co.Existing[c.ReportCardClassEnrollmentID] = c
	}

	var promos []struct {
		StudentID uuid.UUID
		Status    reportModel.PromotionStatus
	}
	if err := db.Raw(`
		SELECT class_promotion_student_id AS student_id, class_promotion_status AS status
		FROM class_promotions
		WHERE class_promotion_from_term_id = ?
		  AND class_promotion_student_id IN ?
	`, termID, studentIDs).Scan(&promos).Error; err != nil {
		return nil, errors.Wrap(err, "muat keputusan kenaikan")
	}
	for _, p := range promos {
		co.Promotions[p.StudentID] = p.Status
	}

	return co, nil
}

var cardUpsertColumns = []string{
	"report_card_class_group_id",
	"report_card_student_id",
	"report_card_total_score",
	"report_card_average_score",
	"report_card_rank",
	"report_card_total_students",
	"report_card_sick_days",
	"report_card_permit_days",
	"report_card_absent_days",
	"report_card_promotion_status",
	"report_card_failed_subjects",
	"report_card_policy_snapshot",
	"report_card_generated_at",
	"report_card_updated_at",
}

func (r *gormRepository) SaveCard(ctx context.Context, card *reportModel.ReportCardModel) error {
	db := r.db.WithContext(ctx)
	subjects := card.Subjects

	// DO UPDATE hanya untuk baris yang belum dikunci
	res := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "report_card_class_enrollment_id"},
			{Name: "report_card_term_id"},
		},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "report_cards.report_card_locked_at IS NULL"},
		}},
		DoUpdates: clause.AssignmentColumns(cardUpsertColumns),
	}).Create(card)
	if res.Error != nil {
		return apperrors.FromDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.LockedStateError{EnrollmentIDs: []uuid.UUID{card.ReportCardClassEnrollmentID}}
	}

	// id final (baris lama mempertahankan id-nya)
	var row struct {
		ReportCardID uuid.UUID
	}
	if err := db.Raw(`
		SELECT report_card_id
		FROM report_cards
		WHERE report_card_class_enrollment_id = ?
		  AND report_card_term_id = ?
	`, card.ReportCardClassEnrollmentID, card.ReportCardTermID).Scan(&row).Error; err != nil {
		return errors.Wrap(err, "baca id rapor")
	}
	id := row.ReportCardID
	card.ReportCardID = id

	if err := db.Where("report_card_subject_report_card_id = ?", id).
		Delete(&reportModel.ReportCardSubjectModel{}).Error; err != nil {
		return errors.Wrap(err, "hapus subjects lama")
	}
	for i := range subjects {
		subjects[i].ReportCardSubjectReportCardID = id
	}
	if len(subjects) > 0 {
		if err := db.CreateInBatches(&subjects, 100).Error; err != nil {
			return apperrors.FromDB(err)
		}
	}
	card.Subjects = subjects
	return nil
}

func (r *gormRepository) FindCard(ctx context.Context, id uuid.UUID) (*reportModel.ReportCardModel, error) {
	var card reportModel.ReportCardModel
	err := r.db.WithContext(ctx).
		Preload("Subjects", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("report_card_subject_subject_code ASC")
		}).
		First(&card, "report_card_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(apperrors.ErrNotFound, "rapor")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cari rapor")
	}
	return &card, nil
}

func (r *gormRepository) ListCards(ctx context.Context, classGroupID, termID uuid.UUID) ([]reportModel.ReportCardModel, error) {
	var rows []reportModel.ReportCardModel
	err := r.db.WithContext(ctx).
		Model(&reportModel.ReportCardModel{}).
		Select("report_cards.*").
		Joins("JOIN students ON students.student_id = report_cards.report_card_student_id").
		Where("report_cards.report_card_class_group_id = ? AND report_cards.report_card_term_id = ?", classGroupID, termID).
		Order("report_cards.report_card_rank ASC, students.student_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list rapor")
	}
	return rows, nil
}

func (r *gormRepository) SetLockedAt(ctx context.Context, id uuid.UUID, at *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&reportModel.ReportCardModel{}).
		Where("report_card_id = ?", id).
		Update("report_card_locked_at", at)
	if res.Error != nil {
		return errors.Wrap(res.Error, "set locked_at")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(apperrors.ErrNotFound, "rapor")
	}
	return nil
}

func (r *gormRepository) SetHomeroomNote(ctx context.Context, id uuid.UUID, note *string) error {
	res := r.db.WithContext(ctx).
		Model(&reportModel.ReportCardModel{}).
		Where("report_card_id = ? AND report_card_locked_at IS NULL", id).
		Update("report_card_homeroom_note", note)
	if res.Error != nil {
		return errors.Wrap(res.Error, "set catatan wali kelas")
	}
	if res.RowsAffected == 0 {
		return &apperrors.LockedStateError{}
	}
	return nil
}
