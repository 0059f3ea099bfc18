// file: internals/features/school/classes/class_groups/controller/class_groups_controller.go
package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	termModel "raportku_backend/internals/features/school/academics/academic_terms/model"
	"raportku_backend/internals/features/school/classes/class_groups/dto"
	"raportku_backend/internals/features/school/classes/class_groups/model"
	classService "raportku_backend/internals/features/school/classes/class_groups/service"
	studentModel "raportku_backend/internals/features/school/students/model"
	helper "raportku_backend/internals/helpers"
	"raportku_backend/internals/helpers/apperrors"
)

type ClassGroupController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassGroupController(db *gorm.DB, v *validator.Validate) *ClassGroupController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &ClassGroupController{DB: db, Validator: v}
}

/* ============================================
   CREATE
   POST /class-groups
============================================ */

func (ctl *ClassGroupController) Create(c *fiber.Ctx) error {
	var p dto.ClassGroupCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	var term termModel.AcademicTermModel
	err := ctl.DB.WithContext(c.UserContext()).First(&term, "academic_term_id = ?", p.ClassGroupTermID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromAppError(c, apperrors.NewValidationError(errors.New("term tidak ditemukan"),
			apperrors.FieldError{Field: "class_group_term_id", Error: "not_found"}))
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa term")
	}

	ent := p.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&ent).Error; err != nil {
		return helper.FromAppError(c, apperrors.FromDB(err))
	}
	return helper.JsonCreated(c, "Rombel berhasil dibuat", dto.FromModel(ent))
}

/* ============================================
   LIST per term
   GET /class-groups?term_id=
============================================ */

func (ctl *ClassGroupController) List(c *fiber.Ctx) error {
	termID, err := helper.RequireUUIDQuery(c, "term_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var rows []model.ClassGroupModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_group_term_id = ?", termID).
		Order("class_group_grade_level ASC, class_group_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rombel")
	}
	out := make([]dto.ClassGroupResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r))
	}
	return helper.JsonList(c, "ok", out, nil)
}

/* ============================================
   ENROLL (massal, idempotent)
   POST /class-groups/:id/enrollments
============================================ */

func (ctl *ClassGroupController) Enroll(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var p dto.EnrollDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	var inserted int64
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		cg, err := classService.FindClassGroup(c.UserContext(), tx, id)
		if err != nil {
			return err
		}
		if err := ensureStudentsExist(tx, p.StudentIDs); err != nil {
			return err
		}
		inserted, err = classService.Enroll(c.UserContext(), tx, cg, p.StudentIDs)
		return err
	})
	if err != nil {
		return helper.FromAppError(c, apperrors.WrapTx("daftarkan siswa", err))
	}
	return helper.JsonCreated(c, fmt.Sprintf("%d siswa didaftarkan", inserted), fiber.Map{
		"class_group_id": id,
		"inserted":       inserted,
		"skipped":        int64(len(p.StudentIDs)) - inserted,
	})
}

func ensureStudentsExist(tx *gorm.DB, ids []uuid.UUID) error {
	var found []uuid.UUID
	if err := tx.Model(&studentModel.StudentModel{}).
		Where("student_id IN ?", ids).
		Pluck("student_id", &found).Error; err != nil {
		return err
	}
	have := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var fields []apperrors.FieldError
	for i, id := range ids {
		if !have[id] {
			fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("student_ids[%d]", i), Error: "not_found"})
		}
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(errors.New("siswa tidak ditemukan"), fields...)
	}
	return nil
}

/* ============================================
   ROSTER
   GET /class-groups/:id/roster
============================================ */

func (ctl *ClassGroupController) Roster(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	cg, err := classService.FindClassGroup(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var rows []dto.RosterItem
	if err := ctl.DB.WithContext(c.UserContext()).Raw(`
		SELECT e.class_enrollment_id, s.student_id, s.student_nis, s.student_name
		FROM class_enrollments e
		JOIN students s ON s.student_id = e.class_enrollment_student_id AND s.student_deleted_at IS NULL
		WHERE e.class_enrollment_class_group_id = ? AND e.class_enrollment_term_id = ?
		ORDER BY s.student_name ASC
	`, cg.ClassGroupID, cg.ClassGroupTermID).Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster")
	}
	return helper.JsonList(c, "ok", rows, nil)
}
