// file: internals/features/school/classes/teaching_assignments/controller/teaching_assignments_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectModel "raportku_backend/internals/features/school/academics/subjects/model"
	classService "raportku_backend/internals/features/school/classes/class_groups/service"
	"raportku_backend/internals/features/school/classes/teaching_assignments/dto"
	"raportku_backend/internals/features/school/classes/teaching_assignments/model"
	helper "raportku_backend/internals/helpers"
	"raportku_backend/internals/helpers/apperrors"
)

type TeachingAssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTeachingAssignmentController(db *gorm.DB, v *validator.Validate) *TeachingAssignmentController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &TeachingAssignmentController{DB: db, Validator: v}
}

/* ============================================
   CREATE
   POST /teaching-assignments
============================================ */

func (ctl *TeachingAssignmentController) Create(c *fiber.Ctx) error {
	var p dto.TeachingAssignmentCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}
	ctx := c.UserContext()

	cg, err := classService.FindClassGroup(ctx, ctl.DB, p.ClassGroupID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var sub subjectModel.SubjectModel
	err = ctl.DB.WithContext(ctx).First(&sub, "subject_id = ?", p.SubjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromAppError(c, apperrors.NewValidationError(errors.New("mapel tidak ditemukan"),
			apperrors.FieldError{Field: "subject_id", Error: "not_found"}))
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa mapel")
	}

	ent := model.TeachingAssignmentModel{
		TeachingAssignmentTermID:       cg.ClassGroupTermID,
		TeachingAssignmentClassGroupID: cg.ClassGroupID,
		TeachingAssignmentSubjectID:    sub.SubjectID,
		TeachingAssignmentTeacherID:    p.TeacherID,
	}
	if err := ctl.DB.WithContext(ctx).Create(&ent).Error; err != nil {
		return helper.FromAppError(c, apperrors.FromDB(err))
	}
	out := dto.FromModel(ent)
	out.SubjectCode, out.SubjectName = sub.SubjectCode, sub.SubjectName
	return helper.JsonCreated(c, "Penugasan mengajar dibuat", out)
}

/* ============================================
   LIST per rombel
   GET /teaching-assignments?class_group_id=
============================================ */

func (ctl *TeachingAssignmentController) List(c *fiber.Ctx) error {
	classGroupID, err := helper.RequireUUIDQuery(c, "class_group_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var rows []dto.TeachingAssignmentResponse
	if err := ctl.DB.WithContext(c.UserContext()).Raw(`
		SELECT ta.teaching_assignment_id, ta.teaching_assignment_term_id AS term_id,
		       ta.teaching_assignment_class_group_id AS class_group_id,
		       ta.teaching_assignment_subject_id AS subject_id,
		       s.subject_code, s.subject_name,
		       ta.teaching_assignment_teacher_id AS teacher_id
		FROM teaching_assignments ta
		JOIN subjects s ON s.subject_id = ta.teaching_assignment_subject_id
		WHERE ta.teaching_assignment_class_group_id = ?
		ORDER BY s.subject_code ASC
	`, classGroupID).Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penugasan mengajar")
	}
	return helper.JsonList(c, "ok", rows, nil)
}
