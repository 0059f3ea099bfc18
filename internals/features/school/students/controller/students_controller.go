// file: internals/features/school/students/controller/students_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"raportku_backend/internals/features/school/students/dto"
	"raportku_backend/internals/features/school/students/model"
	helper "raportku_backend/internals/helpers"
	"raportku_backend/internals/helpers/apperrors"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &StudentController{DB: db, Validator: v}
}

/* ============================================
   CREATE
   POST /students
============================================ */

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var p dto.StudentCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := helper.Validate(ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	ent := p.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&ent).Error; err != nil {
		// NIS duplikat → 422 (uq_students_nis)
		return helper.FromAppError(c, apperrors.FromDB(err))
	}
	return helper.JsonCreated(c, "Siswa berhasil dibuat", dto.FromModel(ent))
}

/* ============================================
   LIST (cari nama / NIS, paginated)
   GET /students?q=&page=&per_page=
============================================ */

func (ctl *StudentController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("student_name ILIKE ? OR student_nis ILIKE ?", like, like)
	}
	if c.Query("active") != "" {
		tx = tx.Where("student_is_active = ?", c.QueryBool("active"))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}
	var rows []model.StudentModel
	if err := tx.Order("student_name ASC, student_nis ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), pg.Paginate(total, len(rows)))
}
