// file: internals/features/school/academics/academic_terms/controller/academic_terms_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "raportku_backend/internals/features/school/academics/academic_terms/dto"
	model "raportku_backend/internals/features/school/academics/academic_terms/model"
	helper "raportku_backend/internals/helpers"
	"raportku_backend/internals/helpers/apperrors"
)

/* ============================================
   Controller
============================================ */

type AcademicTermController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAcademicTermController(db *gorm.DB, v *validator.Validate) *AcademicTermController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AcademicTermController{DB: db, Validator: v}
}

// deactivateOthers: hanya satu term aktif di seluruh sistem.
func deactivateOthers(tx *gorm.DB, keep uuid.UUID) error {
	return tx.Model(&model.AcademicTermModel{}).
		Where("academic_term_is_active = TRUE AND academic_term_id <> ?", keep).
		Update("academic_term_is_active", false).Error
}

/* ============================================
   CREATE (admin)
   POST /academic-terms
============================================ */

func (ctl *AcademicTermController) Create(c *fiber.Ctx) error {
	var p dto.AcademicTermCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := helper.Validate(ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	ent := p.ToModel()
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if ent.AcademicTermIsActive {
			// aktifkan setelah insert agar partial unique index tidak bentrok
			ent.AcademicTermIsActive = false
			if err := tx.Create(&ent).Error; err != nil {
				return apperrors.FromDB(err)
			}
			if err := deactivateOthers(tx, ent.AcademicTermID); err != nil {
				return err
			}
			ent.AcademicTermIsActive = true
			return tx.Model(&ent).Update("academic_term_is_active", true).Error
		}
		return apperrors.FromDB(tx.Create(&ent).Error)
	})
	if err != nil {
		return helper.FromAppError(c, apperrors.WrapTx("buat term", err))
	}
	log.Printf("[INFO] term dibuat: %s (%s) aktif=%v", ent.AcademicTermID, ent.Label(), ent.AcademicTermIsActive)
	return helper.JsonCreated(c, "Berhasil membuat term", dto.FromModel(ent))
}

/* ============================================
   SET ACTIVE (admin, eksklusif)
   POST /academic-terms/:id/activate
============================================ */

func (ctl *AcademicTermController) Activate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var ent model.AcademicTermModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ent, "academic_term_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if err := deactivateOthers(tx, id); err != nil {
			return err
		}
		ent.AcademicTermIsActive = true
		return tx.Model(&ent).Update("academic_term_is_active", true).Error
	})
	if err != nil {
		return helper.FromAppError(c, apperrors.WrapTx("aktifkan term", err))
	}
	log.Printf("[INFO] term aktif sekarang: %s (%s)", ent.AcademicTermID, ent.Label())
	return helper.JsonUpdated(c, "Term aktif diperbarui", dto.FromModel(ent))
}

/* ============================================
   LIST
   GET /academic-terms?year=&active=
============================================ */

func (ctl *AcademicTermController) List(c *fiber.Ctx) error {
	var q dto.AcademicTermFilterDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := helper.Validate(ctl.Validator, &q); err != nil {
		return helper.FromAppError(c, err)
	}

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.AcademicTermModel{})
	if q.Year != nil {
		tx = tx.Where("academic_term_academic_year = ?", *q.Year)
	}
	if q.Active != nil {
		tx = tx.Where("academic_term_is_active = ?", *q.Active)
	}

	var rows []model.AcademicTermModel
	if err := tx.Order("academic_term_start_date DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data term")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

/* ============================================
   ACTIVE
   GET /academic-terms/active
============================================ */

func (ctl *AcademicTermController) GetActive(c *fiber.Ctx) error {
	var ent model.AcademicTermModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("academic_term_is_active = TRUE").
		First(&ent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromAppError(c, apperrors.ErrNoActiveTerm)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil term aktif")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(ent))
}
