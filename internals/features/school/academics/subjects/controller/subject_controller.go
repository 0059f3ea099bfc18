// file: internals/features/school/academics/subjects/controller/subject_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raportku_backend/internals/features/school/academics/subjects/dto"
	"raportku_backend/internals/features/school/academics/subjects/model"
	helper "raportku_backend/internals/helpers"
	"raportku_backend/internals/helpers/apperrors"
)

type SubjectController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	DefaultKKM float64
}

func NewSubjectController(db *gorm.DB, v *validator.Validate, defaultKKM float64) *SubjectController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &SubjectController{DB: db, Validator: v, DefaultKKM: defaultKKM}
}

/* ============================================
   SUBJECT
   POST /subjects
   GET  /subjects
============================================ */

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var p dto.SubjectCreateDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}
	ent := p.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&ent).Error; err != nil {
		return helper.FromAppError(c, apperrors.FromDB(err))
	}
	return helper.JsonCreated(c, "Mapel berhasil dibuat", dto.FromModel(ent))
}

func (ctl *SubjectController) List(c *fiber.Ctx) error {
	var rows []model.SubjectModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("subject_code ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil mapel")
	}
	out := make([]dto.SubjectResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r))
	}
	return helper.JsonList(c, "ok", out, nil)
}

/* ============================================
   KKM
   PUT /subjects/:id/kkm
   GET /subject-kkms?term_id=
============================================ */

func (ctl *SubjectController) UpsertKKM(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var p dto.KKMUpsertDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	var sub model.SubjectModel
	err = ctl.DB.WithContext(c.UserContext()).First(&sub, "subject_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromAppError(c, apperrors.ErrNotFound)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil mapel")
	}

	row := model.SubjectKKMModel{
		SubjectKKMSubjectID: id,
		SubjectKKMTermID:    p.TermID,
		SubjectKKMValue:     *p.Value,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "subject_kkm_subject_id"},
			{Name: "subject_kkm_term_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"subject_kkm_value", "subject_kkm_updated_at"}),
	}).Create(&row).Error; err != nil {
		return helper.FromAppError(c, apperrors.FromDB(err))
	}
	return helper.JsonUpdated(c, "KKM disimpan", dto.KKMResponse{
		SubjectID:   id,
		SubjectCode: sub.SubjectCode,
		TermID:      p.TermID,
		Value:       row.SubjectKKMValue,
	})
}

// ListKKM: semua mapel, KKM term tsb atau default.
func (ctl *SubjectController) ListKKM(c *fiber.Ctx) error {
	termID, err := helper.RequireUUIDQuery(c, "term_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var rows []struct {
		SubjectID   uuid.UUID
		SubjectCode string
		Value       *float64
	}
	if err := ctl.DB.WithContext(c.UserContext()).Raw(`
		SELECT s.subject_id, s.subject_code, k.subject_kkm_value AS value
		FROM subjects s
		LEFT JOIN subject_kkms k ON k.subject_kkm_subject_id = s.subject_id AND k.subject_kkm_term_id = ?
		WHERE s.subject_deleted_at IS NULL
		ORDER BY s.subject_code ASC
	`, termID).Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil KKM")
	}

	out := make([]dto.KKMResponse, 0, len(rows))
	for _, r := range rows {
		item := dto.KKMResponse{SubjectID: r.SubjectID, SubjectCode: r.SubjectCode, TermID: termID, Value: ctl.DefaultKKM, IsDefault: true}
		if r.Value != nil {
			item.Value = *r.Value
			item.IsDefault = false
		}
		out = append(out, item)
	}
	return helper.JsonList(c, "ok", out, nil)
}
