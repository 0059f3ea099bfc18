// file: internals/features/school/assessments/controller/assessment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/features/school/assessments/dto"
	"raportku_backend/internals/features/school/assessments/service"
	helper "raportku_backend/internals/helpers"
)

type AssessmentController struct {
	Svc       *service.ScoreService
	Validator *validator.Validate
}

func NewAssessmentController(svc *service.ScoreService, v *validator.Validate) *AssessmentController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AssessmentController{Svc: svc, Validator: v}
}

/* ============================================
   CREATE
   POST /assessments
============================================ */

func (ctl *AssessmentController) Create(c *fiber.Ctx) error {
	var p dto.CreateAssessmentRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	p.Normalize()
	if err := helper.Validate(ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	m := p.ToModel()
	if err := ctl.Svc.CreateAssessment(c.UserContext(), &m); err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Penilaian berhasil dibuat", dto.FromModel(m))
}

/* ============================================
   LIST per penugasan mengajar
   GET /assessments?teaching_assignment_id=
============================================ */

func (ctl *AssessmentController) List(c *fiber.Ctx) error {
	taID, err := helper.RequireUUIDQuery(c, "teaching_assignment_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	rows, err := ctl.Svc.ListAssessments(c.UserContext(), taID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	out := make([]dto.AssessmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r))
	}
	return helper.JsonList(c, "ok", out, nil)
}

/* ============================================
   NILAI (massal, all-or-nothing)
   PUT /assessments/:id/scores
   GET /assessments/:id/scores
============================================ */

func (ctl *AssessmentController) SaveScores(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var p dto.BulkScoreRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	rows, err := ctl.Svc.SaveScores(c.UserContext(), id, p.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonUpdated(c, "Nilai disimpan", dto.FromScores(rows))
}

func (ctl *AssessmentController) ListScores(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	rows, err := ctl.Svc.ListScores(c.UserContext(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromScores(rows), nil)
}
