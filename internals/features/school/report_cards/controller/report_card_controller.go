// file: internals/features/school/report_cards/controller/report_card_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"raportku_backend/internals/features/school/report_cards/dto"
	"raportku_backend/internals/features/school/report_cards/service"
	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type ReportCardController struct {
	Svc       *service.Generator
	Validator *validator.Validate
}

func NewReportCardController(svc *service.Generator, v *validator.Validate) *ReportCardController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &ReportCardController{Svc: svc, Validator: v}
}

// term_id boleh dari query atau body; query menang.
func (ctl *ReportCardController) termFromRequest(c *fiber.Ctx) (*uuid.UUID, error) {
	tid, err := helper.ParseUUIDQuery(c, "term_id")
	if err != nil || tid != nil {
		return tid, err
	}
	if len(c.Body()) == 0 {
		return nil, nil
	}
	var p dto.GenerateReportCardRequest
	if err := c.BodyParser(&p); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	return p.TermID, nil
}

/* ============================================
   GENERATE (satu rombel)
   POST /report-cards/class-groups/:class_group_id/generate
============================================ */

func (ctl *ReportCardController) GenerateForClassGroup(c *fiber.Ctx) error {
	classGroupID, err := helper.ParseUUIDParam(c, "class_group_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	termID, err := ctl.termFromRequest(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	res, err := ctl.Svc.GenerateForClassGroup(c.UserContext(), classGroupID, termID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	log.Printf("[INFO] generate rapor rombel=%s term=%s oleh=%v", classGroupID, res.TermID, c.Locals(helperAuth.LocUserID))

	return helper.JsonCreated(c, "Rapor berhasil dibuat", fiber.Map{
		"class_group_id": res.ClassGroupID,
		"term_id":        res.TermID,
		"total_students": res.TotalStudents,
		"report_cards":   dto.FromModels(res.Cards),
	})
}

/* ============================================
   GENERATE (satu siswa)
   POST /report-cards/enrollments/:enrollment_id/generate
============================================ */

func (ctl *ReportCardController) GenerateForEnrollment(c *fiber.Ctx) error {
	enrollmentID, err := helper.ParseUUIDParam(c, "enrollment_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	termID, err := ctl.termFromRequest(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	card, err := ctl.Svc.GenerateForEnrollment(c.UserContext(), enrollmentID, termID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Rapor berhasil dibuat", dto.FromModel(*card))
}

/* ============================================
   LOCK / UNLOCK
   POST /report-cards/:id/lock
   POST /report-cards/:id/unlock
============================================ */

func (ctl *ReportCardController) Lock(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	card, err := ctl.Svc.Lock(c.UserContext(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonUpdated(c, "Rapor dikunci", dto.FromModel(*card))
}

func (ctl *ReportCardController) Unlock(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	card, err := ctl.Svc.Unlock(c.UserContext(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonUpdated(c, "Kunci rapor dibuka", dto.FromModel(*card))
}

/* ============================================
   CATATAN WALI KELAS
   PATCH /report-cards/:id/homeroom-note
============================================ */

func (ctl *ReportCardController) UpdateHomeroomNote(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var p dto.HomeroomNoteRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}
	p.Normalize()

	card, err := ctl.Svc.UpdateHomeroomNote(c.UserContext(), id, p.ReportCardHomeroomNote)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonUpdated(c, "Catatan wali kelas disimpan", dto.FromModel(*card))
}

/* ============================================
   GET detail (data untuk tampilan cetak)
   GET /report-cards/:id
============================================ */

func (ctl *ReportCardController) GetByID(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}

	card, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if !caller.CanViewStudent(card.ReportCardStudentID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Tidak berhak melihat rapor siswa ini")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*card))
}

/* ============================================
   LIST per rombel (urut peringkat)
   GET /report-cards?class_group_id=&term_id=
============================================ */

func (ctl *ReportCardController) List(c *fiber.Ctx) error {
	classGroupID, err := helper.RequireUUIDQuery(c, "class_group_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	termID, err := helper.ParseUUIDQuery(c, "term_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}

	rows, err := ctl.Svc.ListByClassGroup(c.UserContext(), classGroupID, termID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}
