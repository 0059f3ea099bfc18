// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/features/school/attendance/dto"
	"raportku_backend/internals/features/school/attendance/service"
	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

type AttendanceController struct {
	Svc       *service.AttendanceService
	Validator *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService, v *validator.Validate) *AttendanceController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AttendanceController{Svc: svc, Validator: v}
}

/* ============================================
   SESI (roster di-seed "unmarked")
   POST /attendance-sessions
============================================ */

func (ctl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	var p dto.CreateSessionRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}
	out, err := ctl.Svc.CreateSession(c.UserContext(), p.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Sesi absensi siap", dto.FromSession(*out))
}

/* ============================================
   RECORDS
   GET /attendance-sessions/:id/records
   PUT /attendance-sessions/:id/records
============================================ */

func (ctl *AttendanceController) ListRecords(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	out, err := ctl.Svc.ListRecords(c.UserContext(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromSession(*out))
}

func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var p dto.MarkRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}
	rows, err := ctl.Svc.Mark(c.UserContext(), id, p.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonUpdated(c, "Absensi disimpan", dto.FromRecords(rows))
}

/* ============================================
   REKAP per siswa per term
   GET /students/:student_id/attendance-summary?term_id=
============================================ */

func (ctl *AttendanceController) StudentSummary(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if !caller.CanViewStudent(studentID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Tidak berhak melihat absensi siswa ini")
	}
	termID, err := helper.ParseUUIDQuery(c, "term_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	out, err := ctl.Svc.StudentTermSummary(c.UserContext(), studentID, termID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
