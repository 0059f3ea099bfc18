// file: internals/features/school/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/constants"
	attendanceCtl "raportku_backend/internals/features/school/attendance/controller"
	"raportku_backend/internals/features/school/attendance/service"
	authMiddleware "raportku_backend/internals/middlewares/auth"
)

// Base: /api/u
func AttendanceRoutes(api fiber.Router, svc *service.AttendanceService) {
	ctl := attendanceCtl.NewAttendanceController(svc, nil)

	sessions := api.Group("/attendance-sessions",
		authMiddleware.RequireCapability(constants.CapEnterAttendance, "mengisi absensi"),
	)
	sessions.Post("/", ctl.CreateSession)
	sessions.Get("/:id/records", ctl.ListRecords)
	sessions.Put("/:id/records", ctl.Mark)

	api.Get("/students/:student_id/attendance-summary",
		authMiddleware.RequireCapability(constants.CapViewAttendance, "melihat rekap absensi"),
		ctl.StudentSummary)
}
