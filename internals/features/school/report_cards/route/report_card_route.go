// file: internals/features/school/report_cards/route/report_card_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/constants"
	reportCtl "raportku_backend/internals/features/school/report_cards/controller"
	"raportku_backend/internals/features/school/report_cards/service"
	"raportku_backend/internals/middlewares"
	authMiddleware "raportku_backend/internals/middlewares/auth"
)

// ================================
// Staff routes (guru / admin)
// Base: /api/u/report-cards
// ================================
func ReportCardStaffRoutes(api fiber.Router, gen *service.Generator) {
	ctl := reportCtl.NewReportCardController(gen, nil)
	r := api.Group("/report-cards")

	// satu limiter untuk kedua jalur generate: keduanya menghitung seluruh rombel
	canGenerate := authMiddleware.RequireCapability(constants.CapGenerateReportCards, "membuat rapor")
	limitGenerate := middlewares.GenerateRateLimiter()
	r.Post("/class-groups/:class_group_id/generate", canGenerate, limitGenerate, ctl.GenerateForClassGroup)
	r.Post("/enrollments/:enrollment_id/generate", canGenerate, limitGenerate, ctl.GenerateForEnrollment)

	canLock := authMiddleware.RequireCapability(constants.CapLockReportCards, "mengunci rapor")
	r.Post("/:id/lock", canLock, ctl.Lock)
	r.Post("/:id/unlock", canLock, ctl.Unlock)

	r.Patch("/:id/homeroom-note",
		authMiddleware.RequireCapability(constants.CapEditHomeroomNote, "mengisi catatan wali kelas"),
		ctl.UpdateHomeroomNote)

	r.Get("/",
		authMiddleware.RequireCapability(constants.CapViewAllReportCards, "melihat rapor satu rombel"),
		ctl.List)
}

// ================================
// User routes (read-only, termasuk wali murid / siswa)
// Base: /api/u/report-cards/:id
// ================================
func ReportCardUserRoutes(api fiber.Router, gen *service.Generator) {
	ctl := reportCtl.NewReportCardController(gen, nil)

	api.Get("/report-cards/:id",
		authMiddleware.RequireCapability(constants.CapViewReportCards, "melihat rapor"),
		ctl.GetByID)
}
