// file: internals/features/school/academics/subjects/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectCtl "raportku_backend/internals/features/school/academics/subjects/controller"
)

// Base: /api/a
func SubjectAdminRoutes(admin fiber.Router, db *gorm.DB, defaultKKM float64) {
	ctl := subjectCtl.NewSubjectController(db, nil, defaultKKM)

	r := admin.Group("/subjects")
	r.Post("/", ctl.Create)
	r.Get("/", ctl.List)
	r.Put("/:id/kkm", ctl.UpsertKKM)

	admin.Get("/subject-kkms", ctl.ListKKM)
}
