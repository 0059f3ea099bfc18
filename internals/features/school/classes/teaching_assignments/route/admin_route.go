// file: internals/features/school/classes/teaching_assignments/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taCtl "raportku_backend/internals/features/school/classes/teaching_assignments/controller"
)

// Base: /api/a/teaching-assignments
func TeachingAssignmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := taCtl.NewTeachingAssignmentController(db, nil)

	r := admin.Group("/teaching-assignments")
	r.Post("/", ctl.Create)
	r.Get("/", ctl.List)
}
