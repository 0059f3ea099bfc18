// file: internals/features/school/classes/class_groups/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classGroupCtl "raportku_backend/internals/features/school/classes/class_groups/controller"
)

// Base: /api/a/class-groups
func ClassGroupAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := classGroupCtl.NewClassGroupController(db, nil)

	r := admin.Group("/class-groups")
	r.Post("/", ctl.Create)
	r.Get("/", ctl.List)
	r.Post("/:id/enrollments", ctl.Enroll)
	r.Get("/:id/roster", ctl.Roster)
}
