// file: internals/features/school/students/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtl "raportku_backend/internals/features/school/students/controller"
)

// Base: /api/a/students
func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := studentCtl.NewStudentController(db, nil)

	r := admin.Group("/students")
	r.Post("/", ctl.Create)
	r.Get("/", ctl.List)
}
