// file: internals/features/school/academics/academic_terms/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicTermCtl "raportku_backend/internals/features/school/academics/academic_terms/controller"
)

// Base: /api/a/academic-terms (guard master data dipasang di group /api/a)
func AcademicTermsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	termCtl := academicTermCtl.NewAcademicTermController(db, nil)

	r := admin.Group("/academic-terms")
	r.Post("/", termCtl.Create)
	r.Post("/:id/activate", termCtl.Activate)
}
