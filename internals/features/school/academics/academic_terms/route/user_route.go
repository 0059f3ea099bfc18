// file: internals/features/school/academics/academic_terms/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicTermCtl "raportku_backend/internals/features/school/academics/academic_terms/controller"
)

// ================================
// User routes (read-only, semua role)
// Base: /api/u/academic-terms
// ================================
func AcademicTermsUserRoutes(user fiber.Router, db *gorm.DB) {
	termCtl := academicTermCtl.NewAcademicTermController(db, nil)

	r := user.Group("/academic-terms")
	r.Get("/", termCtl.List)
	r.Get("/active", termCtl.GetActive)
}
