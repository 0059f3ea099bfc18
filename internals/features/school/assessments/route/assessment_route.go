// file: internals/features/school/assessments/route/assessment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/constants"
	assessmentCtl "raportku_backend/internals/features/school/assessments/controller"
	"raportku_backend/internals/features/school/assessments/service"
	authMiddleware "raportku_backend/internals/middlewares/auth"
)

// Base: /api/u/assessments (guru & admin)
func AssessmentRoutes(api fiber.Router, svc *service.ScoreService) {
	ctl := assessmentCtl.NewAssessmentController(svc, nil)
	r := api.Group("/assessments",
		authMiddleware.RequireCapability(constants.CapEnterScores, "mengelola nilai"),
	)

	r.Post("/", ctl.Create)
	r.Get("/", ctl.List)
	r.Put("/:id/scores", ctl.SaveScores)
	r.Get("/:id/scores", ctl.ListScores)
}
