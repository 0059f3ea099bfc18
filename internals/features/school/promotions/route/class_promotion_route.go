// file: internals/features/school/promotions/route/class_promotion_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/constants"
	promoCtl "raportku_backend/internals/features/school/promotions/controller"
	"raportku_backend/internals/features/school/promotions/service"
	authMiddleware "raportku_backend/internals/middlewares/auth"
)

// Base: /api/u/promotions
func ClassPromotionRoutes(api fiber.Router, svc *service.Processor) {
	ctl := promoCtl.NewClassPromotionController(svc, nil)
	r := api.Group("/promotions")

	r.Post("/", authMiddleware.RequireCapability(constants.CapDecidePromotions, "memutuskan kenaikan kelas"), ctl.Submit)
	r.Get("/", authMiddleware.RequireCapability(constants.CapViewPromotions, "melihat kenaikan kelas"), ctl.List)
}
