package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan global (recover paling luar).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
