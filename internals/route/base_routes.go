package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/configs"
	database "raportku_backend/internals/databases"
)

func BaseRoutes(public fiber.Router) {
	public.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if database.DB == nil || database.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.AppEnv(),
		})
	})
}
