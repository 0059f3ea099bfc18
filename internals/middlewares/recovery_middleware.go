package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"raportku_backend/internals/services/errlog"
)

// RecoveryMiddleware menangkap panic, lapor ke Rollbar, dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			errlog.Critical("panic "+c.Method()+" "+c.OriginalURL(), e, map[string]interface{}{
				"request_id": c.Locals("reqid"),
			})
		},
	})
}
