// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	authController "raportku_backend/internals/features/users/auth/controller"
)

// Base: /api/u (token sudah diverifikasi AuthJWT)
func AuthRoutes(user fiber.Router, tokens authController.TokenRevoker) {
	ctl := authController.NewAuthController(tokens)
	user.Post("/auth/logout", ctl.Logout)
}
