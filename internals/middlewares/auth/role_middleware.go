package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/constants"
	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

// RequireCapability: tolak request bila role pemanggil tidak punya capability.
func RequireCapability(capability constants.Capability, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := helperAuth.GetCaller(c)
		if err != nil {
			return helper.FromAppError(c, err)
		}
		if !constants.Can(caller.Role, capability) {
			log.Printf("[DEBUG] role %s ditolak untuk %s", caller.Role, capability)
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorCapability(caller.Role, feature))
		}
		return c.Next()
	}
}
