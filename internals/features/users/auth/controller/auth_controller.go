// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

type TokenRevoker interface {
	Revoke(ctx context.Context, raw string, expiresAt time.Time) error
}

type AuthController struct {
	Tokens TokenRevoker
}

func NewAuthController(tokens TokenRevoker) *AuthController {
	return &AuthController{Tokens: tokens}
}

/* ============================================
   LOGOUT
   POST /auth/logout
============================================ */

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	// CSRF wajib jika auth via cookie (tanpa Bearer)
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	usesCookieAuth := strings.TrimSpace(c.Cookies("access_token")) != "" &&
		!strings.HasPrefix(strings.ToLower(authHeader), "bearer ")
	if usesCookieAuth {
		if err := helper.CheckCSRFCookieHeader(c); err != nil {
			return helper.FromAppError(c, err)
		}
	}

	raw := helper.GetRawAccessToken(c)
	exp, _ := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if exp.IsZero() {
		exp = time.Now().Add(24 * time.Hour)
	}
	if err := ac.Tokens.Revoke(c.UserContext(), raw, exp); err != nil {
		log.Printf("[ERROR] Gagal blacklist token user=%v: %v", c.Locals(helperAuth.LocUserID), err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout, coba lagi")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Berhasil logout", nil)
}
