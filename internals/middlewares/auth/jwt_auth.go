// internals/middlewares/auth/jwt_auth.go
package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"raportku_backend/internals/constants"
	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

// RevocationChecker: sumber daftar token yang sudah logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, rawToken string) (bool, error)
}

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
	ExpirySkew          time.Duration
	Revocations         RevocationChecker // nil → tanpa cek blacklist
}

// AuthJWT memverifikasi token HS256 lalu mengisi locals: user_id, userRole, student_ids.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}
	if o.ExpirySkew == 0 {
		o.ExpirySkew = 30 * time.Second
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw, err := extractBearerToken(c, o.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Parse + verifikasi algoritma (exp dicek manual dengan skew)
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) exp
		exp, err := validateTokenExpiry(claims, o.ExpirySkew)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) blacklist (logout). Gagal query → tetap lanjut, dicatat saja.
		if o.Revocations != nil {
			revoked, err := o.Revocations.IsRevoked(c.UserContext(), raw)
			if err != nil {
				log.Println("[WARN] Gagal cek token blacklist:", err)
			} else if revoked {
				return fiber.NewError(fiber.StatusUnauthorized, "Sesi sudah keluar. Silakan login lagi.")
			}
		}

		// 5) user id + role
		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		role := strings.ToLower(strings.TrimSpace(strClaim(claims, "role")))
		if !constants.IsKnownRole(role) {
			return fiber.NewError(fiber.StatusForbidden, "Role tidak dikenal")
		}

		c.Locals(helperAuth.LocUserID, userID.String())
		c.Locals(helperAuth.LocUserRole, role)
		c.Locals(helperAuth.LocStudentIDs, readUUIDSlice(claims["student_ids"]))
		c.Locals(helperAuth.LocTokenExp, exp)
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}
