package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raportku_backend/internals/constants"
	helperAuth "raportku_backend/internals/helpers/auth"
	authMiddleware "raportku_backend/internals/middlewares/auth"
	"raportku_backend/internals/testutil"
)

const secret = "rahasia-uji"

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return tok
}

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Use(authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: secret, AllowCookieFallback: true}))
	app.Get("/me", func(c *fiber.Ctx) error {
		caller, err := helperAuth.GetCaller(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": caller.UserID, "role": caller.Role, "students": caller.StudentIDs})
	})
	app.Post("/lock",
		authMiddleware.RequireCapability(constants.CapLockReportCards, "mengunci rapor"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	app := newApp()
	userID := uuid.New()
	child := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	valid := sign(t, secret, jwt.MapClaims{
		"id": userID.String(), "role": "Parent", "exp": exp,
		"student_ids": []string{child.String(), "bukan-uuid"},
	})

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"tanpa token", "", fiber.StatusUnauthorized},
		{"token valid", valid, fiber.StatusOK},
		{"secret salah", sign(t, "lain", jwt.MapClaims{"id": userID.String(), "role": "admin", "exp": exp}), fiber.StatusUnauthorized},
		{"kedaluwarsa", sign(t, secret, jwt.MapClaims{"id": userID.String(), "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}), fiber.StatusUnauthorized},
		{"tanpa exp", sign(t, secret, jwt.MapClaims{"id": userID.String(), "role": "admin"}), fiber.StatusUnauthorized},
		{"tanpa id", sign(t, secret, jwt.MapClaims{"role": "admin", "exp": exp}), fiber.StatusUnauthorized},
		{"role asing", sign(t, secret, jwt.MapClaims{"id": userID.String(), "role": "dkm", "exp": exp}), fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, call(t, app, fiber.MethodGet, "/me", tc.token))
		})
	}
}

func TestAuthJWT_FillsCaller(t *testing.T) {
	app := newApp()
	userID := uuid.New()
	child := uuid.New()
	tok := sign(t, secret, jwt.MapClaims{
		"sub": userID.String(), "role": "parent", "exp": time.Now().Add(time.Hour).Unix(),
		"student_ids": []string{child.String(), "bukan-uuid"},
	})

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got struct {
		ID       uuid.UUID   `json:"id"`
		Role     string      `json:"role"`
		Students []uuid.UUID `json:"students"`
	}
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, constants.RoleParent, got.Role)
	assert.Equal(t, []uuid.UUID{child}, got.Students)
}

func TestRequireCapability(t *testing.T) {
	app := newApp()
	exp := time.Now().Add(time.Hour).Unix()
	for role, want := range map[string]int{
		constants.RoleAdmin:   fiber.StatusNoContent,
		constants.RoleTeacher: fiber.StatusForbidden,
		constants.RoleParent:  fiber.StatusForbidden,
	} {
		tok := sign(t, secret, jwt.MapClaims{"id": uuid.NewString(), "role": role, "exp": exp})
		assert.Equal(t, want, call(t, app, fiber.MethodPost, "/lock", tok), role)
	}
}
