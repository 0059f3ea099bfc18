package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authRoute "raportku_backend/internals/features/users/auth/route"
	authMiddleware "raportku_backend/internals/middlewares/auth"
	"raportku_backend/internals/testutil"
)

const secret = "rahasia-uji"

type memBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func (m *memBlacklist) Revoke(_ context.Context, raw string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[raw] = exp
	return nil
}

func (m *memBlacklist) IsRevoked(_ context.Context, raw string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.tokens[raw]
	return ok && exp.After(time.Now()), nil
}

func newApp(bl *memBlacklist) *fiber.App {
	app := testutil.NewApp()
	api := app.Group("/api/u", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              secret,
		AllowCookieFallback: true,
		Revocations:         bl,
	}))
	api.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	authRoute.AuthRoutes(api, bl)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, with func(*http.Request)) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	with(req)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": uuid.NewString(), "role": "teacher", "exp": exp.Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestLogout_RevokesBearerToken(t *testing.T) {
	bl := &memBlacklist{tokens: map[string]time.Time{}}
	app := newApp(bl)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signToken(t, exp)
	bearer := func(r *http.Request) { r.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok) }

	require.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodGet, "/api/u/ping", bearer))
	require.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodPost, "/api/u/auth/logout", bearer))

	require.Contains(t, bl.tokens, tok)
	assert.True(t, bl.tokens[tok].Equal(exp), "blacklist berlaku sampai exp token")

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, fiber.MethodGet, "/api/u/ping", bearer))

	other := signToken(t, exp)
	assert.Equal(t, fiber.StatusOK, do(t, app, fiber.MethodGet, "/api/u/ping", func(r *http.Request) {
		r.Header.Set(fiber.HeaderAuthorization, "Bearer "+other)
	}))
}

func TestLogout_CookieNeedsCSRF(t *testing.T) {
	bl := &memBlacklist{tokens: map[string]time.Time{}}
	app := newApp(bl)
	tok := signToken(t, time.Now().Add(time.Hour))

	status := do(t, app, fiber.MethodPost, "/api/u/auth/logout", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Empty(t, bl.tokens)

	status = do(t, app, fiber.MethodPost, "/api/u/auth/logout", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
		r.AddCookie(&http.Cookie{Name: "csrf_token", Value: "abc"})
		r.Header.Set("X-CSRF-Token", "abc")
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, bl.tokens, tok)
}
