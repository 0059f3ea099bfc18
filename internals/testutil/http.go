package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

// NewApp: fiber app dengan codec & error handler yang sama seperti main.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromAppError(c, err)
		},
	})
}

// AsCaller mengisi locals seperti AuthJWT tanpa token.
func AsCaller(role string, userID uuid.UUID, studentIDs ...uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, userID.String())
		c.Locals(helperAuth.LocUserRole, role)
		c.Locals(helperAuth.LocStudentIDs, studentIDs)
		return c.Next()
	}
}

// Envelope: bentuk response helper.Json*.
type Envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

// Decode membaca field data ke dst.
func (e Envelope) Decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(e.Data, dst))
}

// Do mengirim request JSON dan mengembalikan status + envelope.
func Do(t *testing.T, app *fiber.App, method, path string, body any) (int, Envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env Envelope
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}
