package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func decode(t *testing.T, body io.Reader) Response[json.RawMessage] {
	t.Helper()
	var res Response[json.RawMessage]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func identityApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		id, username, err := CurrentUser(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", fiber.Map{"id": id.String(), "username": username}))
	})
	return app
}

func TestJwtMiddlewareAcceptsIssuedToken(t *testing.T) {
	id := uuid.New()
	token, err := IssueToken(testSecret, id, "alice", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := identityApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body Response[map[string]string]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.Data["id"])
	assert.Equal(t, "alice", body.Data["username"])
}

func TestJwtMiddlewareRejects(t *testing.T) {
	expired, _ := IssueToken(testSecret, uuid.New(), "alice", -time.Minute)
	foreign, _ := IssueToken("other-secret", uuid.New(), "alice", time.Hour)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"expired":        "Bearer " + expired,
		"wrong secret":   "Bearer " + foreign,
		"garbage":        "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := identityApp().Test(req)
			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)
			assert.False(t, decode(t, resp.Body).Success)
		})
	}
}

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(nil))
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return ValidateRequest(sampleRequest{Email: "nope"})
	})
	app.Get("/fiber", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no chat history found")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("database exploded")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "email must be a valid email", decode(t, resp.Body).Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "no chat history found", decode(t, resp.Body).Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "internal server error", decode(t, resp.Body).Message)
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func limitedApp(l RateLimiter) *fiber.App {
	app := fiber.New()
	app.Post("/api/chat", func(ctx *fiber.Ctx) error {
		ctx.Locals(LocalUserID, "u-1")
		return ctx.Next()
	}, RateLimitMiddleware(l, 5, time.Minute, nil), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestRateLimitMiddleware(t *testing.T) {
	deny := &stubLimiter{allowed: false}
	resp, err := limitedApp(deny).Test(httptest.NewRequest("POST", "/api/chat", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
	assert.Equal(t, []string{"ratelimit:u-1:/api/chat"}, deny.keys)

	allow := &stubLimiter{allowed: true}
	resp, err = limitedApp(allow).Test(httptest.NewRequest("POST", "/api/chat", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	broken := &stubLimiter{err: errors.New("redis down")}
	resp, err = limitedApp(broken).Test(httptest.NewRequest("POST", "/api/chat", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}
