package middleware

import (
	jwtPkg "CafeAnalyzer/pkg/jwt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newApp(m Middleware, guarded bool) *fiber.App {
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware())

	handlers := []fiber.Handler{m.NewRateLimiter}
	if guarded {
		handlers = append(handlers, m.NewTokenMiddleware)
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		operator, _ := c.Locals(OperatorKey).(string)
		return c.JSON(fiber.Map{"request_id": m.GetRequestID(c), "operator": operator})
	})
	app.Get("/ping", handlers...)
	return app
}

func TestRequestIDIssuedAndEchoed(t *testing.T) {
	app := newApp(New(quietLogger(), Options{}), false)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if id := resp.Header.Get(RequestIDKey); len(id) != 26 {
		t.Errorf("generated request id = %q, want a ULID", id)
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDKey, "client-supplied")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if id := resp.Header.Get(RequestIDKey); id != "client-supplied" {
		t.Errorf("request id = %q, want the incoming one", id)
	}

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDKey, "bad id\twith spaces")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if id := resp.Header.Get(RequestIDKey); len(id) != 26 {
		t.Errorf("malformed request id kept as %q", id)
	}
}

func TestRateLimiter(t *testing.T) {
	app := newApp(New(quietLogger(), Options{RequestsPerSecond: 0.001, Burst: 2}), false)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		codes = append(codes, resp.StatusCode)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v", codes)
	}
}

func TestTokenMiddleware(t *testing.T) {
	const secret = "shell-secret"
	token, _, err := jwtPkg.Sign(map[string]interface{}{"sub": "barista"}, time.Hour, secret)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	t.Run("open without secret", func(t *testing.T) {
		app := newApp(New(quietLogger(), Options{}), true)
		resp, _ := app.Test(httptest.NewRequest("GET", "/ping", nil))
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})

	t.Run("rejects missing token", func(t *testing.T) {
		app := newApp(New(quietLogger(), Options{JWTSecret: secret}), true)
		resp, _ := app.Test(httptest.NewRequest("GET", "/ping", nil))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})

	t.Run("accepts valid token", func(t *testing.T) {
		app := newApp(New(quietLogger(), Options{JWTSecret: secret}), true)
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if want := `"operator":"barista"`; !strings.Contains(string(body), want) {
			t.Errorf("body %s missing %s", body, want)
		}
	})
}

func TestSanitizeRequestBody(t *testing.T) {
	got := sanitizeRequestBody([]byte(`{"period":"day","token":"abc"}`))
	if !strings.Contains(got, `"token":"[SECRET]"`) || !strings.Contains(got, `"period":"day"`) {
		t.Errorf("sanitized = %s", got)
	}
	if got := sanitizeRequestBody([]byte("plain")); got != "[non-JSON body]" {
		t.Errorf("non-JSON = %s", got)
	}
}
