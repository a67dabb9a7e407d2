package handlerUtil

import (
	"CafeAnalyzer/internal/api/analysis"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/response"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func TestHandleMapsErrorKinds(t *testing.T) {
	serverErr := &cafeapi.Error{Kind: cafeapi.ErrServerError, Status: 400, Message: "No file provided"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"no media", capture.ErrNoMediaSelected, http.StatusBadRequest, "NO_MEDIA_SELECTED", "no media selected"},
		{"camera denied wrapped", response.Wrap(capture.ErrCameraAccessDenied, errors.New("device busy")), http.StatusForbidden, "CAMERA_ACCESS_DENIED", ""},
		{"busy", analysis.ErrAnalysisInProgress, http.StatusConflict, "ANALYSIS_IN_PROGRESS", ""},
		{"backend message surfaced", serverErr, http.StatusBadGateway, "SERVER_ERROR", "No file provided"},
		{"unreachable", fmt.Errorf("analyze: %w", cafeapi.ErrNetworkUnreachable), http.StatusBadGateway, "NETWORK_UNREACHABLE", ""},
		{"generic response error", response.NewError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "", "short and stout"},
		{"unexpected", errors.New("nil pointer"), http.StatusInternalServerError, "", "An unexpected error occurred"},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return New(logger).Handle(c, "req-1", tt.err, c.Path(), "test")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body ErrorResponse
			if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if tt.wantError != "" && body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return New(logger).HandleValidationError(c, "req-1", errors.New("period too long"), c.Path())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
