package jwtPkg

import (
	"github.com/gofiber/fiber/v2"
	"net/http/httptest"
	"testing"
	"time"
)

func TestVerifyTokenHeader(t *testing.T) {
	const secret = "test-secret"
	valid, _, err := Sign(map[string]interface{}{"sub": "operator-1"}, time.Hour, secret)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	expired, _, _ := Sign(map[string]interface{}{"sub": "operator-1"}, -time.Hour, secret)
	foreign, _, _ := Sign(map[string]interface{}{"sub": "operator-1"}, time.Hour, "other-secret")

	tests := []struct {
		name    string
		header  string
		wantSub string
		wantErr bool
	}{
		{"valid", "Bearer " + valid, "operator-1", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic " + valid, "", true},
		{"expired", "Bearer " + expired, "", true},
		{"wrong secret", "Bearer " + foreign, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var gotSub string
			var gotErr error
			app.Get("/", func(c *fiber.Ctx) error {
				token, err := VerifyTokenHeader(c, secret)
				if err != nil {
					gotErr = err
					return c.SendStatus(fiber.StatusUnauthorized)
				}
				gotSub, gotErr = Subject(token)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if _, err := app.Test(req); err != nil {
				t.Fatalf("app.Test: %v", err)
			}

			if (gotErr != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", gotErr, tt.wantErr)
			}
			if gotSub != tt.wantSub {
				t.Errorf("subject = %q, want %q", gotSub, tt.wantSub)
			}
		})
	}
}

func TestSignRequiresSecret(t *testing.T) {
	if _, _, err := Sign(nil, time.Minute, ""); err == nil {
		t.Fatal("Sign() with empty secret succeeded")
	}
}
