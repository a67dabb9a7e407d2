package middleware

import (
	jwtPkg "CafeAnalyzer/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const OperatorKey = "operator"

type tokenMiddleware struct {
	secret string
}

func newTokenMiddleware(secret string) *tokenMiddleware {
	return &tokenMiddleware{secret: secret}
}

// NewTokenMiddleware guards operator routes when a JWT secret is configured.
// The token subject is stored under OperatorKey.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if m.token.secret == "" {
		return ctx.Next()
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, m.token.secret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	operator, err := jwtPkg.Subject(token)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	ctx.Locals(OperatorKey, operator)
	return ctx.Next()
}
