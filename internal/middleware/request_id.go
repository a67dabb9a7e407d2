package middleware

import (
	"CafeAnalyzer/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"regexp"
	"time"
)

const (
	RequestIDKey       = "X-Request-ID"
	maxRequestIDLength = 64
)

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// NewRequestIDMiddleware echoes a well-formed incoming X-Request-ID and issues
// a ULID for anything else, so ids are safe to log and to put in filenames.
func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New(0)

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if len(requestID) > maxRequestIDLength || !validRequestID.MatchString(requestID) {
			requestID, _ = ids.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
