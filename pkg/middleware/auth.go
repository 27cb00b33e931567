// Package middleware provides the fiber middleware shared by protected
// route groups.
package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/amirasaad/wallet/pkg/domain/auth"
	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/amirasaad/wallet/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const (
	usernameKey = "username"
	tokenKey    = "token"
)

// TokenValidator resolves a bearer token to its username.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>"
// header. It returns "" when the header is missing or malformed.
func BearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Protected rejects requests without a live session and stores the
// session's username and token in the request locals.
func Protected(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return common.ProblemDetailsJSON(c, "Unauthorized", auth.ErrUnauthenticated, "Missing or malformed bearer token")
		}
		username, err := v.Validate(c.UserContext(), token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, "Session is invalid or expired")
		}
		c.Locals(usernameKey, username)
		c.Locals(tokenKey, token)
		return c.Next()
	}
}

// CurrentUser returns the username stored by Protected.
func CurrentUser(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(usernameKey).(string)
	return username, ok && username != ""
}

// CurrentToken returns the bearer token stored by Protected.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}

// Metrics records the method, matched route, status and latency of every
// request.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = common.ErrorToStatusCode(err)
		}
		m.Request(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
