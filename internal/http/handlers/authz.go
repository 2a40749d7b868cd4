package handlers

import (
	"strings"

	"closetloop/internal/domain"
	applog "closetloop/internal/log"
	"closetloop/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return ""
}

// RequireUser resolves the bearer token to a fresh user record and
// stores it in Locals. Services receive the resolved caller; nothing
// downstream re-reads credentials.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(tok)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.token", nil)
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(tok)
		if err != nil || u == nil || !u.IsAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

// caller returns the user RequireUser/RequireAdmin stored for this request.
func caller(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
