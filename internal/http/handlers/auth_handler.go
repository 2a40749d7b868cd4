package handlers

import (
	applog "closetloop/internal/log"
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	email, okEmail := validate.Email(in.Email)
	if !okEmail || in.Password == "" {
		applog.Security(c, "login.validation.fail", nil)
		return fail(c, fiber.StatusBadRequest, "invalid email or password")
	}

	token, u, err := h.Auth.Login(email, in.Password)
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"email": email})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	applog.Audit(c, "login.ok", map[string]any{"user_id": u.ID})
	return ok(c, fiber.Map{"token": token, "user": u})
}
