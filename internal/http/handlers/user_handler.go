package handlers

import (
	"closetloop/internal/repos"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *repos.UserRepo
}

// GET /api/users/:id
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	u, err := h.Users.ByID(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, u)
}
