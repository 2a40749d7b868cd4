package handlers

import (
	"time"

	applog "closetloop/internal/log"
	"closetloop/internal/repos"
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Products *services.ProductService
	Users    *repos.UserRepo
}

// DELETE /api/admin/remove-post/:id — permanently retires a listing.
func (h *AdminHandler) RemovePost(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Products.ForceRemove(id, caller(c)); err != nil {
		applog.Error(c, "admin.remove.fail", err, map[string]any{"product_id": id})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.remove", map[string]any{"product_id": id})
	return ok(c, nil)
}

type banInput struct {
	UserID       string `json:"userId"`
	DurationDays int    `json:"duration"` // 0 with permanent=true bans forever
	Permanent    bool   `json:"permanent"`
	Reason       string `json:"reason"`
}

// POST /api/admin/ban-user
func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	var in banInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, okID := validate.ID(in.UserID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	if !in.Permanent && in.DurationDays <= 0 {
		return fail(c, fiber.StatusBadRequest, "duration must be positive unless permanent")
	}

	until := ""
	if !in.Permanent {
		until = time.Now().UTC().AddDate(0, 0, in.DurationDays).Format(time.RFC3339)
	}
	if err := h.Users.Ban(in.UserID, until, in.Permanent); err != nil {
		applog.Error(c, "admin.ban.fail", err, map[string]any{"user_id": in.UserID})
		return failErr(c, err)
	}
	applog.Audit(c, "admin.ban", map[string]any{"user_id": in.UserID, "until": until, "permanent": in.Permanent, "reason": in.Reason})
	return ok(c, nil)
}

type unbanInput struct {
	UserID string `json:"userId"`
}

// POST /api/admin/unban-user
func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	var in unbanInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, okID := validate.ID(in.UserID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	if err := h.Users.Unban(in.UserID); err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "admin.unban", map[string]any{"user_id": in.UserID})
	return ok(c, nil)
}

// GET /api/admin/banned-users
func (h *AdminHandler) BannedUsers(c *fiber.Ctx) error {
	users, err := h.Users.ListBanned()
	if err != nil {
		applog.Error(c, "admin.banned.list.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, users)
}
