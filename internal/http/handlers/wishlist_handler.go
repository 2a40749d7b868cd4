package handlers

import (
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

type wishlistInput struct {
	ProductID string `json:"productId"`
}

// GET /api/wishlist/:userId — readable by any logged-in user; swap
// proposers browse the other party's candidates here.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	uid, okID := validate.ID(c.Params("userId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	items, err := h.Wish.List(uid)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, items)
}

// POST /api/wishlist/add
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var in wishlistInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Wish.Save(caller(c).ID, pid); err != nil {
		return failErr(c, err)
	}
	return ok(c, nil)
}

// POST /api/wishlist/remove
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	var in wishlistInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if err := h.Wish.Unsave(caller(c).ID, in.ProductID); err != nil {
		return failErr(c, err)
	}
	return ok(c, nil)
}
