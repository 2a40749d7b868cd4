package handlers

import (
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartLineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cv)
}

// POST /api/cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in cartLineInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Cart.Add(caller(c).ID, pid, in.Quantity); err != nil {
		return failErr(c, err)
	}
	return h.View(c)
}

// PATCH /api/cart/update
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in cartLineInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Cart.SetQuantity(caller(c).ID, pid, in.Quantity); err != nil {
		return failErr(c, err)
	}
	return h.View(c)
}

// POST /api/cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var in cartLineInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if err := h.Cart.Remove(caller(c).ID, in.ProductID); err != nil {
		return failErr(c, err)
	}
	return h.View(c)
}

// POST /api/cart/clear
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(caller(c).ID); err != nil {
		return failErr(c, err)
	}
	return ok(c, nil)
}
