package handlers

import (
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

type reviewInput struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// POST /api/reviews/add
func (h *ReviewHandler) Add(c *fiber.Ctx) error {
	var in reviewInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	rv, err := h.Reviews.Add(caller(c).ID, pid, in.Rating, in.Comment)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rv)
}

// GET /api/reviews/product/:id
func (h *ReviewHandler) ForProduct(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	reviews, err := h.Reviews.ForProduct(pid)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, reviews)
}

// PUT /api/reviews/edit/:id
func (h *ReviewHandler) Edit(c *fiber.Ctx) error {
	var in reviewInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	rv, err := h.Reviews.Edit(c.Params("id"), caller(c).ID, in.Rating, in.Comment)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rv)
}

// DELETE /api/reviews/delete/:id
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.Reviews.Delete(c.Params("id"), caller(c).ID); err != nil {
		return failErr(c, err)
	}
	return ok(c, nil)
}
