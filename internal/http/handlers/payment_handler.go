package handlers

import (
	applog "closetloop/internal/log"
	"closetloop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

type paymentInput struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
}

// POST /api/payments/process — the gateway is a black box; this only
// records completion against the order.
func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	var in paymentInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if in.OrderID == "" {
		return fail(c, fiber.StatusBadRequest, "missing orderId")
	}
	p, err := h.Payments.Record(caller(c).ID, in.OrderID, in.Amount, in.Method)
	if err != nil {
		return failErr(c, err)
	}
	applog.Audit(c, "payment.record", map[string]any{"payment_id": p.ID, "order_id": p.OrderID})
	return ok(c, p)
}

// GET /api/payments/user
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	payments, err := h.Payments.History(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, payments)
}
