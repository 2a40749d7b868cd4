package handlers

import (
	applog "closetloop/internal/log"
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type placeOrderInput struct {
	ProductID string `json:"productId"`
}

// POST /api/orders/place-order
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in placeOrderInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, okID := validate.ID(in.ProductID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	o, err := h.Orders.Place(caller(c), pid)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"product_id": pid, "error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "product_id": pid})
	return ok(c, o)
}

// POST /api/orders/checkout — drains the cart, one order per line.
// Partial success is reported per line, not as an all-or-nothing error.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	results, err := h.Orders.Checkout(caller(c))
	if err != nil {
		applog.Error(c, "order.checkout.fail", err, nil)
		return failErr(c, err)
	}
	placed := 0
	for _, r := range results {
		if r.Placed {
			placed++
		}
	}
	applog.Audit(c, "order.checkout", map[string]any{"lines": len(results), "placed": placed})
	return ok(c, results)
}

type updateStatusInput struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

// PUT /api/orders/update-status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in updateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if in.OrderID == "" || in.NewStatus == "" {
		return fail(c, fiber.StatusBadRequest, "missing orderId or newStatus")
	}
	o, err := h.Orders.AdvanceStatus(in.OrderID, in.NewStatus, caller(c))
	if err != nil {
		applog.Security(c, "order.status.fail", map[string]any{"order_id": in.OrderID, "error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": o.ID, "status": o.Status})
	return ok(c, o)
}

// GET /api/orders/user — orders the caller placed as renter.
func (h *OrderHandler) MyRentals(c *fiber.Ctx) error {
	orders, err := h.Orders.ListByRenter(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, orders)
}

// GET /api/orders/owner — orders against the caller's listings.
func (h *OrderHandler) MyListingsOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListByOwner(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, orders)
}
