package handlers

import (
	applog "closetloop/internal/log"
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SwapHandler struct {
	Swaps *services.SwapService
}

type proposeSwapInput struct {
	OwnerID            string `json:"ownerId"`
	OfferedProductID   string `json:"offeredProductId"`
	RequestedProductID string `json:"requestedProductId"`
}

// POST /api/exchanges/request
func (h *SwapHandler) Propose(c *fiber.Ctx) error {
	var in proposeSwapInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, okID := validate.ID(in.OwnerID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid ownerId")
	}
	if _, okID := validate.ID(in.OfferedProductID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid offeredProductId")
	}
	if _, okID := validate.ID(in.RequestedProductID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid requestedProductId")
	}

	sr, err := h.Swaps.Propose(caller(c), in.OwnerID, in.OfferedProductID, in.RequestedProductID)
	if err != nil {
		applog.Security(c, "swap.propose.fail", map[string]any{"offered": in.OfferedProductID, "error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "swap.propose", map[string]any{"swap_id": sr.ID})
	return ok(c, sr)
}

type respondSwapInput struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"` // ACCEPTED | DECLINED
}

// PATCH /api/exchanges/status
func (h *SwapHandler) Respond(c *fiber.Ctx) error {
	var in respondSwapInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if in.RequestID == "" {
		return fail(c, fiber.StatusBadRequest, "missing requestId")
	}
	sr, err := h.Swaps.Respond(in.RequestID, caller(c), in.Action)
	if err != nil {
		applog.Security(c, "swap.respond.fail", map[string]any{"swap_id": in.RequestID, "error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "swap.respond", map[string]any{"swap_id": sr.ID, "decision": sr.RequestStatus})
	return ok(c, sr)
}

type swapStatusInput struct {
	RequestID string `json:"requestId"`
	NewStatus string `json:"newStatus"`
}

// PATCH /api/exchanges/swap-status
func (h *SwapHandler) AdvanceSwapStatus(c *fiber.Ctx) error {
	var in swapStatusInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	if in.RequestID == "" || in.NewStatus == "" {
		return fail(c, fiber.StatusBadRequest, "missing requestId or newStatus")
	}
	sr, err := h.Swaps.AdvanceSwapStatus(in.RequestID, in.NewStatus, caller(c))
	if err != nil {
		applog.Security(c, "swap.status.fail", map[string]any{"swap_id": in.RequestID, "error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "swap.status", map[string]any{"swap_id": sr.ID, "status": sr.SwapStatus})
	return ok(c, sr)
}

// GET /api/exchanges/sent
func (h *SwapHandler) Sent(c *fiber.Ctx) error {
	swaps, err := h.Swaps.ListSent(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, swaps)
}

// GET /api/exchanges/received
func (h *SwapHandler) Received(c *fiber.Ctx) error {
	swaps, err := h.Swaps.ListReceived(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, swaps)
}
