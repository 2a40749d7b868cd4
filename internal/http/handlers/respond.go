package handlers

import (
	"errors"

	"closetloop/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(envelope{Success: false, Message: msg})
}

// failErr maps the engine's error taxonomy onto HTTP statuses. The
// wrapped message keeps the entity id and current state so callers can
// decide whether to retry.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAuthorization):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrSelfRental),
		errors.Is(err, domain.ErrSelfSwap),
		errors.Is(err, domain.ErrDuplicateProposal),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPrecondition):
		return fail(c, fiber.StatusConflict, err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "something went wrong")
}
