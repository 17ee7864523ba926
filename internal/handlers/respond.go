package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jordanveal/bitelist/internal/apperr"
)

// All responses use the {status, data?, message?} envelope the front end
// expects.

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"status": status, "data": data})
}

func respondCreated(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  fiber.StatusCreated,
		"data":    data,
		"message": message,
	})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": status, "message": message})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidArgument, apperr.InvalidCredentials:
		return fiber.StatusBadRequest
	case apperr.NotFound:
		return fiber.StatusNotFound
	case apperr.Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusForKind(apperr.KindOf(err))
	return respondMessage(c, status, err.Error())
}
