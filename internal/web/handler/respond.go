package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
)

// Error translates a controller error into the JSON error envelope. The
// response carries the error kind and a safe message; internal causes are
// never exposed to the client.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
		"error":   apperr.KindOf(err),
		"message": apperr.SafeMessage(err),
	})
}

// ValidationError reports a request parse or validation failure.
func ValidationError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   apperr.KindValidation,
		"message": message,
	})
}
