package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/BindingStudio/internal/schema"
	"github.com/saeid-a/BindingStudio/internal/services"
	"go.uber.org/zap"
)

func parseProfileID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func invalidProfileID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid profile ID"})
}

// invalidProfileBody answers a body that could not be decoded. Wrong types and
// explicit nulls carry their field list; malformed JSON does not.
func invalidProfileBody(c *fiber.Ctx, err error) error {
	var fields schema.FieldErrors
	if errors.As(err, &fields) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidProfileData, "errors": fields})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidProfileData})
}

// mapProfileError turns service errors into responses. Field errors keep
// their per-field detail under "errors".
func mapProfileError(c *fiber.Ctx, logger *zap.Logger, err error, invalidMessage, failureMessage string) error {
	var fields schema.FieldErrors
	switch {
	case errors.As(err, &fields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidMessage, "errors": fields})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidMessage})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Profile sharing is not configured"})
	default:
		logger.Error(failureMessage,
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": failureMessage})
	}
}
