package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/services"
	"go.uber.org/zap"
)

type exportApplicationService interface {
	Export(profile *models.BindingProfile) (string, []byte, error)
	Share(ctx context.Context, profile *models.BindingProfile) (string, error)
	Unshare(ctx context.Context, profile *models.BindingProfile) error
}

type ExportHandler struct {
	service  exportApplicationService
	profiles profileGetter
	logger   *zap.Logger
}

func NewExportHandler(service *services.ExportService, profiles *services.ProfileService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{service: service, profiles: profiles, logger: logger}
}

// ExportProfile downloads the stored record as <name>-binding-profile.json.
func (h *ExportHandler) ExportProfile(c *fiber.Ctx) error {
	profile, err := h.loadProfile(c)
	if err != nil || profile == nil {
		return err
	}

	filename, payload, err := h.service.Export(profile)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to export profile")
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(payload)
}

func (h *ExportHandler) ShareProfile(c *fiber.Ctx) error {
	profile, err := h.loadProfile(c)
	if err != nil || profile == nil {
		return err
	}

	url, err := h.service.Share(c.Context(), profile)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to share profile")
	}
	return c.JSON(fiber.Map{"url": url})
}

func (h *ExportHandler) UnshareProfile(c *fiber.Ctx) error {
	profile, err := h.loadProfile(c)
	if err != nil || profile == nil {
		return err
	}

	if err := h.service.Unshare(c.Context(), profile); err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to remove shared profile")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// loadProfile writes the error response itself and then returns a nil profile.
func (h *ExportHandler) loadProfile(c *fiber.Ctx) (*models.BindingProfile, error) {
	id, err := parseProfileID(c)
	if err != nil {
		return nil, invalidProfileID(c)
	}

	profile, err := h.profiles.Get(c.Context(), id)
	if err != nil {
		return nil, mapProfileError(c, h.logger, err, invalidProfileData, "Failed to fetch profile")
	}
	return profile, nil
}
