package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/services"
	"go.uber.org/zap"
)

const invalidRenderParams = "Invalid render parameters"

type renderApplicationService interface {
	Scene(params geometry.ParamsInput, layout geometry.LayoutInput) (geometry.Scene, error)
	Image(ctx context.Context, params geometry.ParamsInput, layout geometry.LayoutInput) ([]byte, error)
	ProfileImage(ctx context.Context, profile *models.BindingProfile, layout geometry.LayoutInput) ([]byte, error)
}

type profileGetter interface {
	Get(ctx context.Context, id int64) (*models.BindingProfile, error)
}

type RenderHandler struct {
	service  renderApplicationService
	profiles profileGetter
	logger   *zap.Logger
}

func NewRenderHandler(service *services.RenderService, profiles *services.ProfileService, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{service: service, profiles: profiles, logger: logger}
}

func (h *RenderHandler) GetScene(c *fiber.Ctx) error {
	params, layout, err := parseRenderQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidRenderParams})
	}

	scene, err := h.service.Scene(params, layout)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidRenderParams, "Failed to compute scene")
	}
	return c.JSON(scene)
}

func (h *RenderHandler) GetImage(c *fiber.Ctx) error {
	params, layout, err := parseRenderQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidRenderParams})
	}

	image, err := h.service.Image(c.Context(), params, layout)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidRenderParams, "Failed to render image")
	}
	return sendPNG(c, image)
}

// GetProfileImage renders a stored profile. Only the layout comes from the query.
func (h *RenderHandler) GetProfileImage(c *fiber.Ctx) error {
	id, err := parseProfileID(c)
	if err != nil {
		return invalidProfileID(c)
	}

	var layout geometry.LayoutInput
	if err := c.QueryParser(&layout); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalidRenderParams})
	}

	profile, err := h.profiles.Get(c.Context(), id)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidRenderParams, "Failed to fetch profile")
	}

	image, err := h.service.ProfileImage(c.Context(), profile, layout)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidRenderParams, "Failed to render image")
	}
	return sendPNG(c, image)
}

func parseRenderQuery(c *fiber.Ctx) (geometry.ParamsInput, geometry.LayoutInput, error) {
	var params geometry.ParamsInput
	if err := c.QueryParser(&params); err != nil {
		return params, geometry.LayoutInput{}, err
	}
	var layout geometry.LayoutInput
	if err := c.QueryParser(&layout); err != nil {
		return params, layout, err
	}
	return params, layout, nil
}

func sendPNG(c *fiber.Ctx, image []byte) error {
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(image)
}
