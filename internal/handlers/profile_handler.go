package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/schema"
	"github.com/saeid-a/BindingStudio/internal/services"
	"go.uber.org/zap"
)

const invalidProfileData = "Invalid profile data"

type profileApplicationService interface {
	List(ctx context.Context) ([]models.BindingProfile, error)
	Get(ctx context.Context, id int64) (*models.BindingProfile, error)
	Create(ctx context.Context, body models.ProfilePatch) (*models.BindingProfile, error)
	Update(ctx context.Context, id int64, patch models.ProfilePatch, opts services.UpdateOptions) (*models.BindingProfile, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ProfileHandler struct {
	service profileApplicationService
	logger  *zap.Logger
}

func NewProfileHandler(service *services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, logger: logger}
}

func (h *ProfileHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.List(c.Context())
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to fetch profiles")
	}
	return c.JSON(profiles)
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	id, err := parseProfileID(c)
	if err != nil {
		return invalidProfileID(c)
	}

	profile, err := h.service.Get(c.Context(), id)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to fetch profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	body, err := schema.DecodeProfilePatch(c.Body())
	if err != nil {
		return invalidProfileBody(c, err)
	}

	profile, err := h.service.Create(c.Context(), body)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to create profile")
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateProfile applies a partial update. With ?mirror=true a stance change
// also negates both binding angles.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := parseProfileID(c)
	if err != nil {
		return invalidProfileID(c)
	}

	var patch models.ProfilePatch
	if len(c.Body()) > 0 {
		patch, err = schema.DecodeProfilePatch(c.Body())
		if err != nil {
			return invalidProfileBody(c, err)
		}
	}

	profile, err := h.service.Update(c.Context(), id, patch, services.UpdateOptions{
		MirrorOnStanceChange: c.QueryBool("mirror", false),
	})
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to update profile")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) DeleteProfile(c *fiber.Ctx) error {
	id, err := parseProfileID(c)
	if err != nil {
		return invalidProfileID(c)
	}

	deleted, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return mapProfileError(c, h.logger, err, invalidProfileData, "Failed to delete profile")
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
