package routes

import (
	"context"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saeid-a/BindingStudio/internal/config"
	"github.com/saeid-a/BindingStudio/internal/handlers"
	"github.com/saeid-a/BindingStudio/internal/render"
	"github.com/saeid-a/BindingStudio/internal/services"
	previewws "github.com/saeid-a/BindingStudio/internal/websocket"
	"go.uber.org/zap"
)

// Dependencies are built by the caller. Cache and Storage may be nil.
type Dependencies struct {
	Store    services.ProfileStore
	Renderer *render.Renderer
	Cache    services.RenderCache
	Storage  services.ObjectStorage
	Logger   *zap.Logger
}

// RegisterRoutes wires every endpoint. The preview hub runs until ctx is done.
func RegisterRoutes(ctx context.Context, app *fiber.App, cfg *config.Config, deps Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	previewHub := previewws.NewHub(logger)
	go previewHub.Run(ctx)

	profileService := services.NewProfileService(deps.Store, previewHub)
	renderService := services.NewRenderService(deps.Renderer, deps.Cache, logger)
	exportService := services.NewExportService(deps.Storage)

	profileHandler := handlers.NewProfileHandler(profileService, logger)
	renderHandler := handlers.NewRenderHandler(renderService, profileService, logger)
	exportHandler := handlers.NewExportHandler(exportService, profileService, logger)
	previewHandler := handlers.NewPreviewHandler(previewHub, renderService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	api := app.Group("/api")

	profiles := api.Group("/profiles")
	profiles.Get("", profileHandler.ListProfiles)
	profiles.Post("", profileHandler.CreateProfile)
	profiles.Get("/:id", profileHandler.GetProfile)
	profiles.Patch("/:id", profileHandler.UpdateProfile)
	profiles.Delete("/:id", profileHandler.DeleteProfile)
	profiles.Get("/:id/image", renderHandler.GetProfileImage)
	profiles.Get("/:id/export", exportHandler.ExportProfile)
	profiles.Post("/:id/export/share", exportHandler.ShareProfile)
	profiles.Delete("/:id/export/share", exportHandler.UnshareProfile)

	renders := api.Group("/render")
	renders.Get("/scene", renderHandler.GetScene)
	renders.Get("/image", renderHandler.GetImage)

	api.Use("/ws/preview", previewHandler.RequireUpgrade)
	api.Get("/ws/preview", websocket.New(previewHandler.HandleWebSocket))

	return nil
}
