package main

import (
	"context"
	"image"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saeid-a/BindingStudio/internal/cache"
	"github.com/saeid-a/BindingStudio/internal/config"
	"github.com/saeid-a/BindingStudio/internal/logging"
	"github.com/saeid-a/BindingStudio/internal/metrics"
	"github.com/saeid-a/BindingStudio/internal/middleware"
	"github.com/saeid-a/BindingStudio/internal/render"
	"github.com/saeid-a/BindingStudio/internal/repository"
	"github.com/saeid-a/BindingStudio/internal/routes"
	"github.com/saeid-a/BindingStudio/internal/services"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Open the profile store
	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		zlog.Fatal("Failed to open profile store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()
	zlog.Info("Profile store ready", zap.String("driver", cfg.StoreDriver))

	// 3. Renderer, cache and object storage
	renderer, err := render.NewRenderer(loadBindingAsset(cfg, zlog))
	if err != nil {
		zlog.Fatal("Failed to create renderer", zap.Error(err))
	}

	deps := routes.Dependencies{
		Store:    store,
		Renderer: renderer,
		Logger:   zlog,
	}

	if cfg.RenderCacheEnabled() {
		renderCache := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, "binding-studio", cfg.RenderCacheTTL)
		defer renderCache.Close()
		if err := renderCache.Ping(ctx); err != nil {
			zlog.Warn("Render cache unreachable, continuing without it", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			deps.Cache = renderCache
		}
	}

	if cfg.StorageEnabled() {
		deps.Storage = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Binding Studio",
		ErrorHandler: middleware.ErrorHandler(zlog),
	})

	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(metrics.Middleware())

	if err := routes.RegisterRoutes(ctx, app, cfg, deps); err != nil {
		zlog.Fatal("Failed to register routes", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			zlog.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	// 5. Start Server
	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed to start", zap.Error(err))
	}
}

// loadBindingAsset prefers BINDING_ASSET_PATH and falls back to the embedded
// image. A nil result makes the renderer draw placeholders.
func loadBindingAsset(cfg *config.Config, zlog *zap.Logger) image.Image {
	if cfg.BindingAssetPath != "" {
		asset, err := render.LoadAsset(cfg.BindingAssetPath)
		if err == nil {
			return asset
		}
		zlog.Warn("Binding asset not loaded, using the built-in image", zap.String("path", cfg.BindingAssetPath), zap.Error(err))
	}

	asset, err := render.DefaultAsset()
	if err != nil {
		zlog.Warn("Built-in binding asset failed to decode, drawing placeholders", zap.Error(err))
		return nil
	}
	return asset
}
