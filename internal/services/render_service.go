package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/metrics"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/render"
	"github.com/saeid-a/BindingStudio/internal/schema"
	"go.uber.org/zap"
)

// RenderCache stores encoded PNGs by content key. Implementations report a
// miss with found=false.
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type SceneRenderer interface {
	EncodePNG(w io.Writer, scene geometry.Scene) error
	AssetFingerprint() string
}

type RenderService struct {
	renderer SceneRenderer
	cache    RenderCache
	logger   *zap.Logger
}

func NewRenderService(renderer SceneRenderer, cache RenderCache, logger *zap.Logger) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderService{renderer: renderer, cache: cache, logger: logger}
}

// Scene validates raw parameters and computes the layout. Absent parameters
// take their defaults.
func (s *RenderService) Scene(params geometry.ParamsInput, layout geometry.LayoutInput) (geometry.Scene, error) {
	resolvedParams, resolvedLayout, err := resolve(params, layout)
	if err != nil {
		return geometry.Scene{}, err
	}
	return geometry.Compute(resolvedParams, resolvedLayout), nil
}

func (s *RenderService) Image(ctx context.Context, params geometry.ParamsInput, layout geometry.LayoutInput) ([]byte, error) {
	resolvedParams, resolvedLayout, err := resolve(params, layout)
	if err != nil {
		return nil, err
	}
	return s.RenderPNG(ctx, resolvedParams, resolvedLayout)
}

// ProfileParams extracts the geometry parameters of a stored profile.
func ProfileParams(profile *models.BindingProfile) geometry.Params {
	stance := geometry.Stance(profile.Stance)
	if stance == "" {
		stance = geometry.StanceRegular
	}
	return geometry.Params{
		FrontAngle:  profile.FrontAngle,
		BackAngle:   profile.BackAngle,
		StanceWidth: profile.StanceWidth,
		Setback:     profile.Setback,
		Stance:      stance,
	}
}

func (s *RenderService) ProfileImage(ctx context.Context, profile *models.BindingProfile, layout geometry.LayoutInput) ([]byte, error) {
	if err := schema.ValidateLayout(layout); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.RenderPNG(ctx, ProfileParams(profile), layout.Resolve())
}

// RenderPNG renders a scene, consulting the cache first when one is set.
// Cache failures are logged and never fail the render.
func (s *RenderService) RenderPNG(ctx context.Context, params geometry.Params, layout geometry.Layout) ([]byte, error) {
	asset := s.renderer.AssetFingerprint()
	assetLoaded := asset != ""
	key := renderKey(params, layout, asset)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.RenderCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("render cache lookup failed", zap.String("key", key), zap.Error(err))
		case found:
			metrics.RenderCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.RenderCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	scene := geometry.Compute(params, layout)
	start := time.Now()
	var buf bytes.Buffer
	if err := s.renderer.EncodePNG(&buf, scene); err != nil {
		return nil, err
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	metrics.BindingsDrawn.WithLabelValues(render.StrategyFor(scene.Front.Shape, assetLoaded)).Inc()
	metrics.BindingsDrawn.WithLabelValues(render.StrategyFor(scene.Back.Shape, assetLoaded)).Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, buf.Bytes()); err != nil {
			s.logger.Warn("render cache store failed", zap.String("key", key), zap.Error(err))
		}
	}

	return buf.Bytes(), nil
}

func resolve(params geometry.ParamsInput, layout geometry.LayoutInput) (geometry.Params, geometry.Layout, error) {
	if err := schema.ValidateParams(params); err != nil {
		return geometry.Params{}, geometry.Layout{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := schema.ValidateLayout(layout); err != nil {
		return geometry.Params{}, geometry.Layout{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return params.Resolve(), layout.Resolve(), nil
}

// renderKey identifies an image by everything that affects its pixels,
// including which binding asset is loaded.
func renderKey(params geometry.Params, layout geometry.Layout, asset string) string {
	payload, _ := json.Marshal(struct {
		Params geometry.Params `json:"params"`
		Layout geometry.Layout `json:"layout"`
		Asset  string          `json:"asset"`
	}{params, layout, asset})

	sum := sha256.Sum256(payload)
	return "render:" + hex.EncodeToString(sum[:])
}
