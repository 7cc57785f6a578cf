package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"testing"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/render"
)

type stubRenderCache struct {
	values map[string][]byte
	getErr error
	gets   int
	sets   int
}

func newStubRenderCache() *stubRenderCache {
	return &stubRenderCache{values: make(map[string][]byte)}
}

func (c *stubRenderCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *stubRenderCache) Set(_ context.Context, key string, value []byte) error {
	c.sets++
	c.values[key] = value
	return nil
}

type countingRenderer struct {
	*render.Renderer
	calls int
}

func (r *countingRenderer) EncodePNG(w io.Writer, scene geometry.Scene) error {
	r.calls++
	return r.Renderer.EncodePNG(w, scene)
}

func newCountingRenderer(t *testing.T) *countingRenderer {
	t.Helper()
	renderer, err := render.NewRenderer(nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return &countingRenderer{Renderer: renderer}
}

func TestRenderServiceSceneAppliesDefaults(t *testing.T) {
	service := NewRenderService(newCountingRenderer(t), nil, nil)

	scene, err := service.Scene(geometry.ParamsInput{Setback: ptr(2.0)}, geometry.LayoutInput{})
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if scene.Front.X != 92 || scene.Back.X != -108 {
		t.Fatalf("unexpected placements %+v %+v", scene.Front, scene.Back)
	}
	if scene.Back.Shape != geometry.ShapeRaster {
		t.Fatalf("expected default raster back binding, got %s", scene.Back.Shape)
	}
}

func TestRenderServiceRejectsOutOfRangeParams(t *testing.T) {
	service := NewRenderService(newCountingRenderer(t), nil, nil)

	if _, err := service.Scene(geometry.ParamsInput{FrontAngle: ptr(90.0)}, geometry.LayoutInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Image(context.Background(), geometry.ParamsInput{}, geometry.LayoutInput{Front: ptr("svg")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for layout, got %v", err)
	}
}

func TestRenderServiceCachesImages(t *testing.T) {
	renderer := newCountingRenderer(t)
	cache := newStubRenderCache()
	service := NewRenderService(renderer, cache, nil)
	ctx := context.Background()

	first, err := service.Image(ctx, geometry.ParamsInput{StanceWidth: ptr(55.0)}, geometry.LayoutInput{})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	second, err := service.Image(ctx, geometry.ParamsInput{StanceWidth: ptr(55.0)}, geometry.LayoutInput{})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	if renderer.calls != 1 {
		t.Fatalf("expected one render, got %d", renderer.calls)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected cached bytes")
	}
	if _, err := png.Decode(bytes.NewReader(first)); err != nil {
		t.Fatalf("expected png output: %v", err)
	}

	if _, err := service.Image(ctx, geometry.ParamsInput{StanceWidth: ptr(56.0)}, geometry.LayoutInput{}); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if renderer.calls != 2 || cache.sets != 2 {
		t.Fatalf("expected a fresh render for new params, got %d renders %d sets", renderer.calls, cache.sets)
	}
}

func TestRenderServiceIgnoresCacheFailures(t *testing.T) {
	renderer := newCountingRenderer(t)
	cache := newStubRenderCache()
	cache.getErr = errors.New("connection refused")
	service := NewRenderService(renderer, cache, nil)

	if _, err := service.Image(context.Background(), geometry.ParamsInput{}, geometry.LayoutInput{}); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected render despite cache failure, got %d", renderer.calls)
	}
}

func TestRenderKeyDependsOnAsset(t *testing.T) {
	params := geometry.DefaultParams()
	layout := geometry.DefaultLayout()

	if renderKey(params, layout, "abc") == renderKey(params, layout, "") {
		t.Fatalf("expected asset state to change the key")
	}
	if renderKey(params, layout, "abc") == renderKey(params, layout, "def") {
		t.Fatalf("expected a different asset to change the key")
	}
	if renderKey(params, layout, "abc") != renderKey(params, layout, "abc") {
		t.Fatalf("expected stable key")
	}
}

func TestRenderServiceRerendersAfterAssetSwap(t *testing.T) {
	renderer := newCountingRenderer(t)
	cache := newStubRenderCache()
	service := NewRenderService(renderer, cache, nil)
	ctx := context.Background()

	swap := func(fill color.RGBA) {
		asset := image.NewRGBA(image.Rect(0, 0, 8, 8))
		draw.Draw(asset, asset.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
		renderer.SetAsset(asset)
	}

	swap(color.RGBA{0, 128, 0, 255})
	first, err := service.Image(ctx, geometry.ParamsInput{}, geometry.LayoutInput{})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	swap(color.RGBA{128, 0, 128, 255})
	second, err := service.Image(ctx, geometry.ParamsInput{}, geometry.LayoutInput{})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	if renderer.calls != 2 || cache.sets != 2 {
		t.Fatalf("expected a fresh render after the asset changed, got %d renders %d sets", renderer.calls, cache.sets)
	}
	if bytes.Equal(first, second) {
		t.Fatalf("expected new asset pixels in the second image")
	}
}

func TestProfileParams(t *testing.T) {
	params := ProfileParams(&models.BindingProfile{FrontAngle: 12, BackAngle: -6, StanceWidth: 54, Setback: 1, Stance: "goofy"})
	want := geometry.Params{FrontAngle: 12, BackAngle: -6, StanceWidth: 54, Setback: 1, Stance: geometry.StanceGoofy}
	if params != want {
		t.Fatalf("expected %+v, got %+v", want, params)
	}
}
