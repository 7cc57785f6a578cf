// Package render paints a geometry.Scene onto a raster canvas.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	// AssetScale is applied to the binding rect when drawing the raster asset.
	AssetScale = 0.5

	labelFontSize = 14
	toeStroke     = 2
)

var (
	colorBackground  = color.RGBA{255, 255, 255, 255}
	colorBoard       = color.RGBA{37, 99, 235, 255}  // #2563eb
	colorBinding     = color.RGBA{220, 38, 38, 255}  // #dc2626
	colorPlaceholder = color.RGBA{245, 158, 11, 255} // #f59e0b
	colorToe         = color.RGBA{255, 255, 255, 255}
	colorLabel       = color.RGBA{0, 0, 0, 255}
)

// Renderer draws scenes. It is safe for concurrent use; the raster asset can
// be swapped at any time and rendering falls back to a placeholder while none
// is set.
type Renderer struct {
	font *opentype.Font

	mu          sync.RWMutex
	asset       image.Image
	fingerprint string
}

func NewRenderer(asset image.Image) (*Renderer, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return &Renderer{font: parsed, asset: asset, fingerprint: Fingerprint(asset)}, nil
}

func (r *Renderer) SetAsset(asset image.Image) {
	fingerprint := Fingerprint(asset)
	r.mu.Lock()
	r.asset = asset
	r.fingerprint = fingerprint
	r.mu.Unlock()
}

// AssetFingerprint identifies the current asset's pixels; it is empty when no
// asset is loaded.
func (r *Renderer) AssetFingerprint() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fingerprint
}

// Render clears a fresh canvas and draws the board, both bindings and the labels.
func (r *Renderer) Render(scene geometry.Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(scene.Width), int(scene.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	board := scene.Board
	fillPolygon(img, colorBoard, []point{
		canvasPoint(scene, board.X, board.Y),
		canvasPoint(scene, board.X+board.Width, board.Y),
		canvasPoint(scene, board.X+board.Width, board.Y+board.Height),
		canvasPoint(scene, board.X, board.Y+board.Height),
	})

	r.mu.RLock()
	asset := r.asset
	r.mu.RUnlock()

	for _, placement := range []geometry.Placement{scene.Front, scene.Back} {
		switch StrategyFor(placement.Shape, asset != nil) {
		case StrategyRaster:
			drawAssetBinding(img, scene, placement, asset)
		case StrategyPlaceholder:
			drawTriangleBinding(img, scene, placement, colorPlaceholder)
		default:
			drawTriangleBinding(img, scene, placement, colorBinding)
		}
	}

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    labelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err == nil {
		defer face.Close()
		drawLabel(img, face, scene, scene.StanceLabel)
		drawLabel(img, face, scene, scene.SetbackLabel)
	}

	return img
}

// Drawing strategies as reported by StrategyFor.
const (
	StrategyVector      = "vector"
	StrategyRaster      = "raster"
	StrategyPlaceholder = "placeholder"
)

// StrategyFor reports how a binding of the given shape is drawn.
func StrategyFor(shape geometry.Shape, assetLoaded bool) string {
	switch {
	case shape == geometry.ShapeRaster && assetLoaded:
		return StrategyRaster
	case shape == geometry.ShapeRaster:
		return StrategyPlaceholder
	default:
		return StrategyVector
	}
}

func (r *Renderer) EncodePNG(w io.Writer, scene geometry.Scene) error {
	if err := png.Encode(w, r.Render(scene)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawTriangleBinding(img *image.RGBA, scene geometry.Scene, placement geometry.Placement, fill color.Color) {
	const halfLength = geometry.BindingLength / 2
	const halfWidth = geometry.BindingWidth / 2

	fillPolygon(img, fill, []point{
		localPoint(scene, placement, -halfLength, -halfWidth),
		localPoint(scene, placement, halfLength, 0),
		localPoint(scene, placement, -halfLength, halfWidth),
	})

	toe := localPoint(scene, placement, halfLength, 0)
	strokeSegment(img, colorToe, localPoint(scene, placement, halfLength-20, -10), toe, toeStroke)
	strokeSegment(img, colorToe, toe, localPoint(scene, placement, halfLength-20, 10), toeStroke)
}

func drawAssetBinding(img *image.RGBA, scene geometry.Scene, placement geometry.Placement, asset image.Image) {
	bounds := asset.Bounds()
	if bounds.Empty() {
		drawTriangleBinding(img, scene, placement, colorPlaceholder)
		return
	}

	width := geometry.BindingLength * AssetScale
	height := geometry.BindingWidth * AssetScale
	kx := width / float64(bounds.Dx())
	ky := height / float64(bounds.Dy())
	ox := -width/2 - kx*float64(bounds.Min.X)
	oy := -height/2 - ky*float64(bounds.Min.Y)

	draw.BiLinear.Transform(img, localToCanvas(scene, placement, ox, oy, kx, ky), asset, bounds, draw.Over, nil)
}

func drawLabel(img *image.RGBA, face font.Face, scene geometry.Scene, label geometry.Label) {
	if label.Text == "" {
		return
	}
	x, y := scene.LabelToCanvas(label.X, label.Y)
	width := font.MeasureString(face, label.Text)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: face,
		Dot:  fixedPoint(x, y),
	}
	drawer.Dot.X -= width / 2
	drawer.DrawString(label.Text)
}
