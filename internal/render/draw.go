package render

import (
	"image"
	"image/color"
	"math"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type point struct {
	x, y float64
}

func canvasPoint(scene geometry.Scene, x, y float64) point {
	cx, cy := scene.ToCanvas(x, y)
	return point{cx, cy}
}

// localPoint maps a point in a binding's own frame to canvas pixels.
func localPoint(scene geometry.Scene, placement geometry.Placement, x, y float64) point {
	sx, sy := placement.Apply(x, y)
	return canvasPoint(scene, sx, sy)
}

// localToCanvas returns the affine map from asset pixels to canvas pixels,
// where asset pixel (u, v) lands on local point (ox + kx*u, oy + ky*v).
func localToCanvas(scene geometry.Scene, placement geometry.Placement, ox, oy, kx, ky float64) f64.Aff3 {
	origin := localPoint(scene, placement, 0, 0)
	ex := localPoint(scene, placement, 1, 0)
	ey := localPoint(scene, placement, 0, 1)
	ex = point{ex.x - origin.x, ex.y - origin.y}
	ey = point{ey.x - origin.x, ey.y - origin.y}

	return f64.Aff3{
		kx * ex.x, ky * ey.x, origin.x + ox*ex.x + oy*ey.x,
		kx * ex.y, ky * ey.y, origin.y + ox*ex.y + oy*ey.y,
	}
}

func fillPolygon(img *image.RGBA, fill color.Color, points []point) {
	if len(points) < 3 {
		return
	}
	bounds := img.Bounds()
	rasterizer := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	rasterizer.DrawOp = draw.Over
	rasterizer.MoveTo(float32(points[0].x), float32(points[0].y))
	for _, p := range points[1:] {
		rasterizer.LineTo(float32(p.x), float32(p.y))
	}
	rasterizer.ClosePath()
	rasterizer.Draw(img, bounds, image.NewUniform(fill), image.Point{})
}

// strokeSegment draws a line of the given width as a filled quad.
func strokeSegment(img *image.RGBA, stroke color.Color, from, to point, width float64) {
	dx := to.x - from.x
	dy := to.y - from.y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	fillPolygon(img, stroke, []point{
		{from.x + nx, from.y + ny},
		{to.x + nx, to.y + ny},
		{to.x - nx, to.y - ny},
		{from.x - nx, from.y - ny},
	})
}

func fixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
