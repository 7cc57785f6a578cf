// Package geometry maps binding parameters to a 2D scene in canvas space.
//
// The scene frame is the canvas translated to its center and rotated by 180
// degrees, so positive x points towards the left edge of the image and positive
// y towards the top. Labels live in the counter-rotated frame so text reads
// upright. Everything here is pure and deterministic.
package geometry

import (
	"math"
	"strconv"
)

const (
	CanvasWidth  = 800
	CanvasHeight = 400
	BoardLength  = 600
	BoardWidth   = 160

	BindingLength = 120
	BindingWidth  = 100

	// PixelsPerCM scales centimeters to scene units.
	PixelsPerCM = 4
)

type Stance string

const (
	StanceRegular Stance = "regular"
	StanceGoofy   Stance = "goofy"
)

// SetbackDirection is +1 for goofy and -1 for regular riders.
func (s Stance) SetbackDirection() float64 {
	if s == StanceGoofy {
		return 1
	}
	return -1
}

// Shape selects how a binding is drawn. Each primitive has its own local "up"
// axis, hence its own rotation offset.
type Shape string

const (
	ShapeVector Shape = "vector"
	ShapeRaster Shape = "raster"
)

func (s Shape) RotationOffset() float64 {
	if s == ShapeRaster {
		return 270
	}
	return 90
}

func (s Shape) Valid() bool {
	return s == ShapeVector || s == ShapeRaster
}

// Layout assigns a shape strategy to each binding.
type Layout struct {
	Front Shape `json:"front"`
	Back  Shape `json:"back"`
}

func DefaultLayout() Layout {
	return Layout{Front: ShapeVector, Back: ShapeRaster}
}

type Params struct {
	FrontAngle  float64 `json:"frontAngle"`
	BackAngle   float64 `json:"backAngle"`
	StanceWidth float64 `json:"stanceWidth"`
	Setback     float64 `json:"setback"`
	Stance      Stance  `json:"stance"`
}

func DefaultParams() Params {
	return Params{
		FrontAngle:  0,
		BackAngle:   0,
		StanceWidth: 50,
		Setback:     0,
		Stance:      StanceRegular,
	}
}

// ParamsInput is a partially filled parameter set. Absent fields take the
// value from DefaultParams; zero values are kept as given.
type ParamsInput struct {
	FrontAngle  *float64 `json:"frontAngle" query:"frontAngle"`
	BackAngle   *float64 `json:"backAngle" query:"backAngle"`
	StanceWidth *float64 `json:"stanceWidth" query:"stanceWidth"`
	Setback     *float64 `json:"setback" query:"setback"`
	Stance      *string  `json:"stance" query:"stance"`
}

func (in ParamsInput) Resolve() Params {
	params := DefaultParams()
	if in.FrontAngle != nil {
		params.FrontAngle = *in.FrontAngle
	}
	if in.BackAngle != nil {
		params.BackAngle = *in.BackAngle
	}
	if in.StanceWidth != nil {
		params.StanceWidth = *in.StanceWidth
	}
	if in.Setback != nil {
		params.Setback = *in.Setback
	}
	if in.Stance != nil && *in.Stance != "" {
		params.Stance = Stance(*in.Stance)
	}
	return params
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Placement struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotationDegrees"`
	Shape    Shape   `json:"shape"`
}

// Apply maps a point given in the binding's local frame into the scene frame.
func (p Placement) Apply(x, y float64) (float64, float64) {
	sin, cos := math.Sincos(p.Rotation * math.Pi / 180)
	return p.X + x*cos - y*sin, p.Y + x*sin + y*cos
}

type Label struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

type Scene struct {
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Board        Rect      `json:"board"`
	Front        Placement `json:"front"`
	Back         Placement `json:"back"`
	StanceLabel  Label     `json:"stanceLabel"`
	SetbackLabel Label     `json:"setbackLabel"`
}

// Compute lays out the board, both bindings and the measurement labels.
func Compute(params Params, layout Layout) Scene {
	if !layout.Front.Valid() {
		layout.Front = ShapeVector
	}
	if !layout.Back.Valid() {
		layout.Back = ShapeRaster
	}

	half := params.StanceWidth * PixelsPerCM / 2
	offset := SetbackOffset(params.Setback, params.Stance)

	return Scene{
		Width:  CanvasWidth,
		Height: CanvasHeight,
		Board: Rect{
			X:      -BoardLength / 2,
			Y:      -BoardWidth / 2,
			Width:  BoardLength,
			Height: BoardWidth,
		},
		Front: Placement{
			X:        half + offset,
			Y:        0,
			Rotation: params.FrontAngle + layout.Front.RotationOffset(),
			Shape:    layout.Front,
		},
		Back: Placement{
			X:        -half + offset,
			Y:        0,
			Rotation: params.BackAngle + layout.Back.RotationOffset(),
			Shape:    layout.Back,
		},
		StanceLabel: Label{
			X:    0,
			Y:    BoardWidth,
			Text: FormatCM(params.StanceWidth),
		},
		SetbackLabel: Label{
			X:    offset,
			Y:    -BoardWidth,
			Text: FormatCM(params.Setback),
		},
	}
}

// SetbackOffset is the signed shift applied to both bindings along the board.
func SetbackOffset(setback float64, stance Stance) float64 {
	offset := setback * PixelsPerCM * stance.SetbackDirection()
	if offset == 0 {
		return 0
	}
	return offset
}

// ToCanvas maps a scene point to image pixels.
func (s Scene) ToCanvas(x, y float64) (float64, float64) {
	return s.Width/2 - x, s.Height/2 - y
}

// LabelToCanvas maps a label anchor, which is already counter-rotated.
func (s Scene) LabelToCanvas(x, y float64) (float64, float64) {
	return s.Width/2 + x, s.Height/2 + y
}

func FormatCM(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "cm"
}

// LayoutInput selects shapes by name; absent names keep DefaultLayout.
type LayoutInput struct {
	Front *string `json:"front" query:"front"`
	Back  *string `json:"back" query:"back"`
}

func (in LayoutInput) Resolve() Layout {
	layout := DefaultLayout()
	if in.Front != nil && *in.Front != "" {
		layout.Front = Shape(*in.Front)
	}
	if in.Back != nil && *in.Back != "" {
		layout.Back = Shape(*in.Back)
	}
	return layout
}
