package geometry

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBoardIsConstantAndCentered(t *testing.T) {
	inputs := []Params{
		DefaultParams(),
		{FrontAngle: 45, BackAngle: -45, StanceWidth: 100, Setback: 10, Stance: StanceGoofy},
		{FrontAngle: -12, BackAngle: 3, StanceWidth: 0, Setback: -10, Stance: StanceRegular},
	}

	for _, params := range inputs {
		scene := Compute(params, DefaultLayout())
		if scene.Board.Width != BoardLength || scene.Board.Height != BoardWidth {
			t.Fatalf("unexpected board size %+v for %+v", scene.Board, params)
		}
		cx, cy := scene.Board.X+scene.Board.Width/2, scene.Board.Y+scene.Board.Height/2
		if cx != 0 || cy != 0 {
			t.Fatalf("expected centered board, got center (%v, %v)", cx, cy)
		}
		if scene.Width != CanvasWidth || scene.Height != CanvasHeight {
			t.Fatalf("unexpected canvas %vx%v", scene.Width, scene.Height)
		}
	}
}

func TestComputeSeparationMatchesStanceWidth(t *testing.T) {
	for _, width := range []float64{0, 35, 50, 52.5, 66, 100} {
		for _, setback := range []float64{-10, 0, 3.5} {
			scene := Compute(Params{StanceWidth: width, Setback: setback, Stance: StanceGoofy}, DefaultLayout())
			distance := scene.Front.X - scene.Back.X
			if !approxEqual(distance, width*PixelsPerCM) {
				t.Fatalf("width %v setback %v: expected separation %v, got %v", width, setback, width*PixelsPerCM, distance)
			}
		}
	}
}

func TestComputeSetbackMovesBothBindingsTogether(t *testing.T) {
	base := Compute(Params{StanceWidth: 50, Stance: StanceRegular}, DefaultLayout())
	shifted := Compute(Params{StanceWidth: 50, Setback: 2, Stance: StanceRegular}, DefaultLayout())

	frontShift := shifted.Front.X - base.Front.X
	backShift := shifted.Back.X - base.Back.X
	if !approxEqual(frontShift, backShift) {
		t.Fatalf("expected identical shift, got front %v back %v", frontShift, backShift)
	}
	if !approxEqual(frontShift, -8) {
		t.Fatalf("expected regular 2cm setback to shift by -8, got %v", frontShift)
	}
	if shifted.Front.Y != 0 || shifted.Back.Y != 0 {
		t.Fatalf("bindings should stay on the center line")
	}
}

func TestComputeStanceMirrorsSetback(t *testing.T) {
	regular := Compute(Params{StanceWidth: 50, Setback: 3, Stance: StanceRegular}, DefaultLayout())
	goofy := Compute(Params{StanceWidth: 50, Setback: 3, Stance: StanceGoofy}, DefaultLayout())

	regularOffset := regular.Front.X - 100
	goofyOffset := goofy.Front.X - 100
	if !approxEqual(regularOffset, -goofyOffset) || regularOffset == 0 {
		t.Fatalf("expected mirrored offsets, got regular %v goofy %v", regularOffset, goofyOffset)
	}
	if !approxEqual(regular.SetbackLabel.X, -goofy.SetbackLabel.X) {
		t.Fatalf("expected mirrored setback label, got %v and %v", regular.SetbackLabel.X, goofy.SetbackLabel.X)
	}
}

func TestComputeRotationOffsetsFollowShape(t *testing.T) {
	params := Params{FrontAngle: 15, BackAngle: -9, StanceWidth: 50}

	scene := Compute(params, DefaultLayout())
	if scene.Front.Rotation != 105 || scene.Front.Shape != ShapeVector {
		t.Fatalf("unexpected front placement %+v", scene.Front)
	}
	if scene.Back.Rotation != 261 || scene.Back.Shape != ShapeRaster {
		t.Fatalf("unexpected back placement %+v", scene.Back)
	}

	vectorOnly := Compute(params, Layout{Front: ShapeVector, Back: ShapeVector})
	if vectorOnly.Back.Rotation != 81 {
		t.Fatalf("expected vector back rotation 81, got %v", vectorOnly.Back.Rotation)
	}

	fallback := Compute(params, Layout{})
	if fallback.Front.Shape != ShapeVector || fallback.Back.Shape != ShapeRaster {
		t.Fatalf("expected default shapes for an empty layout, got %+v %+v", fallback.Front, fallback.Back)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	params := Params{FrontAngle: 21, BackAngle: -6, StanceWidth: 54, Setback: -1.5, Stance: StanceGoofy}
	if Compute(params, DefaultLayout()) != Compute(params, DefaultLayout()) {
		t.Fatalf("expected identical scenes for identical input")
	}
}

func TestComputeLabels(t *testing.T) {
	scene := Compute(Params{StanceWidth: 52.5, Setback: -2, Stance: StanceGoofy}, DefaultLayout())
	if scene.StanceLabel.Text != "52.5cm" {
		t.Fatalf("unexpected stance label %q", scene.StanceLabel.Text)
	}
	if scene.SetbackLabel.Text != "-2cm" {
		t.Fatalf("unexpected setback label %q", scene.SetbackLabel.Text)
	}
	if scene.StanceLabel.Y != BoardWidth || scene.SetbackLabel.Y != -BoardWidth {
		t.Fatalf("labels should sit outside the board edges: %+v %+v", scene.StanceLabel, scene.SetbackLabel)
	}
}

func TestParamsInputResolveAppliesDefaultsOnlyWhenAbsent(t *testing.T) {
	resolved := ParamsInput{}.Resolve()
	if resolved != DefaultParams() {
		t.Fatalf("expected defaults, got %+v", resolved)
	}

	zero := 0.0
	goofy := "goofy"
	resolved = ParamsInput{StanceWidth: &zero, Stance: &goofy}.Resolve()
	if resolved.StanceWidth != 0 {
		t.Fatalf("explicit zero stance width should be kept, got %v", resolved.StanceWidth)
	}
	if resolved.Stance != StanceGoofy {
		t.Fatalf("expected goofy, got %q", resolved.Stance)
	}
}

func TestSceneCanvasMapping(t *testing.T) {
	scene := Compute(DefaultParams(), DefaultLayout())

	x, y := scene.ToCanvas(0, 0)
	if x != 400 || y != 200 {
		t.Fatalf("origin should map to canvas center, got (%v, %v)", x, y)
	}
	x, y = scene.ToCanvas(100, 20)
	if x != 300 || y != 180 {
		t.Fatalf("scene frame is rotated by 180 degrees, got (%v, %v)", x, y)
	}
	x, y = scene.LabelToCanvas(0, BoardWidth)
	if x != 400 || y != 360 {
		t.Fatalf("labels are counter-rotated, got (%v, %v)", x, y)
	}
}

func TestPlacementApplyRotatesLocalPoints(t *testing.T) {
	placement := Placement{X: 10, Y: 0, Rotation: 90}
	x, y := placement.Apply(1, 0)
	if !approxEqual(x, 10) || !approxEqual(y, 1) {
		t.Fatalf("expected (10, 1), got (%v, %v)", x, y)
	}
}
