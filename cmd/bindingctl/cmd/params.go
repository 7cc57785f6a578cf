package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/schema"
	"github.com/spf13/cobra"
)

// paramFlags holds the render parameter flags. Only flags the user sets are
// passed on, so absent ones take the geometry defaults.
type paramFlags struct {
	frontAngle  float64
	backAngle   float64
	stanceWidth float64
	setback     float64
	stance      string
	front       string
	back        string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	defaults := geometry.DefaultParams()
	layout := geometry.DefaultLayout()

	flags := cmd.Flags()
	flags.Float64Var(&f.frontAngle, "front-angle", defaults.FrontAngle, "front binding angle in degrees")
	flags.Float64Var(&f.backAngle, "back-angle", defaults.BackAngle, "back binding angle in degrees")
	flags.Float64Var(&f.stanceWidth, "stance-width", defaults.StanceWidth, "distance between bindings in cm")
	flags.Float64Var(&f.setback, "setback", defaults.Setback, "setback in cm")
	flags.StringVar(&f.stance, "stance", string(defaults.Stance), "regular or goofy")
	flags.StringVar(&f.front, "front", string(layout.Front), "front binding shape: vector or raster")
	flags.StringVar(&f.back, "back", string(layout.Back), "back binding shape: vector or raster")
}

func (f *paramFlags) inputs(cmd *cobra.Command) (geometry.ParamsInput, geometry.LayoutInput) {
	flags := cmd.Flags()
	var params geometry.ParamsInput
	var layout geometry.LayoutInput

	if flags.Changed("front-angle") {
		params.FrontAngle = &f.frontAngle
	}
	if flags.Changed("back-angle") {
		params.BackAngle = &f.backAngle
	}
	if flags.Changed("stance-width") {
		params.StanceWidth = &f.stanceWidth
	}
	if flags.Changed("setback") {
		params.Setback = &f.setback
	}
	if flags.Changed("stance") {
		params.Stance = &f.stance
	}
	if flags.Changed("front") {
		layout.Front = &f.front
	}
	if flags.Changed("back") {
		layout.Back = &f.back
	}
	return params, layout
}

// describeError renders field errors one per line with their flag names.
func describeError(err error) error {
	var fields schema.FieldErrors
	if !errors.As(err, &fields) {
		return err
	}
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("  --%s %s", flagName(field.Field), field.Message))
	}
	return fmt.Errorf("invalid parameters:\n%s", strings.Join(lines, "\n"))
}

func flagName(field string) string {
	var b strings.Builder
	for _, r := range field {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
