// Package schema holds the declarative bounds for binding profiles and render
// parameters. Violations are reported per field; values are never clamped.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/models"
)

// Bounds used by both the API and the CLI.
var (
	AngleBounds            = Bounds{Min: -45, Max: 45}
	StanceWidthBounds      = Bounds{Min: 0, Max: 100}
	SetbackBounds          = Bounds{Min: -10, Max: 10}
	BootSizeBounds         = Bounds{Min: 4, Max: 15}
	RiderWeightBounds      = Bounds{Min: 30, Max: 200}
	RiderHeightBounds      = Bounds{Min: 120, Max: 220}
	HighbackHeightBounds   = Bounds{Min: 0, Max: 10}
	BindingStiffnessBounds = Bounds{Min: 1, Max: 10}
)

var (
	boardTypes = []any{models.BoardTypeStandard, models.BoardTypeWide}
	stances    = []any{models.StanceRegular, models.StanceGoofy}
	shapes     = []any{string(geometry.ShapeVector), string(geometry.ShapeRaster)}
)

type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) Contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned as an error when any field is invalid.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Field+": "+fieldErr.Message)
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) Has(field string) bool {
	for _, fieldErr := range e {
		if fieldErr.Field == field {
			return true
		}
	}
	return false
}

// ValidateCreate checks a full profile body. Only highbackHeight,
// bindingStiffness and stance may be omitted.
func ValidateCreate(p models.ProfilePatch) error {
	return collect(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.By(notBlank)),
		validation.Field(&p.FrontAngle, required, within(AngleBounds)),
		validation.Field(&p.BackAngle, required, within(AngleBounds)),
		validation.Field(&p.StanceWidth, required, within(StanceWidthBounds)),
		validation.Field(&p.Setback, required, within(SetbackBounds)),
		validation.Field(&p.BootSize, required, within(BootSizeBounds)),
		validation.Field(&p.RiderWeight, required, within(RiderWeightBounds)),
		validation.Field(&p.RiderHeight, required, within(RiderHeightBounds)),
		validation.Field(&p.BoardType, validation.Required, oneOf(boardTypes)),
		validation.Field(&p.Stance, validation.NilOrNotEmpty, oneOf(stances)),
		validation.Field(&p.HighbackHeight, within(HighbackHeightBounds)),
		validation.Field(&p.BindingStiffness, within(BindingStiffnessBounds)),
	))
}

// ValidatePatch checks only the fields present in a partial update.
func ValidatePatch(p models.ProfilePatch) error {
	return collect(validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.By(notBlank)),
		validation.Field(&p.FrontAngle, within(AngleBounds)),
		validation.Field(&p.BackAngle, within(AngleBounds)),
		validation.Field(&p.StanceWidth, within(StanceWidthBounds)),
		validation.Field(&p.Setback, within(SetbackBounds)),
		validation.Field(&p.BootSize, within(BootSizeBounds)),
		validation.Field(&p.RiderWeight, within(RiderWeightBounds)),
		validation.Field(&p.RiderHeight, within(RiderHeightBounds)),
		validation.Field(&p.BoardType, validation.NilOrNotEmpty, oneOf(boardTypes)),
		validation.Field(&p.Stance, validation.NilOrNotEmpty, oneOf(stances)),
		validation.Field(&p.HighbackHeight, within(HighbackHeightBounds)),
		validation.Field(&p.BindingStiffness, within(BindingStiffnessBounds)),
	))
}

// ValidateParams checks render parameters with the same bounds as profiles.
func ValidateParams(in geometry.ParamsInput) error {
	return collect(validation.ValidateStruct(&in,
		validation.Field(&in.FrontAngle, within(AngleBounds)),
		validation.Field(&in.BackAngle, within(AngleBounds)),
		validation.Field(&in.StanceWidth, within(StanceWidthBounds)),
		validation.Field(&in.Setback, within(SetbackBounds)),
		validation.Field(&in.Stance, oneOf(stances)),
	))
}

func ValidateLayout(in geometry.LayoutInput) error {
	return collect(validation.ValidateStruct(&in,
		validation.Field(&in.Front, oneOf(shapes)),
		validation.Field(&in.Back, oneOf(shapes)),
	))
}

var required = validation.NotNil.Error("is required")

func oneOf(values []any) validation.Rule {
	names := make([]string, 0, len(values))
	for _, value := range values {
		names = append(names, fmt.Sprint(value))
	}
	return validation.In(values...).Error("must be one of: " + strings.Join(names, ", "))
}

func notBlank(value any) error {
	text, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if s, ok := text.(string); ok && s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "must not be blank")
	}
	return nil
}

// rangeRule is an inclusive range check. Unlike validation.Min/Max it does not
// skip zero values.
type rangeRule struct {
	bounds Bounds
}

func within(bounds Bounds) validation.Rule {
	return rangeRule{bounds: bounds}
}

func (r rangeRule) Validate(value any) error {
	raw, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	var number float64
	switch v := raw.(type) {
	case float64:
		number = v
	case int:
		number = float64(v)
	default:
		return validation.NewError("validation_not_a_number", "must be a number")
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return validation.NewError("validation_not_finite", "must be a finite number")
	}
	if !r.bounds.Contains(number) {
		return validation.NewError("validation_out_of_range", "must be between {{.min}} and {{.max}}").
			SetParams(map[string]any{"min": r.bounds.Min, "max": r.bounds.Max})
	}
	return nil
}

func collect(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	fields := make(FieldErrors, 0, len(errs))
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		fields = append(fields, FieldError{Field: field, Message: fieldErr.Error()})
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}
