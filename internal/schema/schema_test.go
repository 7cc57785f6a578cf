package schema

import (
	"errors"
	"math"
	"testing"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/stretchr/testify/require"
)

func ptr[T any](value T) *T {
	return &value
}

func validCreateBody() models.ProfilePatch {
	return models.ProfilePatch{
		Name:        ptr("Park"),
		FrontAngle:  ptr(15.0),
		BackAngle:   ptr(-15.0),
		StanceWidth: ptr(50.0),
		Setback:     ptr(0.0),
		BootSize:    ptr(9.0),
		RiderWeight: ptr(70.0),
		RiderHeight: ptr(175.0),
		BoardType:   ptr("standard"),
		Stance:      ptr("regular"),
	}
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fields FieldErrors
	require.True(t, errors.As(err, &fields), "expected FieldErrors, got %v", err)
	return fields
}

func TestValidateCreateAcceptsValidBody(t *testing.T) {
	require.NoError(t, ValidateCreate(validCreateBody()))

	body := validCreateBody()
	body.Stance = nil
	body.HighbackHeight = ptr(5.0)
	body.BindingStiffness = ptr(5)
	require.NoError(t, ValidateCreate(body))
}

func TestValidateCreateFrontAngleBounds(t *testing.T) {
	body := validCreateBody()
	body.FrontAngle = ptr(50.0)

	fields := fieldErrors(t, ValidateCreate(body))
	require.Len(t, fields, 1)
	require.Equal(t, "frontAngle", fields[0].Field)
	require.Equal(t, "must be between -45 and 45", fields[0].Message)

	body.FrontAngle = ptr(30.0)
	require.NoError(t, ValidateCreate(body))
}

func TestValidateCreateDoesNotSkipZeroValues(t *testing.T) {
	body := validCreateBody()
	body.RiderWeight = ptr(0.0)
	body.BindingStiffness = ptr(0)

	fields := fieldErrors(t, ValidateCreate(body))
	require.True(t, fields.Has("riderWeight"))
	require.True(t, fields.Has("bindingStiffness"))
}

func TestValidateCreateRequiresFields(t *testing.T) {
	fields := fieldErrors(t, ValidateCreate(models.ProfilePatch{}))

	for _, field := range []string{"name", "frontAngle", "backAngle", "stanceWidth", "setback", "bootSize", "riderWeight", "riderHeight", "boardType"} {
		require.True(t, fields.Has(field), "expected error for %s", field)
	}
	require.False(t, fields.Has("stance"))
	require.False(t, fields.Has("highbackHeight"))
}

func TestValidateCreateRejectsBadEnumsAndBlankName(t *testing.T) {
	body := validCreateBody()
	body.Name = ptr("   ")
	body.BoardType = ptr("huge")
	body.Stance = ptr("switch")

	fields := fieldErrors(t, ValidateCreate(body))
	require.Equal(t, []string{"boardType", "name", "stance"}, []string{fields[0].Field, fields[1].Field, fields[2].Field})
	require.Equal(t, "must be one of: standard, wide", fields[0].Message)
}

func TestValidatePatchChecksOnlyPresentFields(t *testing.T) {
	require.NoError(t, ValidatePatch(models.ProfilePatch{}))
	require.NoError(t, ValidatePatch(models.ProfilePatch{Setback: ptr(-10.0)}))

	fields := fieldErrors(t, ValidatePatch(models.ProfilePatch{StanceWidth: ptr(101.0), BoardType: ptr("")}))
	require.True(t, fields.Has("stanceWidth"))
	require.True(t, fields.Has("boardType"))
	require.Len(t, fields, 2)
}

func TestValidateParams(t *testing.T) {
	require.NoError(t, ValidateParams(geometry.ParamsInput{}))
	require.NoError(t, ValidateParams(geometry.ParamsInput{FrontAngle: ptr(45.0), Stance: ptr("goofy")}))

	fields := fieldErrors(t, ValidateParams(geometry.ParamsInput{
		BackAngle: ptr(math.NaN()),
		Setback:   ptr(11.0),
		Stance:    ptr("sideways"),
	}))
	require.True(t, fields.Has("backAngle"))
	require.True(t, fields.Has("setback"))
	require.True(t, fields.Has("stance"))
}

func TestValidateLayout(t *testing.T) {
	require.NoError(t, ValidateLayout(geometry.LayoutInput{Front: ptr("raster"), Back: ptr("vector")}))

	fields := fieldErrors(t, ValidateLayout(geometry.LayoutInput{Back: ptr("svg")}))
	require.True(t, fields.Has("back"))
}
