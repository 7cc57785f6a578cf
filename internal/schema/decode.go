package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/saeid-a/BindingStudio/internal/models"
)

// patchField binds a JSON key of a profile body to its destination.
type patchField struct {
	name    string
	dst     any
	message string
}

func patchFields(p *models.ProfilePatch) []patchField {
	const (
		mustBeString  = "must be a string"
		mustBeNumber  = "must be a number"
		mustBeInteger = "must be an integer"
	)
	return []patchField{
		{"name", &p.Name, mustBeString},
		{"frontAngle", &p.FrontAngle, mustBeNumber},
		{"backAngle", &p.BackAngle, mustBeNumber},
		{"stanceWidth", &p.StanceWidth, mustBeNumber},
		{"setback", &p.Setback, mustBeNumber},
		{"bootSize", &p.BootSize, mustBeNumber},
		{"riderWeight", &p.RiderWeight, mustBeNumber},
		{"riderHeight", &p.RiderHeight, mustBeNumber},
		{"boardType", &p.BoardType, mustBeString},
		{"highbackHeight", &p.HighbackHeight, mustBeNumber},
		{"bindingStiffness", &p.BindingStiffness, mustBeInteger},
		{"stance", &p.Stance, mustBeString},
	}
}

// DecodeProfilePatch parses a create or update body. A body that is not a JSON
// object is a plain error. Explicit nulls and values of the wrong JSON type are
// reported per field as FieldErrors. Unknown keys are ignored.
func DecodeProfilePatch(data []byte) (models.ProfilePatch, error) {
	var patch models.ProfilePatch

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return patch, fmt.Errorf("decode profile body: %w", err)
	}
	if raw == nil {
		return patch, fmt.Errorf("decode profile body: expected a JSON object")
	}

	var fields FieldErrors
	for _, field := range patchFields(&patch) {
		value, present := raw[field.name]
		if !present {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			fields = append(fields, FieldError{Field: field.name, Message: "must not be null"})
			continue
		}
		if err := json.Unmarshal(value, field.dst); err != nil {
			fields = append(fields, FieldError{Field: field.name, Message: field.message})
		}
	}

	if len(fields) > 0 {
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return models.ProfilePatch{}, fields
	}
	return patch, nil
}
