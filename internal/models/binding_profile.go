package models

import "time"

const (
	StanceRegular = "regular"
	StanceGoofy   = "goofy"

	BoardTypeStandard = "standard"
	BoardTypeWide     = "wide"
)

type BindingProfile struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	FrontAngle       float64   `json:"frontAngle"`
	BackAngle        float64   `json:"backAngle"`
	StanceWidth      float64   `json:"stanceWidth"`
	Setback          float64   `json:"setback"`
	BootSize         float64   `json:"bootSize"`
	RiderWeight      float64   `json:"riderWeight"`
	RiderHeight      float64   `json:"riderHeight"`
	BoardType        string    `json:"boardType"`
	HighbackHeight   *float64  `json:"highbackHeight,omitempty"`
	BindingStiffness *int      `json:"bindingStiffness,omitempty"`
	Stance           string    `json:"stance"`
	LastModified     time.Time `json:"lastModified"`
}

// ProfileFields is everything a caller supplies when creating a profile.
// The store assigns ID and LastModified.
type ProfileFields struct {
	Name             string
	FrontAngle       float64
	BackAngle        float64
	StanceWidth      float64
	Setback          float64
	BootSize         float64
	RiderWeight      float64
	RiderHeight      float64
	BoardType        string
	HighbackHeight   *float64
	BindingStiffness *int
	Stance           string
}

// DefaultProfileFields mirrors the initial state of the configurator form.
func DefaultProfileFields() ProfileFields {
	highback := 5.0
	stiffness := 5
	return ProfileFields{
		Name:             "",
		FrontAngle:       15,
		BackAngle:        -15,
		StanceWidth:      50,
		Setback:          0,
		BootSize:         9,
		RiderWeight:      70,
		RiderHeight:      175,
		BoardType:        BoardTypeStandard,
		HighbackHeight:   &highback,
		BindingStiffness: &stiffness,
		Stance:           StanceRegular,
	}
}

// ProfilePatch is the wire shape of create and update bodies. Nil means absent.
type ProfilePatch struct {
	Name             *string  `json:"name"`
	FrontAngle       *float64 `json:"frontAngle"`
	BackAngle        *float64 `json:"backAngle"`
	StanceWidth      *float64 `json:"stanceWidth"`
	Setback          *float64 `json:"setback"`
	BootSize         *float64 `json:"bootSize"`
	RiderWeight      *float64 `json:"riderWeight"`
	RiderHeight      *float64 `json:"riderHeight"`
	BoardType        *string  `json:"boardType"`
	HighbackHeight   *float64 `json:"highbackHeight"`
	BindingStiffness *int     `json:"bindingStiffness"`
	Stance           *string  `json:"stance"`
}

// Fields converts a validated create body. Stance falls back to regular.
func (p ProfilePatch) Fields() ProfileFields {
	fields := ProfileFields{
		Name:             deref(p.Name),
		FrontAngle:       deref(p.FrontAngle),
		BackAngle:        deref(p.BackAngle),
		StanceWidth:      deref(p.StanceWidth),
		Setback:          deref(p.Setback),
		BootSize:         deref(p.BootSize),
		RiderWeight:      deref(p.RiderWeight),
		RiderHeight:      deref(p.RiderHeight),
		BoardType:        deref(p.BoardType),
		HighbackHeight:   cloneptr(p.HighbackHeight),
		BindingStiffness: cloneptr(p.BindingStiffness),
		Stance:           deref(p.Stance),
	}
	if fields.Stance == "" {
		fields.Stance = StanceRegular
	}
	return fields
}

// Apply merges the present fields into profile. ID and LastModified are untouched.
func (p ProfilePatch) Apply(profile *BindingProfile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.FrontAngle != nil {
		profile.FrontAngle = *p.FrontAngle
	}
	if p.BackAngle != nil {
		profile.BackAngle = *p.BackAngle
	}
	if p.StanceWidth != nil {
		profile.StanceWidth = *p.StanceWidth
	}
	if p.Setback != nil {
		profile.Setback = *p.Setback
	}
	if p.BootSize != nil {
		profile.BootSize = *p.BootSize
	}
	if p.RiderWeight != nil {
		profile.RiderWeight = *p.RiderWeight
	}
	if p.RiderHeight != nil {
		profile.RiderHeight = *p.RiderHeight
	}
	if p.BoardType != nil {
		profile.BoardType = *p.BoardType
	}
	if p.HighbackHeight != nil {
		profile.HighbackHeight = cloneptr(p.HighbackHeight)
	}
	if p.BindingStiffness != nil {
		profile.BindingStiffness = cloneptr(p.BindingStiffness)
	}
	if p.Stance != nil {
		profile.Stance = *p.Stance
	}
}

// NewBindingProfile builds a stored record from fields.
func NewBindingProfile(id int64, fields ProfileFields, modified time.Time) BindingProfile {
	return BindingProfile{
		ID:               id,
		Name:             fields.Name,
		FrontAngle:       fields.FrontAngle,
		BackAngle:        fields.BackAngle,
		StanceWidth:      fields.StanceWidth,
		Setback:          fields.Setback,
		BootSize:         fields.BootSize,
		RiderWeight:      fields.RiderWeight,
		RiderHeight:      fields.RiderHeight,
		BoardType:        fields.BoardType,
		HighbackHeight:   cloneptr(fields.HighbackHeight),
		BindingStiffness: cloneptr(fields.BindingStiffness),
		Stance:           fields.Stance,
		LastModified:     modified,
	}
}

// MirrorAngles negates both binding angles, which is what switching between
// regular and goofy does to an existing setup.
func MirrorAngles(frontAngle, backAngle float64) (float64, float64) {
	return 0 - frontAngle, 0 - backAngle
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}
	return *value
}

func cloneptr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
