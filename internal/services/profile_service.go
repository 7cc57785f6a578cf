package services

import (
	"context"
	"fmt"

	"github.com/saeid-a/BindingStudio/internal/metrics"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/schema"
)

const (
	EventProfileCreated = "profile.created"
	EventProfileUpdated = "profile.updated"
	EventProfileDeleted = "profile.deleted"
)

type ProfileStore interface {
	Create(ctx context.Context, fields models.ProfileFields) (*models.BindingProfile, error)
	Get(ctx context.Context, id int64) (*models.BindingProfile, error)
	List(ctx context.Context) ([]models.BindingProfile, error)
	Update(ctx context.Context, id int64, patch models.ProfilePatch) (*models.BindingProfile, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ProfileEvent struct {
	Type      string                 `json:"type"`
	ProfileID int64                  `json:"profileId"`
	Profile   *models.BindingProfile `json:"profile,omitempty"`
}

type ProfileNotifier interface {
	Notify(event ProfileEvent)
}

// UpdateOptions tunes a profile update.
type UpdateOptions struct {
	// MirrorOnStanceChange negates both angles when the patch switches stance.
	MirrorOnStanceChange bool
}

type ProfileService struct {
	store    ProfileStore
	notifier ProfileNotifier
}

func NewProfileService(store ProfileStore, notifier ProfileNotifier) *ProfileService {
	return &ProfileService{store: store, notifier: notifier}
}

func (s *ProfileService) List(ctx context.Context) ([]models.BindingProfile, error) {
	profiles, err := s.store.List(ctx)
	record("list", err)
	return profiles, err
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*models.BindingProfile, error) {
	profile, err := s.store.Get(ctx, id)
	record("get", err)
	return profile, err
}

// Create validates a full profile body and stores it. Validation failures wrap
// both ErrInvalidInput and schema.FieldErrors.
func (s *ProfileService) Create(ctx context.Context, body models.ProfilePatch) (*models.BindingProfile, error) {
	if err := schema.ValidateCreate(body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	profile, err := s.store.Create(ctx, body.Fields())
	record("create", err)
	if err != nil {
		return nil, err
	}

	s.notify(EventProfileCreated, profile.ID, profile)
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, id int64, patch models.ProfilePatch, opts UpdateOptions) (*models.BindingProfile, error) {
	if err := schema.ValidatePatch(patch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if opts.MirrorOnStanceChange && patch.Stance != nil {
		current, err := s.store.Get(ctx, id)
		if err != nil {
			record("update", err)
			return nil, err
		}
		if *patch.Stance != current.Stance {
			patch = mirrorPatch(patch, current)
		}
	}

	profile, err := s.store.Update(ctx, id, patch)
	record("update", err)
	if err != nil {
		return nil, err
	}

	s.notify(EventProfileUpdated, profile.ID, profile)
	return profile, nil
}

func (s *ProfileService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	record("delete", err)
	if err != nil {
		return false, err
	}

	if deleted {
		s.notify(EventProfileDeleted, id, nil)
	}
	return deleted, nil
}

func (s *ProfileService) notify(eventType string, id int64, profile *models.BindingProfile) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ProfileEvent{Type: eventType, ProfileID: id, Profile: profile})
}

// mirrorPatch negates the angles the patch would leave on the profile.
func mirrorPatch(patch models.ProfilePatch, current *models.BindingProfile) models.ProfilePatch {
	front, back := current.FrontAngle, current.BackAngle
	if patch.FrontAngle != nil {
		front = *patch.FrontAngle
	}
	if patch.BackAngle != nil {
		back = *patch.BackAngle
	}
	front, back = models.MirrorAngles(front, back)
	patch.FrontAngle = &front
	patch.BackAngle = &back
	return patch
}

func record(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ProfileOperations.WithLabelValues(operation, outcome).Inc()
}
