package services

import (
	"context"
	"errors"
	"testing"

	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/repository"
	"github.com/saeid-a/BindingStudio/internal/schema"
)

type recordingNotifier struct {
	events []ProfileEvent
}

func (n *recordingNotifier) Notify(event ProfileEvent) {
	n.events = append(n.events, event)
}

func ptr[T any](value T) *T {
	return &value
}

func validBody(name string) models.ProfilePatch {
	return models.ProfilePatch{
		Name:        ptr(name),
		FrontAngle:  ptr(15.0),
		BackAngle:   ptr(-15.0),
		StanceWidth: ptr(50.0),
		Setback:     ptr(0.0),
		BootSize:    ptr(9.0),
		RiderWeight: ptr(70.0),
		RiderHeight: ptr(175.0),
		BoardType:   ptr("standard"),
	}
}

func newTestProfileService() (*ProfileService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewProfileService(repository.NewMemoryProfileRepository(), notifier), notifier
}

func TestProfileServiceCreateDefaultsStance(t *testing.T) {
	service, notifier := newTestProfileService()

	profile, err := service.Create(context.Background(), validBody("Park"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if profile.Stance != models.StanceRegular {
		t.Fatalf("expected regular stance, got %q", profile.Stance)
	}
	if len(notifier.events) != 1 || notifier.events[0].Type != EventProfileCreated || notifier.events[0].ProfileID != profile.ID {
		t.Fatalf("expected created event, got %+v", notifier.events)
	}
}

func TestProfileServiceCreateRejectsInvalidBody(t *testing.T) {
	service, notifier := newTestProfileService()

	body := validBody("Park")
	body.FrontAngle = ptr(50.0)
	_, err := service.Create(context.Background(), body)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var fields schema.FieldErrors
	if !errors.As(err, &fields) || !fields.Has("frontAngle") {
		t.Fatalf("expected frontAngle field error, got %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("expected no events, got %+v", notifier.events)
	}

	profiles, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected nothing stored, got %d profiles", len(profiles))
	}
}

func TestProfileServiceUpdateMirrorsAnglesOnStanceChange(t *testing.T) {
	service, _ := newTestProfileService()
	ctx := context.Background()

	created, err := service.Create(ctx, validBody("Park"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := service.Update(ctx, created.ID, models.ProfilePatch{Stance: ptr("goofy")}, UpdateOptions{MirrorOnStanceChange: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Stance != "goofy" || updated.FrontAngle != -15 || updated.BackAngle != 15 {
		t.Fatalf("expected mirrored goofy setup, got %+v", updated)
	}

	// Same stance again leaves angles alone.
	updated, err = service.Update(ctx, created.ID, models.ProfilePatch{Stance: ptr("goofy")}, UpdateOptions{MirrorOnStanceChange: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FrontAngle != -15 || updated.BackAngle != 15 {
		t.Fatalf("expected unchanged angles, got %+v", updated)
	}

	// Angles supplied with the stance change are mirrored too.
	updated, err = service.Update(ctx, created.ID, models.ProfilePatch{Stance: ptr("regular"), FrontAngle: ptr(21.0)}, UpdateOptions{MirrorOnStanceChange: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FrontAngle != -21 || updated.BackAngle != -15 {
		t.Fatalf("expected mirrored angles, got %+v", updated)
	}
}

func TestProfileServiceUpdateWithoutMirror(t *testing.T) {
	service, notifier := newTestProfileService()
	ctx := context.Background()

	created, err := service.Create(ctx, validBody("Park"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := service.Update(ctx, created.ID, models.ProfilePatch{Stance: ptr("goofy")}, UpdateOptions{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FrontAngle != 15 || updated.BackAngle != -15 {
		t.Fatalf("expected angles untouched, got %+v", updated)
	}
	if last := notifier.events[len(notifier.events)-1]; last.Type != EventProfileUpdated {
		t.Fatalf("expected updated event, got %+v", last)
	}
}

func TestProfileServiceUpdateErrors(t *testing.T) {
	service, _ := newTestProfileService()
	ctx := context.Background()

	if _, err := service.Update(ctx, 99, models.ProfilePatch{Setback: ptr(1.0)}, UpdateOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Update(ctx, 99, models.ProfilePatch{Stance: ptr("goofy")}, UpdateOptions{MirrorOnStanceChange: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for mirror lookup, got %v", err)
	}
	if _, err := service.Update(ctx, 99, models.ProfilePatch{Setback: ptr(20.0)}, UpdateOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileServiceDeleteNotifiesOnlyOnRemoval(t *testing.T) {
	service, notifier := newTestProfileService()
	ctx := context.Background()

	created, err := service.Create(ctx, validBody("Park"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := service.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	deleted, err = service.Delete(ctx, created.ID)
	if err != nil || deleted {
		t.Fatalf("expected second delete to report false, got %v %v", deleted, err)
	}

	if len(notifier.events) != 2 || notifier.events[1].Type != EventProfileDeleted || notifier.events[1].Profile != nil {
		t.Fatalf("expected one created and one deleted event, got %+v", notifier.events)
	}
}

func TestProfileServiceWorksWithoutNotifier(t *testing.T) {
	service := NewProfileService(repository.NewMemoryProfileRepository(), nil)
	if _, err := service.Create(context.Background(), validBody("Park")); err != nil {
		t.Fatalf("Create: %v", err)
	}
}
