package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/saeid-a/BindingStudio/internal/models"
)

// MemoryProfileRepository keeps profiles in process memory. Ids start at 1,
// increase monotonically and are never reused. List returns insertion order.
type MemoryProfileRepository struct {
	nextID atomic.Int64
	now    func() time.Time

	mu       sync.RWMutex
	profiles map[int64]models.BindingProfile
	order    []int64
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		now:      time.Now,
		profiles: make(map[int64]models.BindingProfile),
	}
}

func (r *MemoryProfileRepository) Create(_ context.Context, fields models.ProfileFields) (*models.BindingProfile, error) {
	id := r.nextID.Add(1)
	profile := models.NewBindingProfile(id, fields, r.now().UTC())

	r.mu.Lock()
	r.profiles[id] = profile
	r.order = append(r.order, id)
	r.mu.Unlock()

	return copyProfile(profile), nil
}

func (r *MemoryProfileRepository) Get(_ context.Context, id int64) (*models.BindingProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyProfile(profile), nil
}

func (r *MemoryProfileRepository) List(_ context.Context) ([]models.BindingProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]models.BindingProfile, 0, len(r.order))
	for _, id := range r.order {
		profiles = append(profiles, *copyProfile(r.profiles[id]))
	}
	return profiles, nil
}

func (r *MemoryProfileRepository) Update(_ context.Context, id int64, patch models.ProfilePatch) (*models.BindingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&profile)
	profile.LastModified = r.now().UTC()
	r.profiles[id] = profile

	return copyProfile(profile), nil
}

func (r *MemoryProfileRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return false, nil
	}
	delete(r.profiles, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// copyProfile detaches the optional pointer fields so callers cannot mutate
// stored state.
func copyProfile(profile models.BindingProfile) *models.BindingProfile {
	if profile.HighbackHeight != nil {
		value := *profile.HighbackHeight
		profile.HighbackHeight = &value
	}
	if profile.BindingStiffness != nil {
		value := *profile.BindingStiffness
		profile.BindingStiffness = &value
	}
	return &profile
}
