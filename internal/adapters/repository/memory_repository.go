package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var (
	_ domain.HabitRepository    = (*InMemoryHabitRepository)(nil)
	_ domain.IdentityRepository = (*InMemoryIdentityRepository)(nil)
)

// Stored values are copies; callers never share slices with the store.
func cloneHabit(h *domain.Habit) *domain.Habit {
	clone := *h
	clone.Progress = append([]bool{}, h.Progress...)
	clone.LinkedIdentities = append([]int64{}, h.LinkedIdentities...)
	if h.SkippedDays != nil {
		clone.SkippedDays = append([]int{}, h.SkippedDays...)
	}
	return &clone
}

type InMemoryHabitRepository struct {
	store  map[int64]*domain.Habit
	nextID int64

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[int64]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	habit.ID = r.nextID
	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(habit), nil
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.store))
	for _, h := range r.store {
		habits = append(habits, cloneHabit(h))
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].ID < habits[j].ID
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryHabitRepository) UnlinkIdentity(ctx context.Context, identityID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.store {
		h.UnlinkIdentity(identityID)
	}
	return nil
}

type InMemoryIdentityRepository struct {
	store  map[int64]*domain.Identity
	nextID int64

	mu sync.RWMutex
}

func NewInMemoryIdentityRepository() *InMemoryIdentityRepository {
	return &InMemoryIdentityRepository{
		store: make(map[int64]*domain.Identity),
	}
}

func (r *InMemoryIdentityRepository) nameTaken(name string, exceptID int64) bool {
	for id, existing := range r.store {
		if id != exceptID && strings.EqualFold(existing.Name, name) {
			return true
		}
	}
	return false
}

func (r *InMemoryIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(identity.Name, 0) {
		return domain.ErrIdentityExists
	}

	r.nextID++
	identity.ID = r.nextID
	clone := *identity
	r.store[identity.ID] = &clone
	return nil
}

func (r *InMemoryIdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.store[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *identity
	return &clone, nil
}

func (r *InMemoryIdentityRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identities := make([]*domain.Identity, 0, len(r.store))
	for _, i := range r.store {
		clone := *i
		identities = append(identities, &clone)
	}

	sort.Slice(identities, func(a, b int) bool {
		return identities[a].ID < identities[b].ID
	})

	return identities, nil
}

func (r *InMemoryIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[identity.ID]; !ok {
		return domain.ErrIdentityNotFound
	}
	if r.nameTaken(identity.Name, identity.ID) {
		return domain.ErrIdentityExists
	}

	clone := *identity
	r.store[identity.ID] = &clone
	return nil
}

func (r *InMemoryIdentityRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrIdentityNotFound
	}

	delete(r.store, id)
	return nil
}
