package services

import (
	"context"

	"github.com/bossygit/vibes-arc-sub000/internal/core/analytics"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

type HabitService struct {
	repo         domain.HabitRepository
	identityRepo domain.IdentityRepository
	cal          domain.Calendar
}

func NewHabitService(repo domain.HabitRepository, identityRepo domain.IdentityRepository, cal domain.Calendar) *HabitService {
	return &HabitService{
		repo:         repo,
		identityRepo: identityRepo,
		cal:          cal,
	}
}

type CreateHabitInput struct {
	Name          string
	Type          string
	TotalDays     int
	StartDayIndex int
	Identities    []int64
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Type, input.TotalDays, input.StartDayIndex, input.Identities)
	if err != nil {
		return nil, err
	}

	if err := s.ensureIdentities(ctx, habit.LinkedIdentities); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	return s.repo.List(ctx)
}

func (s *HabitService) Get(ctx context.Context, id int64) (*domain.Habit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *HabitService) Rename(ctx context.Context, id int64, name string) (*domain.Habit, error) {
	return s.mutate(ctx, id, func(h *domain.Habit) error {
		return h.Rename(name)
	})
}

// Toggle flips completion of a habit-local day.
func (s *HabitService) Toggle(ctx context.Context, id int64, day int) (*domain.Habit, error) {
	return s.mutate(ctx, id, func(h *domain.Habit) error {
		return h.Toggle(day)
	})
}

// Skip flips the skipped state of a habit-local day.
func (s *HabitService) Skip(ctx context.Context, id int64, day int) (*domain.Habit, error) {
	return s.mutate(ctx, id, func(h *domain.Habit) error {
		return h.ToggleSkip(day)
	})
}

// LinkIdentities replaces the habit's identity links.
func (s *HabitService) LinkIdentities(ctx context.Context, id int64, identities []int64) (*domain.Habit, error) {
	if err := s.ensureIdentities(ctx, identities); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(h *domain.Habit) error {
		return h.LinkIdentities(identities)
	})
}

func (s *HabitService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// Stats analyses the habit's whole record.
func (s *HabitService) Stats(ctx context.Context, id int64) (*domain.HabitStats, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := analytics.HabitStatsFor(habit, s.cal)
	return &stats, nil
}

func (s *HabitService) mutate(ctx context.Context, id int64, apply func(h *domain.Habit) error) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(habit); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ensureIdentities(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return domain.ErrInvalidIdentityRef
		}
		if _, err := s.identityRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
