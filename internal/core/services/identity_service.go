package services

import (
	"context"

	"github.com/bossygit/vibes-arc-sub000/internal/core/analytics"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

type IdentityService struct {
	repo      domain.IdentityRepository
	habitRepo domain.HabitRepository
}

func NewIdentityService(repo domain.IdentityRepository, habitRepo domain.HabitRepository) *IdentityService {
	return &IdentityService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

type CreateIdentityInput struct {
	Name        string
	Description string
	Color       string
}

type UpdateIdentityInput struct {
	ID          int64
	Name        string
	Description string
	Color       string
}

// IdentityWithScore is an identity together with its weighted completion score.
type IdentityWithScore struct {
	*domain.Identity
	Score        int `json:"score"`
	LinkedHabits int `json:"linkedHabits"`
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *IdentityService) Create(ctx context.Context, input CreateIdentityInput) (*domain.Identity, error) {
	identity, err := domain.NewIdentity(input.Name, input.Description, input.Color)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (s *IdentityService) List(ctx context.Context) ([]IdentityWithScore, error) {
	identities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]IdentityWithScore, 0, len(identities))
	for _, identity := range identities {
		linked := 0
		for _, h := range habits {
			if h.IsLinkedTo(identity.ID) {
				linked++
			}
		}
		out = append(out, IdentityWithScore{
			Identity:     identity,
			Score:        analytics.IdentityScore(identity.ID, habits),
			LinkedHabits: linked,
		})
	}

	return out, nil
}

func (s *IdentityService) Update(ctx context.Context, input UpdateIdentityInput) (*domain.Identity, error) {
	identity, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	err = identity.Update(
		mergeString(input.Name, identity.Name),
		mergeString(input.Description, identity.Description),
		mergeString(input.Color, identity.Color),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}

// Delete removes the identity and every habit link pointing at it.
func (s *IdentityService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.habitRepo.UnlinkIdentity(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
