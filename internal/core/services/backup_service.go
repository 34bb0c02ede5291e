package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

type BackupService struct {
	habitRepo    domain.HabitRepository
	identityRepo domain.IdentityRepository
	tx           domain.Transactor
}

func NewBackupService(habitRepo domain.HabitRepository, identityRepo domain.IdentityRepository) *BackupService {
	return &BackupService{
		habitRepo:    habitRepo,
		identityRepo: identityRepo,
	}
}

// WithTransactor makes Import write through a single transaction.
func (s *BackupService) WithTransactor(tx domain.Transactor) *BackupService {
	s.tx = tx
	return s
}

type ImportResult struct {
	Habits     int `json:"habits"`
	Identities int `json:"identities"`
}

// Import appends the backup's records. Repositories assign fresh ids, so identity
// links are remapped from backup ids to stored ids. Every record is validated and
// every identity name checked before the first write, so a rejected backup leaves
// the store as it was.
func (s *BackupService) Import(ctx context.Context, backup *domain.Backup) (*ImportResult, error) {
	if err := backup.Validate(); err != nil {
		return nil, err
	}

	identities := make([]*domain.Identity, 0, len(backup.Identities))
	for _, src := range backup.Identities {
		identity, err := domain.NewIdentity(src.Name, src.Description, src.Color)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}

	habits := make([]*domain.Habit, 0, len(backup.Habits))
	for _, src := range backup.Habits {
		habit, err := domain.NewHabit(src.Name, src.Type, src.TotalDays, src.StartDayIndex, nil)
		if err != nil {
			return nil, err
		}
		copy(habit.Progress, src.Progress)
		habit.SkippedDays = append([]int(nil), src.SkippedDays...)
		habit.NormalizeSkippedDays()
		habits = append(habits, habit)
	}

	write := func(habitRepo domain.HabitRepository, identityRepo domain.IdentityRepository) error {
		existing, err := identityRepo.List(ctx)
		if err != nil {
			return err
		}
		if err := checkIdentityNames(existing, identities); err != nil {
			return err
		}

		idMap := make(map[int64]int64, len(identities))
		for i, identity := range identities {
			if err := identityRepo.Create(ctx, identity); err != nil {
				return fmt.Errorf("import identity %q: %w", identity.Name, err)
			}
			idMap[backup.Identities[i].ID] = identity.ID
		}

		for i, habit := range habits {
			src := backup.Habits[i]
			if len(src.LinkedIdentities) > 0 {
				linked := make([]int64, 0, len(src.LinkedIdentities))
				for _, id := range src.LinkedIdentities {
					linked = append(linked, idMap[id])
				}
				if err := habit.LinkIdentities(linked); err != nil {
					return err
				}
			}
			if err := habitRepo.Create(ctx, habit); err != nil {
				return fmt.Errorf("import habit %q: %w", habit.Name, err)
			}
		}
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithinTx(ctx, write)
	} else {
		err = write(s.habitRepo, s.identityRepo)
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"habits":     len(habits),
		"identities": len(identities),
	}).Info("backup imported")

	return &ImportResult{Habits: len(habits), Identities: len(identities)}, nil
}

// checkIdentityNames rejects names already stored or repeated inside the backup,
// compared case-insensitively as the repositories do.
func checkIdentityNames(existing, incoming []*domain.Identity) error {
	taken := make(map[string]bool, len(existing)+len(incoming))
	for _, identity := range existing {
		taken[strings.ToLower(identity.Name)] = true
	}

	for _, identity := range incoming {
		key := strings.ToLower(identity.Name)
		if taken[key] {
			return fmt.Errorf("import identity %q: %w", identity.Name, domain.ErrIdentityExists)
		}
		taken[key] = true
	}
	return nil
}
