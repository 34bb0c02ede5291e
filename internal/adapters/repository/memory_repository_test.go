package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

func TestInMemoryHabitRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryHabitRepository()

	first, _ := domain.NewHabit("Courir", "", 3, 0, []int64{1, 2})
	second, _ := domain.NewHabit("Lire", "", 3, 0, []int64{2})
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	t.Run("Success: Sequential ids and ordered list", func(t *testing.T) {
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Courir", list[0].Name)
	})

	t.Run("Success: Returned habits are copies", func(t *testing.T) {
		fetched, _ := repo.GetByID(ctx, first.ID)
		fetched.Progress[0] = true

		again, _ := repo.GetByID(ctx, first.ID)
		assert.False(t, again.Progress[0])
	})

	t.Run("Success: UnlinkIdentity", func(t *testing.T) {
		require.NoError(t, repo.UnlinkIdentity(ctx, 2))

		list, _ := repo.List(ctx)
		assert.Equal(t, []int64{1}, list[0].LinkedIdentities)
		assert.Empty(t, list[1].LinkedIdentities)
	})

	t.Run("Fail: Missing habit", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
		assert.ErrorIs(t, repo.Update(ctx, &domain.Habit{ID: 42}), domain.ErrHabitNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 42), domain.ErrHabitNotFound)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h, _ := domain.NewHabit("Parallèle", "", 1, 0, nil)
				assert.NoError(t, repo.Create(ctx, h))
				_, err := repo.List(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		list, _ := repo.List(ctx)
		assert.Len(t, list, 22)
	})
}

func TestInMemoryIdentityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryIdentityRepository()

	athlete, _ := domain.NewIdentity("Athlète", "", "")
	require.NoError(t, repo.Create(ctx, athlete))

	t.Run("Fail: Name is unique regardless of case", func(t *testing.T) {
		dup, _ := domain.NewIdentity("ATHLÈTE", "", "")
		// EqualFold handles the accented capital
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrIdentityExists)
	})

	t.Run("Success: Update keeps its own name", func(t *testing.T) {
		athlete.Description = "Bouger"
		assert.NoError(t, repo.Update(ctx, athlete))
	})

	t.Run("Fail: Rename onto another identity", func(t *testing.T) {
		reader, _ := domain.NewIdentity("Lecteur", "", "")
		require.NoError(t, repo.Create(ctx, reader))

		reader.Name = "athlète"
		assert.ErrorIs(t, repo.Update(ctx, reader), domain.ErrIdentityExists)
	})

	t.Run("Success: Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, athlete.ID))
		_, err := repo.GetByID(ctx, athlete.ID)
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)

		list, _ := repo.List(ctx)
		assert.Len(t, list, 1)
	})
}
