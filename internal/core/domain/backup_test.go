package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

func TestBackup_Validate(t *testing.T) {
	identity := func(id int64, name string) *domain.Identity {
		return &domain.Identity{ID: id, Name: name}
	}
	habit := func(links []int64, skipped ...int) *domain.Habit {
		return &domain.Habit{
			Name:             "Courir",
			Type:             domain.HabitTypeStart,
			TotalDays:        3,
			LinkedIdentities: links,
			Progress:         []bool{true, false, true},
			SkippedDays:      skipped,
		}
	}

	tests := []struct {
		name   string
		backup domain.Backup
		want   error
	}{
		{
			name:   "Success: Habit linked to a carried identity",
			backup: domain.Backup{Identities: []*domain.Identity{identity(4, "Athlète")}, Habits: []*domain.Habit{habit([]int64{4}, 2)}},
		},
		{
			name:   "Success: Identities only",
			backup: domain.Backup{Identities: []*domain.Identity{identity(1, "Lecteur")}},
		},
		{
			name: "Error: Empty backup",
			want: domain.ErrEmptyBackup,
		},
		{
			name:   "Error: Dangling link",
			backup: domain.Backup{Habits: []*domain.Habit{habit([]int64{9})}},
			want:   domain.ErrIdentityNotFound,
		},
		{
			name:   "Error: Skipped day out of range",
			backup: domain.Backup{Habits: []*domain.Habit{habit(nil, 3)}},
			want:   domain.ErrDayOutOfRange,
		},
		{
			name:   "Error: Invalid habit",
			backup: domain.Backup{Habits: []*domain.Habit{{Name: "X", Type: "sometimes", TotalDays: 1}}},
			want:   domain.ErrInvalidHabitType,
		},
		{
			name:   "Error: Invalid identity",
			backup: domain.Backup{Identities: []*domain.Identity{identity(1, "")}},
			want:   domain.ErrIdentityNameEmpty,
		},
		{
			name:   "Error: Null habit entry",
			backup: domain.Backup{Habits: []*domain.Habit{nil}},
			want:   domain.ErrHabitNameEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.backup.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
