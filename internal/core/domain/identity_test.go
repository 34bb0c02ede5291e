package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

func TestNewIdentity(t *testing.T) {
	t.Run("Success: Trims and keeps optional fields", func(t *testing.T) {
		i, err := domain.NewIdentity(" Athlète ", " Bouger ", "#0F0")
		require.NoError(t, err)
		assert.Equal(t, "Athlète", i.Name)
		assert.Equal(t, "Bouger", i.Description)
		assert.Equal(t, "#0F0", i.Color)
	})

	t.Run("Success: Color is optional", func(t *testing.T) {
		_, err := domain.NewIdentity("Lecteur", "", "")
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		iname string
		desc  string
		color string
		want  error
	}{
		{"Error: Empty name", "", "", "", domain.ErrIdentityNameEmpty},
		{"Error: Name too long", strings.Repeat("x", 101), "", "", domain.ErrIdentityNameTooLong},
		{"Error: Description too long", "Athlète", strings.Repeat("x", 501), "", domain.ErrIdentityDescTooLong},
		{"Error: Named color", "Athlète", "", "green", domain.ErrInvalidColor},
		{"Error: Missing hash", "Athlète", "", "00FF00", domain.ErrInvalidColor},
		{"Error: Four digits", "Athlète", "", "#00FF", domain.ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewIdentity(tt.iname, tt.desc, tt.color)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIdentity_Update(t *testing.T) {
	i, _ := domain.NewIdentity("Athlète", "", "")
	before := i.UpdatedAt

	require.NoError(t, i.Update("Coureur", "Trois sorties", "#AABBCC"))
	assert.Equal(t, "Coureur", i.Name)
	assert.False(t, i.UpdatedAt.Before(before))

	assert.ErrorIs(t, i.Update("", "", ""), domain.ErrIdentityNameEmpty)
	assert.Equal(t, "Coureur", i.Name)
}
