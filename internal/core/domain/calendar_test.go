package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

func TestCalendar_UTC(t *testing.T) {
	cal := domain.NewCalendar(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC), time.UTC)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cal.Epoch(), "epoch is truncated to midnight")

	tests := []struct {
		index int
		iso   string
	}{
		{0, "2024-01-01"},
		{1, "2024-01-02"},
		{59, "2024-02-29"},
		{366, "2025-01-01"},
		{-1, "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.iso, func(t *testing.T) {
			assert.Equal(t, tt.iso, cal.ISO(tt.index))
			assert.Equal(t, tt.index, cal.DayIndexForDate(cal.DateForDayIndex(tt.index)))
		})
	}

	t.Run("Edge Case: Late evening stays on the same day", func(t *testing.T) {
		assert.Equal(t, 9, cal.DayIndexForDate(time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)))
	})
}

func TestCalendar_DST(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	cal := domain.NewCalendar(time.Date(2024, 3, 1, 0, 0, 0, 0, paris), paris)

	// 2024-03-31 has 23 hours in Paris, 2024-10-27 has 25.
	assert.Equal(t, "2024-04-01", cal.ISO(31))
	assert.Equal(t, "2024-10-28", cal.ISO(241))

	assert.Equal(t, 31, cal.DayIndexForDate(time.Date(2024, 4, 1, 0, 30, 0, 0, paris)))
	assert.Equal(t, 241, cal.DayIndexForDate(time.Date(2024, 10, 28, 23, 0, 0, 0, paris)))

	t.Run("Edge Case: Instants are read in the calendar zone", func(t *testing.T) {
		// 23:30 UTC on March 31 is already April 1 in Paris
		instant := time.Date(2024, 3, 31, 23, 30, 0, 0, time.UTC)
		assert.Equal(t, 31, cal.DayIndexForDate(instant))
	})

	t.Run("Nil location defaults to UTC", func(t *testing.T) {
		utc := domain.NewCalendar(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)
		require.Equal(t, time.UTC, utc.Location())
	})
}
