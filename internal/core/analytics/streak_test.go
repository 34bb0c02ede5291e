package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bossygit/vibes-arc-sub000/internal/core/analytics"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var testCal = domain.NewCalendar(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC)

func seq(s string) []bool {
	out := make([]bool, len(s))
	for i, c := range s {
		out[i] = c == 'T'
	}
	return out
}

func TestAnalyzeStreaks(t *testing.T) {
	t.Run("Scenario: leading run, longer later run, one break", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("TTFTTT"), 0, testCal)

		assert.Equal(t, 2, stats.CurrentStreak)
		assert.Equal(t, 3, stats.LongestStreak)
		assert.Equal(t, 1, stats.Breaks)
		require.Len(t, stats.Streaks, 2)
		assert.Equal(t, 2, stats.Streaks[0].Length)
		assert.Equal(t, 3, stats.Streaks[1].Length)
		assert.Equal(t, "2024-01-01", stats.Streaks[0].StartDate)
		assert.Equal(t, "2024-01-02", stats.Streaks[0].EndDate)
		assert.Equal(t, "2024-01-04", stats.Streaks[1].StartDate)
		assert.Equal(t, "2024-01-06", stats.Streaks[1].EndDate)
	})

	t.Run("Scenario: single recovery gap is the average", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("TTTFFFTTTT"), 0, testCal)

		assert.Equal(t, []int{3}, stats.RecoveryGaps)
		require.NotNil(t, stats.AvgRecoveryDays)
		assert.Equal(t, 3, *stats.AvgRecoveryDays)
	})

	t.Run("Edge Case: empty record", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(nil, 0, testCal)

		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 0, stats.LongestStreak)
		assert.Equal(t, 0, stats.Breaks)
		assert.Empty(t, stats.Streaks)
		assert.Nil(t, stats.AvgRecoveryDays)
	})

	t.Run("Edge Case: no completions", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("FFFF"), 0, testCal)

		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 0, stats.LongestStreak)
		assert.NotNil(t, stats.Streaks)
		assert.Empty(t, stats.Streaks)
		assert.Nil(t, stats.AvgRecoveryDays)
	})

	t.Run("Edge Case: record starting with a miss has no current streak", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("FTTT"), 0, testCal)

		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 3, stats.LongestStreak)
		assert.Equal(t, 0, stats.Breaks, "a run reaching the end of the record is not a break")
	})

	t.Run("Edge Case: single completion has no average gap", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("FFTFF"), 0, testCal)
		assert.Nil(t, stats.AvgRecoveryDays)
	})

	t.Run("Edge Case: consecutive completions average zero", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("TTT"), 0, testCal)
		require.NotNil(t, stats.AvgRecoveryDays)
		assert.Equal(t, 0, *stats.AvgRecoveryDays)
		assert.Empty(t, stats.RecoveryGaps)
	})

	t.Run("Success: average rounds half up", func(t *testing.T) {
		// gaps 1 and 2 -> 1.5 -> 2
		stats := analytics.AnalyzeStreaks(seq("TFTFFT"), 0, testCal)
		assert.Equal(t, []int{1, 2}, stats.RecoveryGaps)
		require.NotNil(t, stats.AvgRecoveryDays)
		assert.Equal(t, 2, *stats.AvgRecoveryDays)
		assert.Equal(t, 2, stats.Breaks)
	})

	t.Run("Success: origin shifts streak dates", func(t *testing.T) {
		stats := analytics.AnalyzeStreaks(seq("TT"), 10, testCal)
		require.Len(t, stats.Streaks, 1)
		assert.Equal(t, 10, stats.Streaks[0].StartDay)
		assert.Equal(t, "2024-01-11", stats.Streaks[0].StartDate)
		assert.Equal(t, "2024-01-12", stats.Streaks[0].EndDate)
	})
}

func TestAnalyzeStreaksWithSkips(t *testing.T) {
	t.Run("Success: skipped day bridges a run without adding to it", func(t *testing.T) {
		stats := analytics.AnalyzeStreaksWithSkips(seq("TTFTT"), []int{2}, 0, testCal)

		assert.Equal(t, 4, stats.CurrentStreak)
		assert.Equal(t, 4, stats.LongestStreak)
		assert.Equal(t, 0, stats.Breaks)
		require.Len(t, stats.Streaks, 1)
		assert.Equal(t, "2024-01-01", stats.Streaks[0].StartDate)
		assert.Equal(t, "2024-01-05", stats.Streaks[0].EndDate)
	})

	t.Run("Success: skipped days are not counted inside recovery gaps", func(t *testing.T) {
		stats := analytics.AnalyzeStreaksWithSkips(seq("TFFFT"), []int{1, 2}, 0, testCal)

		assert.Equal(t, []int{1}, stats.RecoveryGaps)
		assert.Equal(t, 1, stats.Breaks)
	})

	t.Run("Success: a completed but skipped day does not extend a run", func(t *testing.T) {
		stats := analytics.AnalyzeStreaksWithSkips(seq("TTT"), []int{1}, 0, testCal)
		assert.Equal(t, 2, stats.LongestStreak)
	})

	t.Run("Edge Case: leading skips do not cancel the current streak", func(t *testing.T) {
		stats := analytics.AnalyzeStreaksWithSkips(seq("FTT"), []int{0}, 0, testCal)
		assert.Equal(t, 2, stats.CurrentStreak)
	})

	t.Run("Edge Case: everything skipped", func(t *testing.T) {
		stats := analytics.AnalyzeStreaksWithSkips(seq("TT"), []int{0, 1}, 0, testCal)
		assert.Equal(t, 0, stats.LongestStreak)
		assert.Empty(t, stats.Streaks)
	})

	t.Run("Invariant: nil skips match the plain analysis", func(t *testing.T) {
		progress := seq("TFTTFFTTTF")
		assert.Equal(t,
			analytics.AnalyzeStreaks(progress, 3, testCal),
			analytics.AnalyzeStreaksWithSkips(progress, nil, 3, testCal))
	})
}

func TestAnalyzeStreaks_Invariants(t *testing.T) {
	// Every boolean sequence up to length 10.
	for n := 0; n <= 10; n++ {
		for mask := 0; mask < 1<<n; mask++ {
			progress := make([]bool, n)
			for i := 0; i < n; i++ {
				progress[i] = mask&(1<<i) != 0
			}

			stats := analytics.AnalyzeStreaks(progress, 0, testCal)

			if stats.LongestStreak < stats.CurrentStreak {
				t.Fatalf("longest < current for %v", progress)
			}

			total := 0
			for _, s := range stats.Streaks {
				total += s.Length
			}
			if total > n {
				t.Fatalf("streak lengths exceed record for %v", progress)
			}

			if len(stats.Streaks) > 0 && stats.Breaks > len(stats.Streaks) {
				t.Fatalf("more breaks than runs for %v", progress)
			}
		}
	}
}
