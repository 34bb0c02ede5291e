// Package analytics turns habit completion records into streaks, badges,
// identity scores and periodic reports. Every function is pure: the calendar
// and "now" are passed in and nothing is cached between calls.
package analytics

import (
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

// AnalyzeStreaks computes streak statistics for a progress record whose first
// element sits on global day origin.
//
// CurrentStreak is the run that starts at the first tracked day and extends
// forward, not the run ending today.
func AnalyzeStreaks(progress []bool, origin int, cal domain.Calendar) domain.StreakStats {
	return AnalyzeStreaksWithSkips(progress, nil, origin, cal)
}

// AnalyzeStreaksWithSkips is AnalyzeStreaks with skipped days removed from the
// record first. A skipped day neither completes nor breaks a run and is not
// counted inside a recovery gap. Skipped indices are local to progress.
func AnalyzeStreaksWithSkips(progress []bool, skipped []int, origin int, cal domain.Calendar) domain.StreakStats {
	stats := domain.StreakStats{
		Streaks:      []domain.Streak{},
		RecoveryGaps: []int{},
	}

	kept := keptDays(len(progress), skipped)
	if len(kept) == 0 {
		return stats
	}

	runLen, runStart, runEnd := 0, 0, 0
	closeRun := func() {
		stats.Streaks = append(stats.Streaks, domain.Streak{
			Length:    runLen,
			StartDay:  origin + runStart,
			EndDay:    origin + runEnd,
			StartDate: cal.ISO(origin + runStart),
			EndDate:   cal.ISO(origin + runEnd),
		})
		if runLen > stats.LongestStreak {
			stats.LongestStreak = runLen
		}
		runLen = 0
	}

	var completions []int
	for pos, day := range kept {
		if progress[day] {
			if runLen == 0 {
				runStart = day
			}
			runLen++
			runEnd = day
			completions = append(completions, pos)
			continue
		}
		if runLen > 0 {
			closeRun()
			stats.Breaks++
		}
	}
	if runLen > 0 {
		closeRun()
	}

	if len(stats.Streaks) > 0 && stats.Streaks[0].StartDay == origin+kept[0] {
		stats.CurrentStreak = stats.Streaks[0].Length
	}

	if len(completions) >= 2 {
		for i := 1; i < len(completions); i++ {
			if gap := completions[i] - completions[i-1] - 1; gap > 0 {
				stats.RecoveryGaps = append(stats.RecoveryGaps, gap)
			}
		}
		avg := roundMean(stats.RecoveryGaps)
		stats.AvgRecoveryDays = &avg
	}

	return stats
}

// keptDays lists the indices of [0, n) that are not skipped, in order.
func keptDays(n int, skipped []int) []int {
	skip := make(map[int]bool, len(skipped))
	for _, s := range skipped {
		skip[s] = true
	}

	kept := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !skip[i] {
			kept = append(kept, i)
		}
	}
	return kept
}
