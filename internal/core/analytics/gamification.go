package analytics

import "github.com/bossygit/vibes-arc-sub000/internal/core/domain"

const (
	pointsPerCompletedDay = 10
	pointsPerBadge        = 50
)

// BuildGamification derives badges, identity scores and points from the
// snapshot. Badges use each habit's longest streak over its whole record.
func BuildGamification(habits []*domain.Habit, identities []*domain.Identity, cal domain.Calendar) domain.GamificationSnapshot {
	snap := domain.GamificationSnapshot{
		Habits:     make([]domain.HabitBadge, 0, len(habits)),
		Identities: make([]domain.IdentityScore, 0, len(identities)),
	}

	for _, h := range habits {
		stats := AnalyzeStreaksWithSkips(h.Record(), h.SkippedDays, h.StartDayIndex, cal)
		entry := HabitBadgeFor(h, stats.LongestStreak)

		unlocked := unlockedTiers(stats.LongestStreak)
		snap.UnlockedBadges += unlocked
		snap.TotalPoints += h.CompletedCount()*pointsPerCompletedDay + unlocked*pointsPerBadge
		snap.Habits = append(snap.Habits, entry)
	}

	for _, identity := range identities {
		snap.Identities = append(snap.Identities, domain.IdentityScore{
			IdentityID: identity.ID,
			Name:       identity.Name,
			Score:      IdentityScore(identity.ID, habits),
		})
	}

	return snap
}

func HabitBadgeFor(h *domain.Habit, longest int) domain.HabitBadge {
	entry := domain.HabitBadge{
		HabitID:       h.ID,
		Name:          h.Name,
		LongestStreak: longest,
	}
	if badge, ok := ResolveBadge(longest); ok {
		entry.Badge = &badge
	}
	if next, days, ok := NextBadge(longest); ok {
		entry.NextBadge = &next
		entry.DaysToNext = days
	}
	return entry
}

// HabitStatsFor is the per-habit view over the habit's whole record.
func HabitStatsFor(h *domain.Habit, cal domain.Calendar) domain.HabitStats {
	stats := AnalyzeStreaksWithSkips(h.Record(), h.SkippedDays, h.StartDayIndex, cal)
	badge := HabitBadgeFor(h, stats.LongestStreak)
	completed := h.CompletedCount()

	return domain.HabitStats{
		HabitID:       h.ID,
		Name:          h.Name,
		CompletedDays: completed,
		TotalDays:     h.TotalDays,
		CompletionPct: percent(completed, h.TotalDays),
		Streaks:       stats,
		Badge:         badge.Badge,
		NextBadge:     badge.NextBadge,
		DaysToNext:    badge.DaysToNext,
	}
}
