package analytics

import "github.com/bossygit/vibes-arc-sub000/internal/core/domain"

// badgeTiers is ordered by ascending MinDays.
var badgeTiers = []domain.Badge{
	{ID: "spark", Name: "Étincelle", MinDays: 3, Icon: "✨"},
	{ID: "week", Name: "Semaine tenue", MinDays: 7, Icon: "🔥"},
	{ID: "anchor", Name: "Ancrage 21", MinDays: 21, Icon: "⚓"},
	{ID: "compass", Name: "Cap des 45", MinDays: 45, Icon: "🧭"},
	{ID: "identity", Name: "Identité forgée", MinDays: 60, Icon: "🏆"},
}

func BadgeTiers() []domain.Badge {
	out := make([]domain.Badge, len(badgeTiers))
	copy(out, badgeTiers)
	return out
}

// ResolveBadge returns the highest tier a streak of the given length qualifies for.
func ResolveBadge(streakLength int) (domain.Badge, bool) {
	for i := len(badgeTiers) - 1; i >= 0; i-- {
		if badgeTiers[i].MinDays <= streakLength {
			return badgeTiers[i], true
		}
	}
	return domain.Badge{}, false
}

// NextBadge returns the first tier not yet reached and how many more days it needs.
func NextBadge(streakLength int) (domain.Badge, int, bool) {
	for _, tier := range badgeTiers {
		if tier.MinDays > streakLength {
			return tier, tier.MinDays - streakLength, true
		}
	}
	return domain.Badge{}, 0, false
}

func unlockedTiers(streakLength int) int {
	count := 0
	for _, tier := range badgeTiers {
		if tier.MinDays <= streakLength {
			count++
		}
	}
	return count
}
