package analytics

import "github.com/bossygit/vibes-arc-sub000/internal/core/domain"

// IdentityScore is the completion percentage over every habit linked to the
// identity, each habit's whole record weighted by its length.
func IdentityScore(identityID int64, habits []*domain.Habit) int {
	totalDays, completedDays := 0, 0

	for _, h := range habits {
		if !h.IsLinkedTo(identityID) {
			continue
		}
		totalDays += h.TotalDays
		completedDays += h.CompletedCount()
	}

	return percent(completedDays, totalDays)
}
