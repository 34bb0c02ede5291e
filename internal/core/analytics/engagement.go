package analytics

import (
	"fmt"
	"time"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

type EngagementInput struct {
	Identities  []*domain.Identity
	Habits      []*domain.Habit
	PeriodLabel string
	// TotalDays is the window length in global days starting at day 0.
	// Non-positive values fall back to domain.DefaultReportTotalDays.
	TotalDays int
	Calendar  domain.Calendar
	Now       time.Time
}

var frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

// BuildEngagementReport builds the periodic engagement report over global days
// [0, TotalDays).
func BuildEngagementReport(in EngagementInput) domain.EngagementReport {
	totalDays := in.TotalDays
	if totalDays <= 0 {
		totalDays = domain.DefaultReportTotalDays
	}

	daily := buildDailyTable(in.Habits, totalDays, in.Calendar)
	habitRows := buildHabitTable(in.Habits, totalDays, in.Calendar)
	identityRows := buildIdentityTable(in.Identities, in.Habits, habitRows)
	kpis := computeKPIs(daily, habitRows, identityRows, totalDays)

	return domain.EngagementReport{
		Meta: domain.ReportMeta{
			GeneratedAt: in.Now.UTC().Format(time.RFC3339),
			Period: domain.Period{
				Label:     in.PeriodLabel,
				StartISO:  in.Calendar.ISO(0),
				EndISO:    in.Calendar.ISO(totalDays - 1),
				TotalDays: totalDays,
			},
			Version: domain.ReportVersion,
		},
		KPIs:             kpis,
		ExecutiveSummary: buildExecutiveSummary(kpis, habitRows, identityRows, countEngaged(daily), totalDays),
		Tables: domain.ReportTables{
			Daily:      daily,
			Habits:     habitRows,
			Identities: identityRows,
		},
		QuestionsDeVerite: buildTruthQuestions(identityRows),
	}
}

func buildDailyTable(habits []*domain.Habit, totalDays int, cal domain.Calendar) []domain.DailyRow {
	rows := make([]domain.DailyRow, 0, totalDays)

	for d := 0; d < totalDays; d++ {
		active, completed := 0, 0
		for _, h := range habits {
			if !h.IsActiveOn(d) {
				continue
			}
			active++
			if h.CompletedOn(d) {
				completed++
			}
		}

		date := cal.DateForDayIndex(d)
		rows = append(rows, domain.DailyRow{
			DayIndex:        d,
			DateISO:         date.Format(domain.ISODate),
			DateLabel:       date.Format("02/01"),
			Weekday:         frenchWeekdays[date.Weekday()],
			ActiveHabits:    active,
			CompletedHabits: completed,
			Engaged:         completed > 0,
		})
	}

	return rows
}

// habitWindow returns the habit's completion sequence clipped to [0, totalDays),
// the global day of its first element, and its skipped days re-indexed to it.
func habitWindow(h *domain.Habit, totalDays int) ([]bool, int, []int) {
	start := min(totalDays, max(0, h.StartDayIndex))
	end := min(totalDays, h.StartDayIndex+h.TotalDays)
	if end <= start {
		return []bool{}, start, nil
	}

	seq := make([]bool, end-start)
	for d := start; d < end; d++ {
		seq[d-start] = h.CompletedOn(d)
	}

	var skipped []int
	for _, s := range h.SkippedDays {
		if idx := s + h.StartDayIndex - start; idx >= 0 && idx < len(seq) {
			skipped = append(skipped, idx)
		}
	}

	return seq, start, skipped
}

func buildHabitTable(habits []*domain.Habit, totalDays int, cal domain.Calendar) []domain.HabitRow {
	rows := make([]domain.HabitRow, 0, len(habits))

	for _, h := range habits {
		seq, origin, skipped := habitWindow(h, totalDays)
		stats := AnalyzeStreaksWithSkips(seq, skipped, origin, cal)

		completed := 0
		for _, done := range seq {
			if done {
				completed++
			}
		}

		row := domain.HabitRow{
			HabitID:         h.ID,
			Name:            h.Name,
			Type:            h.Type,
			ActiveDays:      len(seq),
			CompletedDays:   completed,
			CompletionPct:   percent(completed, len(seq)),
			LongestStreak:   stats.LongestStreak,
			Breaks:          stats.Breaks,
			AvgRecoveryDays: stats.AvgRecoveryDays,
			Flags:           []string{},
		}

		if badge, ok := ResolveBadge(stats.LongestStreak); ok {
			row.Badge = badge.Name
		}

		if stats.LongestStreak < 21 && reachedQuasi21(stats.Streaks) {
			row.Flags = append(row.Flags, domain.FlagQuasi21)
		}
		if stats.Breaks >= 6 {
			row.Flags = append(row.Flags, domain.FlagUnsteady)
		}
		if row.ActiveDays > 0 && row.CompletionPct <= 15 {
			row.Flags = append(row.Flags, domain.FlagAvoided)
		}

		rows = append(rows, row)
	}

	return rows
}

func reachedQuasi21(streaks []domain.Streak) bool {
	for _, s := range streaks {
		if s.Length >= 18 && s.Length <= 20 {
			return true
		}
	}
	return false
}

func buildIdentityTable(identities []*domain.Identity, habits []*domain.Habit, habitRows []domain.HabitRow) []domain.IdentityRow {
	rows := make([]domain.IdentityRow, 0, len(identities))

	for _, identity := range identities {
		var linked []domain.HabitRow
		for i, h := range habits {
			if h.IsLinkedTo(identity.ID) {
				linked = append(linked, habitRows[i])
			}
		}

		row := domain.IdentityRow{
			IdentityID:   identity.ID,
			Name:         identity.Name,
			LinkedHabits: len(linked),
			Evidence:     []string{},
		}

		if len(linked) == 0 {
			row.Status = domain.StatusDeclared
			rows = append(rows, row)
			continue
		}

		completed, active := 0, 0
		best, weakest := linked[0], linked[0]
		for _, r := range linked {
			completed += r.CompletedDays
			active += r.ActiveDays
			if r.CompletionPct > best.CompletionPct {
				best = r
			}
			if r.CompletionPct < weakest.CompletionPct {
				weakest = r
			}
		}

		pct := percent(completed, active)
		row.CompletionPct = &pct
		row.Status = identityStatus(pct)
		row.Evidence = []string{
			fmt.Sprintf("Complétion pondérée : %d %% sur %d habitude(s)", pct, len(linked)),
			fmt.Sprintf("Meilleure habitude : %s (%d %%)", best.Name, best.CompletionPct),
			fmt.Sprintf("Habitude la plus faible : %s (%d %%)", weakest.Name, weakest.CompletionPct),
		}

		rows = append(rows, row)
	}

	return rows
}

func identityStatus(pct int) string {
	switch {
	case pct >= 60:
		return domain.StatusEmbodied
	case pct >= 30:
		return domain.StatusIdealized
	default:
		return domain.StatusFantasized
	}
}

func countEngaged(daily []domain.DailyRow) int {
	count := 0
	for _, d := range daily {
		if d.Engaged {
			count++
		}
	}
	return count
}

func computeKPIs(daily []domain.DailyRow, habitRows []domain.HabitRow, identityRows []domain.IdentityRow, totalDays int) domain.KPIs {
	var engagedDays []int
	for _, d := range daily {
		if d.Engaged {
			engagedDays = append(engagedDays, d.DayIndex)
		}
	}

	completed, active := 0, 0
	for _, r := range habitRows {
		completed += r.CompletedDays
		active += r.ActiveDays
	}

	var scores []int
	for _, r := range identityRows {
		if r.CompletionPct != nil {
			scores = append(scores, *r.CompletionPct)
		}
	}

	kpis := domain.KPIs{
		EngagementDaysPct:      percent(len(engagedDays), totalDays),
		HabitCompletionPct:     percent(completed, active),
		IdentityIntegrityScore: roundMean(scores),
	}

	if len(engagedDays) >= 2 {
		sum, count := 0, 0
		for i := 1; i < len(engagedDays); i++ {
			if gap := engagedDays[i] - engagedDays[i-1] - 1; gap > 0 {
				sum += gap
				count++
			}
		}
		speed := 0.0
		if count > 0 {
			speed = roundTenth(float64(sum) / float64(count))
		}
		kpis.RecoverySpeedDays = &speed
	}

	return kpis
}
