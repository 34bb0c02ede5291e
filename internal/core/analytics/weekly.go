package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

const weeklyListSize = 3

type WeeklyInput struct {
	Habits       []*domain.Habit
	Identities   []*domain.Identity
	Calendar     domain.Calendar
	Now          time.Time
	Gamification domain.GamificationSnapshot
}

type weeklyHabit struct {
	habit    *domain.Habit
	possible int
	done     int
	pct      int
	streaks  domain.StreakStats
}

// WeekBounds returns the global day indices of the Monday and Sunday of the ISO
// week containing now.
func WeekBounds(cal domain.Calendar, now time.Time) (int, int) {
	today := cal.DayIndexForDate(now)
	offset := (int(now.In(cal.Location()).Weekday()) + 6) % 7
	start := today - offset
	return start, start + 6
}

// BuildWeeklyReport summarises the current week. Per-habit completion counts the
// habit's active days from Monday up to and including today; streaks come from
// the whole record.
func BuildWeeklyReport(in WeeklyInput) domain.WeeklyReport {
	cal := in.Calendar
	weekStart, weekEnd := WeekBounds(cal, in.Now)
	lastDay := min(weekEnd, cal.DayIndexForDate(in.Now))

	rows := make([]weeklyHabit, 0, len(in.Habits))
	totalPossible, totalDone := 0, 0
	newStreaks, brokenStreaks := 0, 0

	for _, h := range in.Habits {
		row := weeklyHabit{
			habit:   h,
			streaks: AnalyzeStreaksWithSkips(h.Record(), h.SkippedDays, h.StartDayIndex, cal),
		}
		for d := weekStart; d <= lastDay; d++ {
			if !h.IsActiveOn(d) {
				continue
			}
			row.possible++
			if h.CompletedOn(d) {
				row.done++
			}
		}
		row.pct = percent(row.done, row.possible)

		totalPossible += row.possible
		totalDone += row.done

		if row.streaks.CurrentStreak >= 3 {
			newStreaks++
		}
		if row.streaks.CurrentStreak == 0 && row.streaks.LongestStreak > 0 {
			brokenStreaks++
		}

		rows = append(rows, row)
	}

	habits := domain.WeeklyHabits{
		Total:          len(in.Habits),
		Completed:      totalDone,
		CompletionRate: percent(totalDone, totalPossible),
		TopPerforming:  topPerforming(rows),
		Struggling:     struggling(rows),
		NewStreaks:     newStreaks,
		BrokenStreaks:  brokenStreaks,
	}

	gamification := in.Gamification
	if gamification.Habits == nil {
		gamification.Habits = []domain.HabitBadge{}
	}
	if gamification.Identities == nil {
		gamification.Identities = []domain.IdentityScore{}
	}

	return domain.WeeklyReport{
		WeekStart:     cal.ISO(weekStart),
		WeekEnd:       cal.ISO(weekEnd),
		Habits:        habits,
		Identities:    weeklyIdentities(in.Identities, rows),
		Gamification:  gamification,
		Insights:      weeklyInsights(habits),
		NextWeekGoals: weeklyGoals(habits),
	}
}

func performance(r weeklyHabit) domain.HabitPerformance {
	return domain.HabitPerformance{
		HabitID:       r.habit.ID,
		Name:          r.habit.Name,
		CompletionPct: r.pct,
		CurrentStreak: r.streaks.CurrentStreak,
		LongestStreak: r.streaks.LongestStreak,
	}
}

func topPerforming(rows []weeklyHabit) []domain.HabitPerformance {
	var picked []weeklyHabit
	for _, r := range rows {
		if r.possible > 0 && r.pct >= 80 {
			picked = append(picked, r)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].pct > picked[j].pct })

	out := []domain.HabitPerformance{}
	for i := 0; i < len(picked) && i < weeklyListSize; i++ {
		out = append(out, performance(picked[i]))
	}
	return out
}

func struggling(rows []weeklyHabit) []domain.HabitPerformance {
	var picked []weeklyHabit
	for _, r := range rows {
		if r.possible > 0 && r.pct < 30 {
			picked = append(picked, r)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].pct < picked[j].pct })

	out := []domain.HabitPerformance{}
	for i := 0; i < len(picked) && i < weeklyListSize; i++ {
		out = append(out, performance(picked[i]))
	}
	return out
}

func weeklyIdentities(identities []*domain.Identity, rows []weeklyHabit) domain.WeeklyIdentities {
	out := domain.WeeklyIdentities{
		Total:    len(identities),
		Progress: []domain.IdentityProgress{},
	}

	for _, identity := range identities {
		// habits with no active elapsed day this week have no rate to average
		var pcts []int
		for _, r := range rows {
			if r.possible > 0 && r.habit.IsLinkedTo(identity.ID) {
				pcts = append(pcts, r.pct)
			}
		}
		if len(pcts) == 0 {
			continue
		}

		out.Active++
		out.Progress = append(out.Progress, domain.IdentityProgress{
			IdentityID:        identity.ID,
			Name:              identity.Name,
			HabitCount:        len(pcts),
			AverageCompletion: roundMean(pcts),
		})
	}

	return out
}

func names(list []domain.HabitPerformance) string {
	parts := make([]string, 0, len(list))
	for _, p := range list {
		parts = append(parts, fmt.Sprintf("%s (%d %%)", p.Name, p.CompletionPct))
	}
	return strings.Join(parts, ", ")
}

func weeklyInsights(h domain.WeeklyHabits) []string {
	var insights []string

	switch rate := h.CompletionRate; {
	case rate >= 80:
		insights = append(insights, fmt.Sprintf("🎉 Semaine exceptionnelle : %d %% de tes habitudes réalisées !", rate))
	case rate >= 60:
		insights = append(insights, fmt.Sprintf("👍 Bonne semaine : %d %% de complétion, tu tiens le cap.", rate))
	case rate >= 40:
		insights = append(insights, fmt.Sprintf("💪 Semaine en demi-teinte (%d %%) : chaque jour compte, continue.", rate))
	default:
		insights = append(insights, fmt.Sprintf("🌱 Semaine difficile (%d %%) : simplifie et concentre-toi sur l'essentiel.", rate))
	}

	if len(h.TopPerforming) > 0 {
		insights = append(insights, "Points forts : "+names(h.TopPerforming)+".")
	}
	if len(h.Struggling) > 0 {
		insights = append(insights, "À renforcer : "+names(h.Struggling)+".")
	}
	if h.NewStreaks > 0 {
		insights = append(insights, fmt.Sprintf("%d série(s) d'au moins 3 jours en cours.", h.NewStreaks))
	}
	if h.BrokenStreaks > 0 {
		insights = append(insights, fmt.Sprintf("%d série(s) interrompue(s) à relancer.", h.BrokenStreaks))
	}

	return insights
}

func weeklyGoals(h domain.WeeklyHabits) []string {
	switch rate := h.CompletionRate; {
	case rate < 50:
		goals := []string{"Concentre-toi sur 1 à 2 habitudes maximum la semaine prochaine."}
		if len(h.Struggling) > 0 {
			goals = append(goals, fmt.Sprintf("Simplifie « %s » pour la rendre plus facile à tenir.", h.Struggling[0].Name))
		}
		return append(goals, "Vise au moins 3 jours consécutifs sur ton habitude prioritaire.")
	case rate < 80:
		goals := []string{
			"Maintiens tes habitudes actuelles.",
			"Ajoute une seule nouvelle habitude si tu te sens prêt·e.",
		}
		if len(h.TopPerforming) > 0 {
			goals = append(goals, fmt.Sprintf("Appuie-toi sur « %s » comme ancre quotidienne.", h.TopPerforming[0].Name))
		}
		return goals
	default:
		return []string{
			"Consolide tes acquis en gardant le même rythme.",
			"Explore une nouvelle identité ou un défi plus ambitieux.",
		}
	}
}
