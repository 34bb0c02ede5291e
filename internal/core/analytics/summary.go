package analytics

import (
	"fmt"
	"sort"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

const summaryHabitCount = 3

var baseTruthQuestions = []string{
	"Quelle habitude as-tu le plus évitée, et que t'apprend cet évitement ?",
	"Quels jours t'es-tu senti·e le plus aligné·e avec la personne que tu veux devenir ?",
	"Qu'est-ce qui a précédé tes ruptures de rythme ?",
	"Si tu ne gardais qu'une seule habitude pour la prochaine période, laquelle serait-ce ?",
}

// rankHabits orders rows with at least one active day by completion, best first.
// Ties keep input order.
func rankHabits(rows []domain.HabitRow) []domain.HabitRow {
	ranked := make([]domain.HabitRow, 0, len(rows))
	for _, r := range rows {
		if r.ActiveDays > 0 {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompletionPct > ranked[j].CompletionPct
	})
	return ranked
}

func bestAndWorst(rows []domain.HabitRow) (best, worst []domain.HabitRow) {
	ranked := rankHabits(rows)

	n := min(summaryHabitCount, len(ranked))
	best = ranked[:n]

	worst = make([]domain.HabitRow, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		worst = append(worst, ranked[i])
	}
	return best, worst
}

func buildExecutiveSummary(kpis domain.KPIs, habitRows []domain.HabitRow, identityRows []domain.IdentityRow, engagedDays, totalDays int) domain.ExecutiveSummary {
	summary := domain.ExecutiveSummary{
		Truths:          []string{},
		Gaps:            []string{},
		StrongestLevers: []string{},
	}

	best, worst := bestAndWorst(habitRows)

	summary.Truths = append(summary.Truths,
		fmt.Sprintf("Tu as été engagé·e %d %% des jours de la période (%d sur %d).", kpis.EngagementDaysPct, engagedDays, totalDays),
		fmt.Sprintf("Taux de complétion global des habitudes : %d %%.", kpis.HabitCompletionPct),
	)
	if len(identityRows) > 0 {
		summary.Truths = append(summary.Truths,
			fmt.Sprintf("Score d'intégrité identitaire : %d %%.", kpis.IdentityIntegrityScore))
	}
	if kpis.RecoverySpeedDays != nil {
		summary.Truths = append(summary.Truths,
			fmt.Sprintf("Après une pause, tu reprends en moyenne en %.1f jour(s).", *kpis.RecoverySpeedDays))
	}

	if kpis.EngagementDaysPct < 50 {
		summary.Gaps = append(summary.Gaps, "Moins d'un jour sur deux compte au moins une habitude réalisée.")
	}
	for _, r := range worst {
		if r.CompletionPct < 30 {
			summary.Gaps = append(summary.Gaps,
				fmt.Sprintf("« %s » plafonne à %d %% de complétion.", r.Name, r.CompletionPct))
		}
	}
	for _, r := range habitRows {
		if r.HasFlag(domain.FlagUnsteady) {
			summary.Gaps = append(summary.Gaps,
				fmt.Sprintf("« %s » casse souvent son rythme (%d ruptures).", r.Name, r.Breaks))
		}
	}
	for _, r := range identityRows {
		if r.Status == domain.StatusFantasized && r.CompletionPct != nil {
			summary.Gaps = append(summary.Gaps,
				fmt.Sprintf("L'identité « %s » reste fantasmée (%d %%).", r.Name, *r.CompletionPct))
		}
	}

	for _, r := range best {
		if r.CompletionPct >= 60 {
			summary.StrongestLevers = append(summary.StrongestLevers,
				fmt.Sprintf("« %s » est un levier solide (%d %%, record de %d jours).", r.Name, r.CompletionPct, r.LongestStreak))
		}
	}
	for _, r := range habitRows {
		if r.HasFlag(domain.FlagQuasi21) {
			summary.StrongestLevers = append(summary.StrongestLevers,
				fmt.Sprintf("« %s » a frôlé les 21 jours (record de %d) : relance-la.", r.Name, r.LongestStreak))
		}
	}
	if len(summary.StrongestLevers) == 0 {
		summary.StrongestLevers = append(summary.StrongestLevers,
			"Choisis une seule habitude et vise 3 jours d'affilée pour relancer la dynamique.")
	}

	return summary
}

func buildTruthQuestions(identityRows []domain.IdentityRow) []string {
	questions := make([]string, 0, len(baseTruthQuestions)+len(identityRows))
	questions = append(questions, baseTruthQuestions...)

	for _, r := range identityRows {
		if r.Status == domain.StatusFantasized {
			questions = append(questions,
				fmt.Sprintf("Qu'est-ce qui t'empêche réellement d'incarner « %s » ?", r.Name))
		}
	}
	return questions
}
