package domain

// Streak is a maximal run of completed days. StartDay and EndDay are global day
// indices; the dates are their ISO rendering.
type Streak struct {
	Length    int    `json:"length"`
	StartDay  int    `json:"startDay"`
	EndDay    int    `json:"endDay"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type StreakStats struct {
	CurrentStreak   int      `json:"currentStreak"`
	LongestStreak   int      `json:"longestStreak"`
	Streaks         []Streak `json:"streaks"`
	Breaks          int      `json:"breaks"`
	RecoveryGaps    []int    `json:"recoveryGaps"`
	AvgRecoveryDays *int     `json:"avgRecoveryDays"`
}

type Badge struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	MinDays int    `json:"minDays"`
	Icon    string `json:"icon"`
}

// HabitStats is the per-habit view served by the habit stats endpoint.
type HabitStats struct {
	HabitID       int64       `json:"habitId"`
	Name          string      `json:"name"`
	CompletedDays int         `json:"completedDays"`
	TotalDays     int         `json:"totalDays"`
	CompletionPct int         `json:"completionPct"`
	Streaks       StreakStats `json:"streaks"`
	Badge         *Badge      `json:"badge"`
	NextBadge     *Badge      `json:"nextBadge"`
	DaysToNext    int         `json:"daysToNextBadge"`
}

type HabitBadge struct {
	HabitID       int64  `json:"habitId"`
	Name          string `json:"name"`
	LongestStreak int    `json:"longestStreak"`
	Badge         *Badge `json:"badge"`
	NextBadge     *Badge `json:"nextBadge"`
	DaysToNext    int    `json:"daysToNextBadge"`
}

type IdentityScore struct {
	IdentityID int64  `json:"identityId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
}

type GamificationSnapshot struct {
	TotalPoints    int             `json:"totalPoints"`
	UnlockedBadges int             `json:"unlockedBadges"`
	Habits         []HabitBadge    `json:"habits"`
	Identities     []IdentityScore `json:"identities"`
}
