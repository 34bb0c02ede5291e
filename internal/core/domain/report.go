package domain

import (
	"strconv"
	"strings"
)

const (
	ReportVersion          = "1.0"
	DefaultReportTotalDays = 92

	FlagQuasi21      = "quasi-21"
	FlagUnsteady     = "rythme instable"
	FlagAvoided      = "évitée"
	StatusDeclared   = "déclarée"
	StatusEmbodied   = "incarnée"
	StatusIdealized  = "idéalisée"
	StatusFantasized = "fantasmée"

	TableDaily      = "daily"
	TableHabits     = "habits"
	TableIdentities = "identities"

	listSeparator = " | "
)

type EngagementReport struct {
	Meta              ReportMeta       `json:"meta"`
	KPIs              KPIs             `json:"kpis"`
	ExecutiveSummary  ExecutiveSummary `json:"executiveSummary"`
	Tables            ReportTables     `json:"tables"`
	QuestionsDeVerite []string         `json:"questionsDeVerite"`
}

type ReportMeta struct {
	GeneratedAt string `json:"generatedAt"`
	Period      Period `json:"period"`
	Version     string `json:"version"`
}

type Period struct {
	Label     string `json:"label"`
	StartISO  string `json:"startISO"`
	EndISO    string `json:"endISO"`
	TotalDays int    `json:"totalDays"`
}

type KPIs struct {
	EngagementDaysPct      int      `json:"engagementDaysPct"`
	HabitCompletionPct     int      `json:"habitCompletionPct"`
	IdentityIntegrityScore int      `json:"identityIntegrityScore"`
	RecoverySpeedDays      *float64 `json:"recoverySpeedDays"`
}

type ExecutiveSummary struct {
	Truths          []string `json:"truths"`
	Gaps            []string `json:"gaps"`
	StrongestLevers []string `json:"strongestLevers"`
}

type ReportTables struct {
	Daily      []DailyRow    `json:"daily"`
	Habits     []HabitRow    `json:"habits"`
	Identities []IdentityRow `json:"identities"`
}

// Row is a report table record with a fixed column order. Columns match the
// JSON keys in declaration order.
type Row interface {
	Columns() []string
	Values() []string
}

type DailyRow struct {
	DayIndex        int    `json:"dayIndex"`
	DateISO         string `json:"dateISO"`
	DateLabel       string `json:"dateLabel"`
	Weekday         string `json:"weekday"`
	ActiveHabits    int    `json:"activeHabits"`
	CompletedHabits int    `json:"completedHabits"`
	Engaged         bool   `json:"engaged"`
}

func (DailyRow) Columns() []string {
	return []string{"dayIndex", "dateISO", "dateLabel", "weekday", "activeHabits", "completedHabits", "engaged"}
}

func (r DailyRow) Values() []string {
	return []string{
		strconv.Itoa(r.DayIndex),
		r.DateISO,
		r.DateLabel,
		r.Weekday,
		strconv.Itoa(r.ActiveHabits),
		strconv.Itoa(r.CompletedHabits),
		strconv.FormatBool(r.Engaged),
	}
}

type HabitRow struct {
	HabitID         int64    `json:"habitId"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	ActiveDays      int      `json:"activeDays"`
	CompletedDays   int      `json:"completedDays"`
	CompletionPct   int      `json:"completionPct"`
	LongestStreak   int      `json:"longestStreak"`
	Breaks          int      `json:"breaks"`
	AvgRecoveryDays *int     `json:"avgRecoveryDays"`
	Badge           string   `json:"badge"`
	Flags           []string `json:"flags"`
}

func (HabitRow) Columns() []string {
	return []string{"habitId", "name", "type", "activeDays", "completedDays", "completionPct",
		"longestStreak", "breaks", "avgRecoveryDays", "badge", "flags"}
}

func (r HabitRow) Values() []string {
	return []string{
		strconv.FormatInt(r.HabitID, 10),
		r.Name,
		r.Type,
		strconv.Itoa(r.ActiveDays),
		strconv.Itoa(r.CompletedDays),
		strconv.Itoa(r.CompletionPct),
		strconv.Itoa(r.LongestStreak),
		strconv.Itoa(r.Breaks),
		optionalInt(r.AvgRecoveryDays),
		r.Badge,
		strings.Join(r.Flags, listSeparator),
	}
}

func (r HabitRow) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

type IdentityRow struct {
	IdentityID    int64    `json:"identityId"`
	Name          string   `json:"name"`
	LinkedHabits  int      `json:"linkedHabits"`
	CompletionPct *int     `json:"completionPct"`
	Status        string   `json:"status"`
	Evidence      []string `json:"evidence"`
}

func (IdentityRow) Columns() []string {
	return []string{"identityId", "name", "linkedHabits", "completionPct", "status", "evidence"}
}

func (r IdentityRow) Values() []string {
	return []string{
		strconv.FormatInt(r.IdentityID, 10),
		r.Name,
		strconv.Itoa(r.LinkedHabits),
		optionalInt(r.CompletionPct),
		r.Status,
		strings.Join(r.Evidence, listSeparator),
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// WeeklyReport summarises the Monday-aligned week containing "today".
type WeeklyReport struct {
	WeekStart     string               `json:"weekStart"`
	WeekEnd       string               `json:"weekEnd"`
	Habits        WeeklyHabits         `json:"habits"`
	Identities    WeeklyIdentities     `json:"identities"`
	Gamification  GamificationSnapshot `json:"gamification"`
	Insights      []string             `json:"insights"`
	NextWeekGoals []string             `json:"nextWeekGoals"`
}

type WeeklyHabits struct {
	Total          int                `json:"total"`
	Completed      int                `json:"completed"`
	CompletionRate int                `json:"completionRate"`
	TopPerforming  []HabitPerformance `json:"topPerforming"`
	Struggling     []HabitPerformance `json:"struggling"`
	NewStreaks     int                `json:"newStreaks"`
	BrokenStreaks  int                `json:"brokenStreaks"`
}

type HabitPerformance struct {
	HabitID       int64  `json:"habitId"`
	Name          string `json:"name"`
	CompletionPct int    `json:"completionPct"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

type WeeklyIdentities struct {
	Total    int                `json:"total"`
	Active   int                `json:"active"`
	Progress []IdentityProgress `json:"progress"`
}

type IdentityProgress struct {
	IdentityID        int64  `json:"identityId"`
	Name              string `json:"name"`
	HabitCount        int    `json:"habitCount"`
	AverageCompletion int    `json:"averageCompletion"`
}
