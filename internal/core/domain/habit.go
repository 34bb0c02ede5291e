package domain

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"time"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrInvalidHabitType   = errors.New("invalid habit type (must be start or stop)")
	ErrInvalidTotalDays   = errors.New("total days must be between 1 and 3650")
	ErrInvalidStartDay    = errors.New("start day index cannot be negative")
	ErrDayOutOfRange      = errors.New("day index is outside the habit window")
	ErrInvalidIdentityRef = errors.New("identity id must be positive")
)

const (
	HabitTypeStart = "start"
	HabitTypeStop  = "stop"
	MaxNameLen     = 100
	MaxTotalDays   = 3650
)

// Habit is a tracked daily behaviour. Progress is indexed from the habit's own
// first day; StartDayIndex places that day on the global calendar.
type Habit struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	TotalDays        int       `json:"totalDays"`
	StartDayIndex    int       `json:"startDayIndex"`
	LinkedIdentities []int64   `json:"linkedIdentities"`
	Progress         []bool    `json:"progress"`
	SkippedDays      []int     `json:"skippedDays,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func normalizeIdentityIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return []int64{}
	}

	seen := make(map[int64]bool)
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })
	return unique
}

// NormalizeSkippedDays sorts SkippedDays and drops duplicates.
func (h *Habit) NormalizeSkippedDays() {
	if len(h.SkippedDays) == 0 {
		return
	}
	sort.Ints(h.SkippedDays)
	h.SkippedDays = slices.Compact(h.SkippedDays)
}

func validateHabit(name, hType string, totalDays, startDay int, identities []int64) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return ErrHabitNameTooLong
	}

	switch hType {
	case HabitTypeStart, HabitTypeStop:
	default:
		return ErrInvalidHabitType
	}

	if totalDays < 1 || totalDays > MaxTotalDays {
		return ErrInvalidTotalDays
	}

	if startDay < 0 {
		return ErrInvalidStartDay
	}

	for _, id := range identities {
		if id <= 0 {
			return ErrInvalidIdentityRef
		}
	}

	return nil
}

// NewHabit creates a habit with an all-false progress record. The id is assigned
// by the repository.
func NewHabit(name, hType string, totalDays, startDay int, identities []int64) (*Habit, error) {
	if hType == "" {
		hType = HabitTypeStart
	}

	if err := validateHabit(name, hType, totalDays, startDay, identities); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		Name:             strings.TrimSpace(name),
		Type:             hType,
		TotalDays:        totalDays,
		StartDayIndex:    startDay,
		LinkedIdentities: normalizeIdentityIDs(identities),
		Progress:         make([]bool, totalDays),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Toggle flips the completion of a habit-local day.
func (h *Habit) Toggle(day int) error {
	if day < 0 || day >= h.TotalDays {
		return ErrDayOutOfRange
	}

	h.ensureProgress()
	h.Progress[day] = !h.Progress[day]
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// ToggleSkip marks or unmarks a habit-local day as skipped. A skipped day neither
// completes nor breaks a streak.
func (h *Habit) ToggleSkip(day int) error {
	if day < 0 || day >= h.TotalDays {
		return ErrDayOutOfRange
	}

	h.NormalizeSkippedDays()
	idx := sort.SearchInts(h.SkippedDays, day)
	if idx < len(h.SkippedDays) && h.SkippedDays[idx] == day {
		h.SkippedDays = append(h.SkippedDays[:idx], h.SkippedDays[idx+1:]...)
	} else {
		h.SkippedDays = append(h.SkippedDays, 0)
		copy(h.SkippedDays[idx+1:], h.SkippedDays[idx:])
		h.SkippedDays[idx] = day
	}

	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Rename(name string) error {
	if err := validateHabit(name, h.Type, h.TotalDays, h.StartDayIndex, nil); err != nil {
		return err
	}

	h.Name = strings.TrimSpace(name)
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) LinkIdentities(ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidIdentityRef
		}
	}

	h.LinkedIdentities = normalizeIdentityIDs(ids)
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// UnlinkIdentity drops id from the habit links and reports whether anything changed.
func (h *Habit) UnlinkIdentity(id int64) bool {
	for i, linked := range h.LinkedIdentities {
		if linked == id {
			h.LinkedIdentities = append(h.LinkedIdentities[:i], h.LinkedIdentities[i+1:]...)
			h.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

func (h *Habit) IsLinkedTo(identityID int64) bool {
	for _, id := range h.LinkedIdentities {
		if id == identityID {
			return true
		}
	}
	return false
}

// IsActiveOn reports whether global day d falls inside the habit window.
func (h *Habit) IsActiveOn(d int) bool {
	return d >= h.StartDayIndex && d < h.StartDayIndex+h.TotalDays
}

// CompletedOn reports completion for global day d. Days outside the window or past
// the end of a short progress record read as not completed.
func (h *Habit) CompletedOn(d int) bool {
	if !h.IsActiveOn(d) {
		return false
	}
	local := d - h.StartDayIndex
	return local < len(h.Progress) && h.Progress[local]
}

// Record returns the progress record sized to TotalDays. Missing entries read
// as not completed and extra entries are dropped.
func (h *Habit) Record() []bool {
	if h.TotalDays <= 0 {
		return []bool{}
	}
	record := make([]bool, h.TotalDays)
	copy(record, h.Progress)
	return record
}

func (h *Habit) CompletedCount() int {
	count := 0
	for i, done := range h.Progress {
		if i >= h.TotalDays {
			break
		}
		if done {
			count++
		}
	}
	return count
}

func (h *Habit) ensureProgress() {
	if len(h.Progress) < h.TotalDays {
		padded := make([]bool, h.TotalDays)
		copy(padded, h.Progress)
		h.Progress = padded
	}
}
