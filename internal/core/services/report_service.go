package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/core/analytics"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

type ReportService struct {
	habitRepo    domain.HabitRepository
	identityRepo domain.IdentityRepository
	cal          domain.Calendar
	defaultDays  int
	now          func() time.Time
}

func NewReportService(habitRepo domain.HabitRepository, identityRepo domain.IdentityRepository, cal domain.Calendar, defaultDays int) *ReportService {
	if defaultDays <= 0 {
		defaultDays = domain.DefaultReportTotalDays
	}
	return &ReportService{
		habitRepo:    habitRepo,
		identityRepo: identityRepo,
		cal:          cal,
		defaultDays:  defaultDays,
		now:          time.Now,
	}
}

// WithClock replaces the wall clock used for generatedAt and the current week.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

func (s *ReportService) Calendar() domain.Calendar {
	return s.cal
}

// Snapshot reads the current habits and identities in one pass.
func (s *ReportService) Snapshot(ctx context.Context) (*domain.Backup, error) {
	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	identities, err := s.identityRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Backup{Habits: habits, Identities: identities}, nil
}

// Engagement builds the engagement report over global days [0, days).
// A non-positive days uses the configured default; an empty label gets a
// generated one.
func (s *ReportService) Engagement(ctx context.Context, label string, days int) (*domain.EngagementReport, error) {
	if days <= 0 {
		days = s.defaultDays
	}
	if days > domain.MaxTotalDays {
		return nil, domain.ErrInvalidTotalDays
	}
	if label == "" {
		label = fmt.Sprintf("%s → %s", s.cal.ISO(0), s.cal.ISO(days-1))
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := analytics.BuildEngagementReport(analytics.EngagementInput{
		Identities:  snap.Identities,
		Habits:      snap.Habits,
		PeriodLabel: label,
		TotalDays:   days,
		Calendar:    s.cal,
		Now:         s.now(),
	})

	log.WithFields(log.Fields{
		"habits":   len(snap.Habits),
		"days":     days,
		"duration": time.Since(start).String(),
	}).Debug("engagement report built")

	return &report, nil
}

func (s *ReportService) Weekly(ctx context.Context) (*domain.WeeklyReport, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildWeeklyReport(analytics.WeeklyInput{
		Habits:       snap.Habits,
		Identities:   snap.Identities,
		Calendar:     s.cal,
		Now:          s.now(),
		Gamification: analytics.BuildGamification(snap.Habits, snap.Identities, s.cal),
	})

	return &report, nil
}

func (s *ReportService) Gamification(ctx context.Context) (*domain.GamificationSnapshot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	g := analytics.BuildGamification(snap.Habits, snap.Identities, s.cal)
	return &g, nil
}
