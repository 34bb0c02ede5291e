package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Enqueuer is the part of ExportWorker the scheduler needs.
type Enqueuer interface {
	Enqueue(kind, label string, days int) (string, error)
}

// Scheduler queues the weekly and engagement exports on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	exports  Enqueuer
	schedule string
}

func NewScheduler(exports Enqueuer, schedule string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exports:  exports,
		schedule: schedule,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if ctx.Err() != nil {
			return
		}
		s.runOnce()
	})
	if err != nil {
		return fmt.Errorf("invalid export schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("[CRON] Export schedule started")
	return nil
}

func (s *Scheduler) runOnce() {
	for _, kind := range []string{ExportWeekly, ExportEngagement} {
		id, err := s.exports.Enqueue(kind, "", 0)
		if err != nil {
			log.WithError(err).WithField("kind", kind).Error("[CRON] Could not queue export")
			continue
		}
		log.WithFields(log.Fields{"kind": kind, "job": id}).Info("[CRON] Export queued")
	}
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("[CRON] Export schedule stopped")
}
