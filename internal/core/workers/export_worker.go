package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/adapters/export"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

const (
	ExportEngagement = "engagement"
	ExportWeekly     = "weekly"

	exportQueueSize = 16

	// finished job statuses are kept this long for polling, then dropped
	statusTTL = 24 * time.Hour
)

const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

var (
	ErrQueueFull         = errors.New("export queue is full")
	ErrUnknownExportKind = errors.New("unknown export kind (must be engagement or weekly)")
)

// ReportSource builds the reports an export job writes to disk.
type ReportSource interface {
	Engagement(ctx context.Context, label string, days int) (*domain.EngagementReport, error)
	Weekly(ctx context.Context) (*domain.WeeklyReport, error)
}

type ExportJob struct {
	ID    string
	Kind  string
	Label string
	Days  int
}

type JobStatus struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	State      string     `json:"state"`
	Files      []string   `json:"files,omitempty"`
	Error      string     `json:"error,omitempty"`
	QueuedAt   time.Time  `json:"queuedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// ExportWorker writes report files in the background, one job at a time.
type ExportWorker struct {
	reports ReportSource
	dir     string
	jobs    chan ExportJob
	now     func() time.Time

	mu     sync.RWMutex
	status map[string]*JobStatus
}

func NewExportWorker(reports ReportSource, dir string) *ExportWorker {
	return &ExportWorker{
		reports: reports,
		dir:     dir,
		jobs:    make(chan ExportJob, exportQueueSize),
		now:     time.Now,
		status:  make(map[string]*JobStatus),
	}
}

func (w *ExportWorker) Dir() string {
	return w.dir
}

func (w *ExportWorker) Start(ctx context.Context) {
	go func() {
		log.WithField("dir", w.dir).Info("[WORKER] Export worker started")
		for {
			select {
			case job := <-w.jobs:
				w.process(ctx, job)
			case <-ctx.Done():
				log.Info("[WORKER] Export worker shutting down")
				return
			}
		}
	}()
}

// Enqueue schedules a job and returns its id. A full queue drops the job.
func (w *ExportWorker) Enqueue(kind, label string, days int) (string, error) {
	if kind != ExportEngagement && kind != ExportWeekly {
		return "", ErrUnknownExportKind
	}

	job := ExportJob{ID: uuid.NewString(), Kind: kind, Label: label, Days: days}

	now := w.now().UTC()

	w.mu.Lock()
	w.pruneLocked(now)
	w.status[job.ID] = &JobStatus{ID: job.ID, Kind: kind, State: JobQueued, QueuedAt: now}
	w.mu.Unlock()

	select {
	case w.jobs <- job:
		return job.ID, nil
	default:
		w.mu.Lock()
		delete(w.status, job.ID)
		w.mu.Unlock()

		log.WithField("kind", kind).Warn("[WORKER] Export queue full, dropping job")
		return "", ErrQueueFull
	}
}

func (w *ExportWorker) Status(id string) (JobStatus, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	st, ok := w.status[id]
	if !ok {
		return JobStatus{}, false
	}
	return *st, true
}

func (w *ExportWorker) pruneLocked(now time.Time) {
	for id, st := range w.status {
		if st.FinishedAt != nil && now.Sub(*st.FinishedAt) > statusTTL {
			delete(w.status, id)
		}
	}
}

func (w *ExportWorker) update(id string, apply func(st *JobStatus)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, ok := w.status[id]
	if !ok {
		st = &JobStatus{ID: id}
		w.status[id] = st
	}
	apply(st)
}

func (w *ExportWorker) process(ctx context.Context, job ExportJob) {
	w.update(job.ID, func(st *JobStatus) {
		st.Kind = job.Kind
		st.State = JobRunning
	})

	files, err := w.Run(ctx, job)
	finished := w.now().UTC()

	w.update(job.ID, func(st *JobStatus) {
		st.FinishedAt = &finished
		if err != nil {
			st.State = JobFailed
			st.Error = err.Error()
			return
		}
		st.State = JobDone
		st.Files = files
	})

	if err != nil {
		log.WithError(err).WithField("job", job.ID).Error("[WORKER] Export failed")
		return
	}
	log.WithFields(log.Fields{"job": job.ID, "kind": job.Kind, "files": len(files)}).Info("[WORKER] Export written")
}

// Run executes a job synchronously and returns the written paths.
func (w *ExportWorker) Run(ctx context.Context, job ExportJob) ([]string, error) {
	prefix := w.now().UTC().Format("20060102-150405") + "_"
	if len(job.ID) >= 8 {
		prefix += job.ID[:8] + "_"
	}

	switch job.Kind {
	case ExportEngagement:
		report, err := w.reports.Engagement(ctx, job.Label, job.Days)
		if err != nil {
			return nil, fmt.Errorf("build engagement report: %w", err)
		}
		return export.WriteEngagementFiles(w.dir, prefix, report)

	case ExportWeekly:
		report, err := w.reports.Weekly(ctx)
		if err != nil {
			return nil, fmt.Errorf("build weekly report: %w", err)
		}
		path, err := export.WriteWeeklyFile(w.dir, prefix, report)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	return nil, ErrUnknownExportKind
}
