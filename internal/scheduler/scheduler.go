// Package scheduler runs the periodic maintenance jobs on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/robfig/cron/v3"
)

const (
	JobOverdueFees  = "overdue_fees"
	JobOverdueBooks = "overdue_books"

	defaultJobTimeout = time.Minute
)

// OverdueMarker flags records whose due date has passed and reports how many
// changed.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) (int64, error)
}

// OverdueJobs builds the fee and library jobs from config.
func OverdueJobs(cfg internal.SchedulerConfig, fees, books OverdueMarker) []Job {
	return []Job{
		{Name: JobOverdueFees, Spec: cfg.OverdueFeesSpec, Run: fees.MarkOverdue},
		{Name: JobOverdueBooks, Spec: cfg.OverdueBooksSpec, Run: books.MarkOverdue},
	}
}

type Scheduler struct {
	cron       *cron.Cron
	jobs       map[string]Job
	jobTimeout time.Duration
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	once   sync.Once
}

func New(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger}))),
		jobs:       make(map[string]Job),
		jobTimeout: defaultJobTimeout,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Scheduler) Add(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %s already registered", job.Name)
	}
	if _, err := s.cron.AddFunc(job.Spec, func() { s.run(job) }); err != nil {
		return fmt.Errorf("schedule %s %q: %w", job.Name, job.Spec, err)
	}
	s.jobs[job.Name] = job
	s.logger.Info("job scheduled", "job", job.Name, "spec", job.Spec)
	return nil
}

// RunNow executes a registered job outside its schedule.
func (s *Scheduler) RunNow(name string) (int64, error) {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("unknown job %s", name)
	}
	return s.run(job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// Shutdown stops scheduling and waits for running jobs, or for ctx to end.
func (s *Scheduler) Shutdown(ctx context.Context) {
	s.once.Do(func() {
		stopped := s.cron.Stop()
		select {
		case <-stopped.Done():
			s.logger.Info("scheduler stopped")
		case <-ctx.Done():
			s.logger.Warn("scheduler shutdown timeout reached, cancelling jobs")
		}
		s.cancel()
	})
}

func (s *Scheduler) run(job Job) (int64, error) {
	ctx, cancel := internal.WithTimeout(s.ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := job.Run(ctx)
	if err != nil {
		s.logger.Error("job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return 0, err
	}
	s.logger.Debug("job finished", "job", job.Name, "affected", n, "duration", time.Since(start))
	return n, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
