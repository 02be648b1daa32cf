package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context)
}

// Scheduler runs registered jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a scheduler.
func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: log,
	}
}

// Register schedules a job. The spec is a standard 5-field cron expression.
func (s *Scheduler) Register(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Info("Scheduled job starting", zap.String("job", job.Name()))
		job.Run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}
	s.logger.Info("Scheduled job registered",
		zap.String("job", job.Name()), zap.String("cron", spec))
	return nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
