package maintenance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is a unit of scheduled work.
type Job interface {
	Run(ctx context.Context) ([]TableResult, error)
}

// Scheduler runs a Job on a cron schedule. An empty schedule disables it.
type Scheduler struct {
	job      Job
	schedule string
	timeout  time.Duration
	logger   logrus.FieldLogger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewScheduler(job Job, schedule string, logger logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		job:      job,
		schedule: strings.TrimSpace(schedule),
		timeout:  time.Minute,
		logger:   logger,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
	}
}

// Enabled reports whether a schedule was configured.
func (s *Scheduler) Enabled() bool {
	return s.schedule != ""
}

// Start registers the job and starts the cron loop. It is a no-op when the
// scheduler is disabled or already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || !s.Enabled() {
		if !s.Enabled() {
			s.logger.Info("maintenance scheduler: disabled")
		}
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.running = true
	s.logger.WithField("schedule", s.schedule).Info("maintenance scheduler: started")
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("maintenance scheduler: stopped")
}

func (s *Scheduler) runOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	results, err := s.job.Run(ctx)
	var removed int64
	for _, r := range results {
		removed += r.Removed
	}
	entry := s.logger.WithField("removed", removed)
	if err != nil {
		entry.WithError(err).Warn("maintenance run finished with errors")
		return
	}
	entry.Debug("maintenance run finished")
}
