package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Evicter drops expired entries and reports how many were removed.
type Evicter interface {
	Evict() int
}

// Scheduler periodically evicts idle widget sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Evicter
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(target Evicter, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(s.sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("session sweep scheduled", zap.Duration("interval", interval))
	return nil
}

func (s *Scheduler) sweep() {
	if n := s.target.Evict(); n > 0 {
		s.logger.Info("evicted idle sessions", zap.Int("count", n))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
