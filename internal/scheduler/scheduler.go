package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/segyhp/rental-engine/internal/config"
	"go.uber.org/zap"
)

const ExpireQuotesJob = "expire-quotes"

// QuoteExpirer cancels quotes whose validity date has passed
type QuoteExpirer interface {
	ExpireQuotes(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	expirer QuoteExpirer
	logger  *zap.Logger
	timeout time.Duration
}

// New schedules the expire-quotes job on spec, evaluated in loc.
// timeout bounds a single run.
func New(spec string, loc *time.Location, timeout time.Duration, expirer QuoteExpirer, logger *zap.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithParser(config.CronParser), cron.WithLocation(loc)),
		expirer: expirer,
		logger:  logger,
		timeout: timeout,
	}

	if _, err := s.cron.AddFunc(spec, func() {
		s.runWithRecovery(ExpireQuotesJob, func(ctx context.Context) error {
			_, err := s.ExpireQuotes(ctx)
			return err
		})
	}); err != nil {
		return nil, fmt.Errorf("schedule %s job: %w", ExpireQuotesJob, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs or for ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// ExpireQuotes runs one sweep now.
func (s *Scheduler) ExpireQuotes(ctx context.Context) (int, error) {
	expired, err := s.expirer.ExpireQuotes(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("quote sweep finished", zap.Int("expired", expired))
	return expired, nil
}

func (s *Scheduler) runWithRecovery(name string, job func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", zap.String("job", name), zap.Any("panic", r))
		}
	}()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info("job started", zap.String("job", name))
	if err := job(ctx); err != nil {
		s.logger.Error("job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.logger.Info("job completed", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
}
