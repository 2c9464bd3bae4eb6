// Package sweeper removes expired PII fields on a cron schedule.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

type Sweeper struct {
	purger   Purger
	schedule string
	logger   *slog.Logger

	mu  sync.Mutex
	ctx context.Context
}

type Option func(*Sweeper)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) { s.logger = logger }
}

func New(purger Purger, schedule string, opts ...Option) (*Sweeper, error) {
	if purger == nil {
		return nil, errors.New("purger is required")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}
	s := &Sweeper{
		purger:   purger,
		schedule: schedule,
		logger:   slog.Default(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run schedules the sweep and blocks until ctx is cancelled. Overlapping runs
// are skipped. In-flight runs finish before Run returns.
func (s *Sweeper) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	logger := cronLogger{s.logger}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("schedule pii sweep: %w", err)
	}

	s.logger.InfoContext(ctx, "pii sweeper started", "schedule", s.schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("pii sweeper stopped")
	return nil
}

func (s *Sweeper) sweep() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.ErrorContext(ctx, "pii sweep failed", "error", err)
	}
}

// RunOnce purges immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired pii purged", "count", n)
	}
	return n, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
