package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the cleanup daily at 02:00 server time.
const DefaultSchedule = "0 2 * * *"

// scheduledRunner is the job the scheduler fires.
type scheduledRunner interface {
	RunScheduledCleanup(ctx context.Context) (ScheduledResult, error)
}

// Scheduler fires the scheduled cleanup on a cron expression. A firing that
// arrives while the previous run is still going is skipped, and missed
// firings are not caught up.
type Scheduler struct {
	cron       *cron.Cron
	runner     scheduledRunner
	log        *slog.Logger
	runTimeout time.Duration

	mu      sync.Mutex
	started bool
}

// ValidateSchedule reports whether spec is a valid five-field cron
// expression or descriptor.
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return nil
}

// NewScheduler registers the cleanup job under spec. runTimeout bounds a
// single run; zero means no bound.
func NewScheduler(logger *slog.Logger, runner scheduledRunner, spec string, runTimeout time.Duration) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	log := logger.With("component", "retention_scheduler")

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{
		cron:       c,
		runner:     runner,
		log:        log,
		runTimeout: runTimeout,
	}

	if _, err := c.AddFunc(spec, s.fire); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing in the background. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	s.cron.Start()

	for _, e := range s.cron.Entries() {
		s.log.Info("retention scheduler started", slog.Time("next_run", e.Next))
	}
}

// Stop prevents further firings and waits for a running job to finish or
// for ctx to be done, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("retention scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop retention scheduler: %w", ctx.Err())
	}
}

// NextRun returns the next firing time. ok is false while the scheduler is
// stopped.
func (s *Scheduler) NextRun() (next time.Time, ok bool) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return time.Time{}, false
	}
	for _, e := range s.cron.Entries() {
		if next.IsZero() || e.Next.Before(next) {
			next = e.Next
		}
	}
	return next, !next.IsZero()
}

func (s *Scheduler) fire() {
	ctx := context.Background()
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	if _, err := s.runner.RunScheduledCleanup(ctx); err != nil {
		s.log.Error("scheduled cleanup run failed", slog.String("error", err.Error()))
	}
}

// cronLogger routes the cron library's logs to slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
