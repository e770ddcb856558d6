package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/remotefeed/internal/control"
	"github.com/amishk599/remotefeed/internal/model"
)

// Cycle runs one collection cycle. *poller.Poller satisfies it.
type Cycle interface {
	Poll(ctx context.Context) (model.CycleStats, error)
}

// Options holds the waits of the main loop.
type Options struct {
	Interval   time.Duration // between successful cycles
	Cooldown   time.Duration // after a cycle-level error
	PauseCheck time.Duration // how often a paused loop re-checks the flag
}

// DefaultOptions returns the production waits.
func DefaultOptions() Options {
	return Options{
		Interval:   30 * time.Minute,
		Cooldown:   5 * time.Minute,
		PauseCheck: time.Minute,
	}
}

// Scheduler owns the main loop: run a cycle, wait, repeat until cancelled.
type Scheduler struct {
	cycle  Cycle
	state  *control.State
	opts   Options
	logger *slog.Logger
}

// NewScheduler creates a scheduler. state may be nil, in which case the loop
// is never paused.
func NewScheduler(cycle Cycle, state *control.State, opts Options, logger *slog.Logger) *Scheduler {
	def := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = def.Cooldown
	}
	if opts.PauseCheck <= 0 {
		opts.PauseCheck = def.PauseCheck
	}
	if state == nil {
		state = control.NewState()
	}
	return &Scheduler{
		cycle:  cycle,
		state:  state,
		opts:   opts,
		logger: logger,
	}
}

// Run starts the loop with an immediate cycle. It returns nil when ctx is
// cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.opts.Interval.String(),
		"cooldown", s.opts.Cooldown.String(),
	)

	for {
		if ctx.Err() != nil {
			s.logger.Info("shutting down scheduler")
			return nil
		}

		var wait time.Duration
		if s.state.Paused() {
			s.state.SetPhase(control.PhasePaused)
			s.logger.Debug("paused, waiting", "recheck", s.opts.PauseCheck.String())
			wait = s.opts.PauseCheck
		} else {
			wait = s.runCycle(ctx)
		}

		if ctx.Err() != nil {
			s.logger.Info("shutting down scheduler")
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(wait):
		}
	}
}

// runCycle executes one cycle and returns how long to wait before the next.
func (s *Scheduler) runCycle(ctx context.Context) time.Duration {
	id := uuid.NewString()
	logger := s.logger.With("cycle", id)
	logger.Info("cycle started")

	stats, err := s.safePoll(control.WithLogger(ctx, logger))
	s.state.RecordCycle(stats)
	s.state.SetPhase(control.PhaseWaiting)

	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		logger.Error("cycle failed, cooling down",
			"error", err,
			"cooldown", s.opts.Cooldown.String(),
		)
		return s.opts.Cooldown
	}

	logger.Info("cycle finished",
		"published", stats.Published,
		"next_in", s.opts.Interval.String(),
	)
	return s.opts.Interval
}

// safePoll turns a panic inside the cycle into an error so the loop survives.
func (s *Scheduler) safePoll(ctx context.Context) (stats model.CycleStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
			stats.Err = err.Error()
		}
	}()
	return s.cycle.Poll(ctx)
}
