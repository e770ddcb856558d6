package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/remotefeed/internal/control"
	"github.com/amishk599/remotefeed/internal/model"
	"github.com/amishk599/remotefeed/internal/notifier"
)

// DefaultMaxPostsPerCycle caps how many classified jobs are considered per cycle.
const DefaultMaxPostsPerCycle = 15

// Options configures a Poller.
type Options struct {
	ChannelID        string
	MaxPostsPerCycle int
	// RateLimitWait is used when the publisher asks to back off without saying how long.
	RateLimitWait time.Duration
}

// Poller owns the full pipeline for one collection cycle:
// fetch → match → classify → dedup → format → publish.
type Poller struct {
	sources    []model.Source
	classifier model.JobClassifier
	store      model.DedupStore
	publisher  model.Publisher
	state      *control.State
	opts       Options
	logger     *slog.Logger
}

// NewPoller creates a poller wired with all its dependencies. state may be nil.
func NewPoller(
	sources []model.Source,
	classifier model.JobClassifier,
	store model.DedupStore,
	publisher model.Publisher,
	state *control.State,
	opts Options,
	logger *slog.Logger,
) *Poller {
	if opts.MaxPostsPerCycle <= 0 {
		opts.MaxPostsPerCycle = DefaultMaxPostsPerCycle
	}
	if opts.RateLimitWait <= 0 {
		opts.RateLimitWait = time.Second
	}
	return &Poller{
		sources:    sources,
		classifier: classifier,
		store:      store,
		publisher:  publisher,
		state:      state,
		opts:       opts,
		logger:     logger,
	}
}

// Poll runs one cycle. Source failures never fail the cycle. A store error
// aborts the publishing phase and is returned together with the stats so far.
// A logger attached with control.WithLogger replaces the poller's own for
// this cycle.
func (p *Poller) Poll(ctx context.Context) (model.CycleStats, error) {
	stats := model.CycleStats{StartedAt: time.Now()}
	logger := control.Logger(ctx, p.logger)

	p.setPhase(control.PhaseFetching)
	raw, err := p.fetchAll(ctx, logger)
	stats.Fetched = len(raw)
	if err != nil {
		return p.finish(logger, stats, err)
	}

	p.setPhase(control.PhaseClassifying)
	var classified []model.ClassifiedJob
	for _, job := range raw {
		if !p.classifier.Match(job) {
			continue
		}
		stats.Suitable++
		level := p.classifier.Classify(job)
		if level == model.LevelExcluded {
			continue
		}
		classified = append(classified, model.ClassifiedJob{RawJob: job, Level: level})
	}
	stats.Classified = len(classified)

	p.setPhase(control.PhasePublishing)
	candidates := classified
	if len(candidates) > p.opts.MaxPostsPerCycle {
		candidates = candidates[:p.opts.MaxPostsPerCycle]
	}
	stats.Candidates = len(candidates)

	for _, job := range candidates {
		if err := ctx.Err(); err != nil {
			return p.finish(logger, stats, err)
		}

		dup, err := p.store.IsDuplicate(ctx, job)
		if err != nil {
			return p.finish(logger, stats, fmt.Errorf("dedup check for %q: %w", job.Title, err))
		}
		if dup {
			stats.Duplicates++
			continue
		}

		text := notifier.Truncate(notifier.FormatJobMessage(job), notifier.MaxMessageLength)
		if err := p.publish(ctx, logger, text); err != nil {
			if ctx.Err() != nil {
				return p.finish(logger, stats, ctx.Err())
			}
			stats.Failed++
			logger.Error("publish failed",
				"title", job.Title,
				"company", job.Company,
				"source", job.Source,
				"error", err,
			)
			continue
		}
		stats.Published++
		logger.Info("job published",
			"title", job.Title,
			"company", job.Company,
			"level", job.Level,
			"source", job.Source,
		)
	}

	return p.finish(logger, stats, nil)
}

// fetchAll queries every source in order and merges the results.
func (p *Poller) fetchAll(ctx context.Context, logger *slog.Logger) ([]model.RawJob, error) {
	var all []model.RawJob
	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		jobs, err := src.FetchJobs(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			logger.Warn("source failed", "source", src.Name(), "error", err)
			continue
		}
		for i := range jobs {
			if jobs[i].Source == "" {
				jobs[i].Source = src.Name()
			}
		}
		logger.Info("source fetched", "source", src.Name(), "jobs", len(jobs))
		all = append(all, jobs...)
	}
	return all, nil
}

// publish sends text and, when the publisher asks to back off, waits and
// tries exactly once more.
func (p *Poller) publish(ctx context.Context, logger *slog.Logger, text string) error {
	err := p.publisher.Publish(ctx, text, p.opts.ChannelID)
	var rlErr *model.RateLimitError
	if !errors.As(err, &rlErr) {
		return err
	}

	wait := rlErr.RetryAfter
	if wait <= 0 {
		wait = p.opts.RateLimitWait
	}
	logger.Warn("publisher rate limited, retrying once", "retry_after", wait)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return p.publisher.Publish(ctx, text, p.opts.ChannelID)
}

func (p *Poller) finish(logger *slog.Logger, stats model.CycleStats, err error) (model.CycleStats, error) {
	stats.Duration = time.Since(stats.StartedAt)
	if err != nil {
		stats.Err = err.Error()
	}
	logger.Info("cycle complete",
		"fetched", stats.Fetched,
		"suitable", stats.Suitable,
		"classified", stats.Classified,
		"candidates", stats.Candidates,
		"duplicates", stats.Duplicates,
		"published", stats.Published,
		"failed", stats.Failed,
		"duration", stats.Duration.Round(time.Millisecond),
	)
	return stats, err
}

func (p *Poller) setPhase(phase control.Phase) {
	if p.state != nil {
		p.state.SetPhase(phase)
	}
}
