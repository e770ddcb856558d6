package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/remotefeed/internal/model"
)

// Pacer enforces a minimum delay between publishes to the same channel.
type Pacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter // key: channel id
	limit    rate.Limit
}

// NewPacer creates a pacer allowing one publish per interval per channel.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

func (p *Pacer) limiterFor(channelID string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if lim, ok := p.limiters[channelID]; ok {
		return lim
	}
	lim := rate.NewLimiter(p.limit, 1)
	p.limiters[channelID] = lim
	return lim
}

// Wait blocks until the channel may receive another message. The first call
// for a channel returns immediately.
func (p *Pacer) Wait(ctx context.Context, channelID string) error {
	if err := p.limiterFor(channelID).Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait for %s: %w", channelID, err)
	}
	return nil
}

// PacedPublisher is a decorator that waits on a Pacer before delegating to
// the wrapped Publisher.
type PacedPublisher struct {
	inner model.Publisher
	pacer *Pacer
}

// Ensure PacedPublisher implements model.Publisher.
var _ model.Publisher = (*PacedPublisher)(nil)

// NewPacedPublisher wraps a Publisher with per-channel pacing.
func NewPacedPublisher(inner model.Publisher, pacer *Pacer) *PacedPublisher {
	return &PacedPublisher{inner: inner, pacer: pacer}
}

func (p *PacedPublisher) Publish(ctx context.Context, text, channelID string) error {
	if err := p.pacer.Wait(ctx, channelID); err != nil {
		return err
	}
	return p.inner.Publish(ctx, text, channelID)
}
