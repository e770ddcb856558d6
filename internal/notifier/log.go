package notifier

import (
	"context"
	"log/slog"
)

// LogPublisher writes messages to the given logger instead of a channel.
// Used for dry runs.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher returns a publisher that logs each message via slog.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the message. Returns nil (stdout logging does not fail).
func (p *LogPublisher) Publish(_ context.Context, text, channelID string) error {
	p.logger.Info("message", "channel", channelID, "text", text)
	return nil
}
