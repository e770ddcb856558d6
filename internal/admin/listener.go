package admin

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Listener long-polls the bot for updates and answers commands.
type Listener struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	timeout int // long-poll timeout in seconds
	logger  *slog.Logger
}

// NewListener creates a listener. pollTimeout is the getUpdates long-poll
// timeout in seconds.
func NewListener(bot *tgbotapi.BotAPI, handler *Handler, pollTimeout int, logger *slog.Logger) *Listener {
	return &Listener{
		bot:     bot,
		handler: handler,
		timeout: pollTimeout,
		logger:  logger,
	}
}

// Run handles updates until ctx is cancelled. It returns nil on shutdown.
// A long poll already in flight is abandoned, not awaited.
func (l *Listener) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = l.timeout
	cfg.AllowedUpdates = []string{"message"}

	updates := l.bot.GetUpdatesChan(cfg)
	l.logger.Info("admin listener started", "bot", l.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			l.bot.StopReceivingUpdates()
			l.logger.Info("admin listener stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			l.handle(ctx, update)
		}
	}
}

func (l *Listener) handle(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	command := msg.Command()
	l.logger.Info("admin command", "command", command, "user", userID)

	reply := tgbotapi.NewMessage(msg.Chat.ID, l.handler.Reply(ctx, userID, command, msg.CommandArguments()))
	reply.DisableWebPagePreview = true
	if _, err := l.bot.Send(reply); err != nil {
		l.logger.Warn("admin reply failed", "command", command, "error", err)
	}
}
