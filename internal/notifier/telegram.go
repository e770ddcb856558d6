package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amishk599/remotefeed/internal/model"
)

// Ensure TelegramPublisher implements model.Publisher.
var _ model.Publisher = (*TelegramPublisher)(nil)

// NewBot connects to the Bot API and verifies the token with getMe.
// An empty endpoint selects the public Telegram API.
func NewBot(token, endpoint string, client *http.Client) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token: %w", model.ErrMissingCredentials)
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connecting telegram bot: %w", err)
	}
	return bot, nil
}

// TelegramPublisher posts HTML messages to a Telegram chat or channel.
type TelegramPublisher struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

// NewTelegramPublisher returns a publisher sending through bot.
func NewTelegramPublisher(bot *tgbotapi.BotAPI, logger *slog.Logger) *TelegramPublisher {
	return &TelegramPublisher{bot: bot, logger: logger}
}

// Publish sends text with HTML parse mode and link previews disabled.
// channelID is either "@username" or a numeric chat id. The Bot API client
// has no context support, so ctx is only checked before sending.
func (p *TelegramPublisher) Publish(ctx context.Context, text, channelID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newChannelMessage(channelID, text)
	if err != nil {
		return err
	}
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := p.bot.Send(msg); err != nil {
		return classifySendError(err)
	}
	p.logger.Debug("telegram message sent", "channel", channelID, "chars", len([]rune(text)))
	return nil
}

func newChannelMessage(channelID, text string) (tgbotapi.MessageConfig, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return tgbotapi.MessageConfig{}, errors.New("empty channel id")
	}
	if id, err := strconv.ParseInt(channelID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text), nil
	}
	if !strings.HasPrefix(channelID, "@") {
		channelID = "@" + channelID
	}
	return tgbotapi.NewMessageToChannel(channelID, text), nil
}

// classifySendError maps Bot API failures onto the publisher error contract.
func classifySendError(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusTooManyRequests || apiErr.RetryAfter > 0) {
		return &model.RateLimitError{
			RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
			Err:        err,
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", model.ErrPublishTimeout, err)
	}
	return fmt.Errorf("telegram send: %w", err)
}
