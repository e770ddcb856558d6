package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/amishk599/remotefeed/internal/adapter"
	"github.com/amishk599/remotefeed/internal/admin"
	"github.com/amishk599/remotefeed/internal/control"
	"github.com/amishk599/remotefeed/internal/notifier"
	"github.com/amishk599/remotefeed/internal/poller"
	"github.com/amishk599/remotefeed/internal/ratelimit"
	"github.com/amishk599/remotefeed/internal/scheduler"
	"github.com/amishk599/remotefeed/internal/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the publishing daemon",
	Long:  "Start the collection loop and the admin command listener; blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)
	if err := cfg.RequireTelegram(); err != nil {
		logger.Error("telegram is not configured", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.PollInterval.String(),
		"channel", cfg.Telegram.ChannelID,
		"max_posts_per_cycle", cfg.MaxPostsPerCycle,
		"database", cfg.Database,
		"admin_commands", cfg.Telegram.AdminUserID != 0,
	)

	sqlStore, err := store.NewSQLiteStore(cfg.Database, store.WithLock())
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			logger.Error("another remotefeed instance is using this database", "database", cfg.Database)
		} else {
			logger.Error("failed to open store", "error", err)
		}
		os.Exit(1)
	}
	defer sqlStore.Close()

	sources, err := buildSources(cfg, adapter.NewHTTPClient(), true, logger)
	if err != nil {
		logger.Error("invalid sources", "error", err)
		os.Exit(1)
	}

	// The bot client must outlive a getUpdates long poll.
	botClient := &http.Client{Timeout: time.Duration(cfg.Telegram.PollTimeout)*time.Second + 15*time.Second}
	bot, err := notifier.NewBot(cfg.Telegram.BotToken, "", botClient)
	if err != nil {
		logger.Error("failed to connect telegram bot", "error", err)
		os.Exit(1)
	}
	logger.Info("telegram bot connected", "bot", bot.Self.UserName)

	publisher := ratelimit.NewPacedPublisher(
		notifier.NewTelegramPublisher(bot, logger),
		ratelimit.NewPacer(cfg.Delays.BetweenPosts),
	)
	state := control.NewState()

	p := poller.NewPoller(sources, newClassifier(cfg), sqlStore, publisher, state, poller.Options{
		ChannelID:        cfg.Telegram.ChannelID,
		MaxPostsPerCycle: cfg.MaxPostsPerCycle,
	}, logger)

	sched := scheduler.NewScheduler(p, state, scheduler.Options{
		Interval:   cfg.PollInterval,
		Cooldown:   cfg.Delays.Cooldown,
		PauseCheck: cfg.Delays.PauseCheck,
	}, logger)

	listener := admin.NewListener(bot,
		admin.NewHandler(sqlStore, state, cfg.Telegram.AdminUserID),
		cfg.Telegram.PollTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(gctx) })
	g.Go(func() error { return listener.Run(gctx) })

	if err := g.Wait(); err != nil {
		logger.Error("daemon error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
