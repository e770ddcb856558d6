package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/remotefeed/internal/adapter"
	"github.com/amishk599/remotefeed/internal/notifier"
	"github.com/amishk599/remotefeed/internal/poller"
	"github.com/amishk599/remotefeed/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one cycle without publishing",
	Long:  "One-shot dry run: fetches every enabled source, classifies, logs the messages that would be posted, exits. Does not write to the store.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	logger.Info("check mode: nothing will be published or recorded")

	sources, err := buildSources(cfg, adapter.NewHTTPClient(), true, logger)
	if err != nil {
		logger.Error("invalid sources", "error", err)
		os.Exit(1)
	}

	p := poller.NewPoller(sources, newClassifier(cfg), store.NewNopStore(), notifier.NewLogPublisher(logger), nil,
		poller.Options{
			ChannelID:        cfg.Telegram.ChannelID,
			MaxPostsPerCycle: cfg.MaxPostsPerCycle,
		}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := p.Poll(ctx)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nfetched %d, suitable %d, classified %d, would publish %d\n",
		stats.Fetched, stats.Suitable, stats.Classified, stats.Published)
	return nil
}
