package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/remotefeed/internal/adapter"
	"github.com/amishk599/remotefeed/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test message to the channel",
	Long:  "Sends a test message to the configured Telegram channel.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)
	if err := cfg.RequireTelegram(); err != nil {
		logger.Error("telegram is not configured", "error", err)
		os.Exit(1)
	}

	bot, err := notifier.NewBot(cfg.Telegram.BotToken, "", adapter.NewHTTPClient())
	if err != nil {
		logger.Error("failed to connect telegram bot", "error", err)
		os.Exit(1)
	}

	p := notifier.NewTelegramPublisher(bot, logger)
	if err := notifier.SendTestMessage(context.Background(), p, cfg.Telegram.ChannelID); err != nil {
		logger.Error("test message failed", "error", err)
		os.Exit(1)
	}
	logger.Info("test message sent successfully", "channel", cfg.Telegram.ChannelID)
	return nil
}
