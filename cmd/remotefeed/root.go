package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/remotefeed/internal/adapter"
	"github.com/amishk599/remotefeed/internal/config"
	"github.com/amishk599/remotefeed/internal/filter"
	"github.com/amishk599/remotefeed/internal/model"
	"github.com/amishk599/remotefeed/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "remotefeed",
	Short: "Remote IT jobs to a Telegram channel",
	Long:  "remotefeed collects remote IT vacancies from public job boards, keeps the junior and middle ones and posts them to a Telegram channel.",
	// Default to `start` so that `remotefeed` with no args runs the daemon.
	RunE:         runStart,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: REMOTEFEED_CONFIG env var or ./config.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > REMOTEFEED_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	return config.Load(config.ResolvePath(path))
}

// mustLoadConfig loads the configuration or exits: invalid startup
// configuration is fatal.
func mustLoadConfig(logger *slog.Logger) *config.Config {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// sourceNames is the fixed polling order.
var sourceNames = []string{"RemoteOK", "Remotive", "Jobicy", "HeadHunter", "SuperJob", "Adzuna"}

func createSource(name string, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Source {
	switch name {
	case "RemoteOK":
		return adapter.NewRemoteOKAdapter(httpClient)
	case "Remotive":
		return adapter.NewRemotiveAdapter(httpClient)
	case "Jobicy":
		return adapter.NewJobicyAdapter(httpClient)
	case "HeadHunter":
		return adapter.NewHeadHunterAdapter(httpClient)
	case "SuperJob":
		return adapter.NewSuperJobAdapter(cfg.Sources.SuperJobAPIKey, httpClient, logger)
	case "Adzuna":
		return adapter.NewAdzunaAdapter(cfg.Sources.AdzunaAppID, cfg.Sources.AdzunaAppKey,
			cfg.Sources.AdzunaCountries, httpClient, logger)
	}
	return nil
}

// enabledSourceNames returns the configured sources in polling order.
// An empty selection enables every source.
func enabledSourceNames(cfg *config.Config) ([]string, error) {
	if len(cfg.Sources.Enabled) == 0 {
		return sourceNames, nil
	}
	want := make(map[string]bool)
	for _, n := range cfg.Sources.Enabled {
		canonical := ""
		for _, known := range sourceNames {
			if strings.EqualFold(n, known) {
				canonical = known
			}
		}
		if canonical == "" {
			return nil, fmt.Errorf("unknown source %q (known: %s)", n, strings.Join(sourceNames, ", "))
		}
		want[canonical] = true
	}
	var out []string
	for _, n := range sourceNames {
		if want[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

// buildSources creates the enabled adapters. When withRetry is set each one
// is wrapped in a RetrySource configured from the delays section.
func buildSources(cfg *config.Config, httpClient *http.Client, withRetry bool, logger *slog.Logger) ([]model.Source, error) {
	names, err := enabledSourceNames(cfg)
	if err != nil {
		return nil, err
	}
	opts := retry.Options{
		MaxAttempts:       cfg.Retry.MaxAttempts,
		BetweenSources:    cfg.Delays.BetweenSources,
		Jitter:            cfg.Delays.Jitter,
		AfterError:        cfg.Delays.AfterError,
		DefaultRetryAfter: cfg.Delays.DefaultRetryAfter,
	}

	var sources []model.Source
	for _, name := range names {
		src := createSource(name, cfg, httpClient, logger)
		if withRetry {
			src = retry.NewRetrySource(src, opts, logger)
		}
		sources = append(sources, src)
		logger.Debug("registered source", "name", name)
	}
	return sources, nil
}

func newClassifier(cfg *config.Config) *filter.KeywordClassifier {
	kw := filter.DefaultKeywords().Merge(filter.Keywords{
		Remote:  cfg.Filters.Remote,
		ITRoles: cfg.Filters.ITRoles,
		Junior:  cfg.Filters.Junior,
		Middle:  cfg.Filters.Middle,
		Exclude: cfg.Filters.Exclude,
	})
	return filter.NewKeywordClassifier(kw)
}
