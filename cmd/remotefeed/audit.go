package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/amishk599/remotefeed/internal/adapter"
	"github.com/amishk599/remotefeed/internal/audit"
	"github.com/amishk599/remotefeed/internal/config"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Browse a source's jobs and classifier verdicts (TUI)",
	Long:  "Shows the source picker TUI, fetches the chosen source, then launches the split-pane audit view. Never writes to the store.",
	RunE:  runAuditCmd,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAuditCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	// Audit mode runs a TUI; any log output while it is on screen corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return runAudit(cfg, silentLogger)
}

func runAudit(cfg *config.Config, logger *slog.Logger) error {
	// No retry wrapper: a single fetch without pacing keeps the spinner short.
	sources, err := buildSources(cfg, adapter.NewHTTPClient(), false, logger)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("No enabled sources in config.")
		return nil
	}
	classifier := newClassifier(cfg)

	for {
		choice, err := audit.RunSourcePicker(sources)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}
		src := sources[choice]

		jobs, err := audit.RunLoader(src)
		if err != nil {
			fmt.Printf("Error fetching jobs: %v\n", err)
			continue
		}
		for i := range jobs {
			if jobs[i].Source == "" {
				jobs[i].Source = src.Name()
			}
		}

		wantQuit, err := audit.RunAuditTUI(src.Name(), audit.Evaluate(jobs, classifier))
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}
