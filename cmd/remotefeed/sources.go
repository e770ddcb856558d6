package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List job sources and their status",
	Long:  "Reads the config and prints every supported job source, whether it is enabled and whether its credentials are present.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	enabled, err := enabledSourceNames(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-10s %s\n", "Source", "Status", "Credentials")
	fmt.Println(strings.Repeat("─", 40))

	for _, name := range sourceNames {
		status := "disabled"
		if slices.Contains(enabled, name) {
			status = "enabled"
		}
		creds := "not needed"
		switch name {
		case "SuperJob":
			creds = present(cfg.Sources.SuperJobAPIKey != "")
		case "Adzuna":
			creds = present(cfg.Sources.AdzunaAppID != "" && cfg.Sources.AdzunaAppKey != "")
		}
		fmt.Printf("%-12s %-10s %s\n", name, status, creds)
	}

	fmt.Printf("\nTotal: %d sources (%d enabled)\n", len(sourceNames), len(enabled))
	return nil
}

func present(ok bool) string {
	if ok {
		return "set"
	}
	return "missing (source skipped)"
}
