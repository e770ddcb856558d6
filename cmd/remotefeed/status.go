package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amishk599/remotefeed/internal/admin"
	"github.com/amishk599/remotefeed/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what has been posted in the last 7 days",
	RunE:  runStatus,
}

var recentN int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently posted jobs",
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentN, "number", "n", admin.DefaultRecent, "how many jobs to list (1-20)")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(recentCmd)
}

// openReadStore opens the history without taking the daemon lock, so it
// works while `start` is running.
func openReadStore() *store.SQLiteStore {
	logger := setupLogger(debug)
	cfg := mustLoadConfig(logger)

	if _, err := os.Stat(cfg.Database); err != nil {
		fmt.Fprintf(os.Stderr, "no database at %s: %v\n", cfg.Database, err)
		os.Exit(1)
	}
	s, err := store.NewSQLiteStore(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	return s
}

func runStatus(cmd *cobra.Command, args []string) error {
	s := openReadStore()
	defer s.Close()

	ctx := context.Background()
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Posted in the last 7 days: %s\n", humanize.Comma(int64(count)))

	records, err := s.Recent(ctx, 1)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		fmt.Printf("Last post: %s (%s)\n", records[0].Title, humanize.Time(records[0].PostedAt))
	}
	return nil
}

func runRecent(cmd *cobra.Command, args []string) error {
	s := openReadStore()
	defer s.Close()

	n := admin.ParseRecentCount(fmt.Sprint(recentN))
	records, err := s.Recent(context.Background(), n)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No jobs posted in the last 7 days.")
		return nil
	}

	fmt.Printf("%-7s %-45s %-25s %-11s %s\n", "Level", "Title", "Company", "Source", "Posted")
	fmt.Println(strings.Repeat("─", 105))
	for _, r := range records {
		fmt.Printf("%-7s %-45s %-25s %-11s %s\n",
			r.Level, clip(r.Title, 45), clip(r.Company, 25), r.Source,
			humanize.RelTime(r.PostedAt, time.Now(), "ago", "from now"))
	}
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
