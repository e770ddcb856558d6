// Package admin answers the operator's Telegram bot commands. It only reads
// the store and flips the pause flag; it never publishes to the channel.
package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/amishk599/remotefeed/internal/control"
	"github.com/amishk599/remotefeed/internal/model"
)

const (
	DefaultRecent = 5
	MaxRecent     = 20
)

const helpText = `Commands:
/status - posted jobs, pause flag and last cycle
/last [N] - last N posted jobs (1-20, default 5)
/pause - stop starting new cycles
/resume - start cycles again
/help - this message`

// Handler turns a command into a reply text.
type Handler struct {
	store   model.RecordReader
	state   *control.State
	adminID int64
	now     func() time.Time
}

// NewHandler creates a handler. An adminID of 0 serves every user.
func NewHandler(store model.RecordReader, state *control.State, adminID int64) *Handler {
	return &Handler{
		store:   store,
		state:   state,
		adminID: adminID,
		now:     time.Now,
	}
}

// Reply answers command (without the leading slash) sent by userID.
func (h *Handler) Reply(ctx context.Context, userID int64, command, args string) string {
	if h.adminID != 0 && userID != h.adminID {
		return "Access denied."
	}

	switch strings.ToLower(command) {
	case "status":
		return h.status(ctx)
	case "last":
		return h.last(ctx, args)
	case "pause":
		h.state.Pause()
		return "Paused. The current cycle, if any, will finish."
	case "resume":
		h.state.Resume()
		return "Resumed."
	case "help", "start":
		return helpText
	default:
		return "Unknown command.\n\n" + helpText
	}
}

func (h *Handler) status(ctx context.Context) string {
	var b strings.Builder

	count, err := h.store.Count(ctx)
	if err != nil {
		fmt.Fprintf(&b, "Posted (7 days): unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "Posted (7 days): %d\n", count)
	}

	fmt.Fprintf(&b, "Paused: %t\n", h.state.Paused())
	fmt.Fprintf(&b, "Phase: %s\n", h.state.Phase())

	cycles, published := h.state.Totals()
	fmt.Fprintf(&b, "Since start: %d cycles, %d published\n", cycles, published)

	last, ok := h.state.LastCycle()
	if !ok {
		b.WriteString("Last cycle: none yet")
		return b.String()
	}
	fmt.Fprintf(&b, "Last cycle: %s, took %s\n",
		humanize.RelTime(last.StartedAt, h.now(), "ago", "from now"),
		last.Duration.Round(time.Second))
	fmt.Fprintf(&b, "  fetched %d, suitable %d, classified %d\n", last.Fetched, last.Suitable, last.Classified)
	fmt.Fprintf(&b, "  duplicates %d, published %d, failed %d", last.Duplicates, last.Published, last.Failed)
	if last.Err != "" {
		fmt.Fprintf(&b, "\n  error: %s", last.Err)
	}
	return b.String()
}

func (h *Handler) last(ctx context.Context, args string) string {
	n := ParseRecentCount(args)
	records, err := h.store.Recent(ctx, n)
	if err != nil {
		return fmt.Sprintf("Could not read posted jobs: %v", err)
	}
	if len(records) == 0 {
		return "No jobs posted in the last 7 days."
	}
	return FormatRecords(records, h.now())
}

// ParseRecentCount reads the N of "/last N": default 5, clamped to 1..20.
func ParseRecentCount(args string) int {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return DefaultRecent
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return DefaultRecent
	}
	return min(max(n, 1), MaxRecent)
}

// FormatRecords renders records one per line, newest first as given.
func FormatRecords(records []model.PostedRecord, now time.Time) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		company := r.Company
		if company == "" {
			company = "?"
		}
		fmt.Fprintf(&b, "%d. [%s] %s @ %s (%s, %s)\n   %s",
			i+1, r.Level, r.Title, company, r.Source,
			humanize.RelTime(r.PostedAt, now, "ago", "from now"), r.URL)
	}
	return b.String()
}
