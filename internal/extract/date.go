package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/remotefeed/internal/model"
)

// DateRecently is shown when the publish date is absent or unparseable.
const DateRecently = "Недавно"

var ruMonths = [12]string{"янв", "фев", "мар", "апр", "май", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}

// Layouts seen across providers: RFC 3339 (RemoteOK, Adzuna), "+0300" offsets
// (HeadHunter), zone-less ISO (Remotive) and space-separated (Jobicy).
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// PostedDate renders the provider's publish timestamp as "15 янв 2024".
func PostedDate(job model.RawJob) string {
	t, ok := ParseTimestamp(job.PublishedAt)
	if !ok {
		return DateRecently
	}
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
}

// ParseTimestamp tries every known layout, then a bare YYYY-MM-DD prefix.
// The returned time keeps the zone it was written in.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if len(raw) >= 10 {
		if t, err := time.Parse(time.DateOnly, raw[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
