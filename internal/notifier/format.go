package notifier

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/amishk599/remotefeed/internal/extract"
	"github.com/amishk599/remotefeed/internal/model"
)

// MaxMessageLength is Telegram's limit for a text message, in characters.
const MaxMessageLength = 4096

// TruncationMarker ends every truncated message.
const TruncationMarker = "…"

// FormatJobMessage renders a classified job as a Telegram HTML message.
// Every value taken from the job is HTML-escaped.
func FormatJobMessage(job model.ClassifiedJob) string {
	emoji := "🟢"
	if job.Level == model.LevelMiddle {
		emoji = "🟡"
	}
	location := job.Location
	if strings.TrimSpace(location) == "" {
		location = "Remote"
	}

	esc := html.EscapeString
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s <b>%s</b>", emoji, esc(job.Title))
	line("")
	line("🏢 <b>Компания:</b> %s", esc(job.Company))
	line("📍 <b>Локация:</b> %s", esc(location))
	line("💵 <b>Зарплата:</b> %s", esc(extract.Salary(job.RawJob)))
	line("🎯 <b>Уровень:</b> %s", job.Level)
	line("📅 <b>Дата публикации:</b> %s", extract.PostedDate(job.RawJob))
	line("%s", esc(extract.EmploymentType(job.RawJob)))
	line("")
	line("📋 <b>Описание:</b>")
	line("%s", esc(extract.Description(job.RawJob)))
	line("")
	line("<b>🛠 Навыки:</b>")
	skills := extract.Skills(job.RawJob)
	if len(skills) == 0 {
		line("  Не указаны")
	}
	for _, s := range skills {
		line("  • %s", esc(s))
	}
	line("")
	line("🔗 <a href=\"%s\">Откликнуться на вакансию</a>", esc(job.URL))
	fmt.Fprintf(&b, "📌 Источник: %s", esc(job.Source))

	return b.String()
}

// Truncate shortens text to at most limit runes, ending with TruncationMarker.
// A cut never leaves a partial tag or entity, and tags still open at the cut
// are closed before the marker.
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	marker := []rune(TruncationMarker)
	if limit < len(marker) {
		return string(marker[:max(limit, 0)])
	}

	runes := []rune(text)
	budget := limit - len(marker)
	// reserve grows strictly on every miss, so the loop ends.
	for reserve := 0; reserve <= budget; {
		cut := trimPartialMarkup(string(runes[:budget-reserve]))
		closers := closingTags(cut)
		if utf8.RuneCountInString(cut)+utf8.RuneCountInString(closers) <= budget {
			return cut + closers + TruncationMarker
		}
		reserve = utf8.RuneCountInString(closers)
	}
	return TruncationMarker
}

// trimPartialMarkup drops a trailing unterminated tag or entity.
func trimPartialMarkup(s string) string {
	if open := strings.LastIndex(s, "<"); open > strings.LastIndex(s, ">") {
		s = s[:open]
	}
	if amp := strings.LastIndex(s, "&"); amp > strings.LastIndex(s, ";") {
		s = s[:amp]
	}
	return s
}

// closingTags returns the end tags for every element left open in s,
// innermost first.
func closingTags(s string) string {
	var open []string
	for {
		start := strings.Index(s, "<")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], ">")
		if end < 0 {
			break
		}
		tag := s[start+1 : start+end]
		s = s[start+end+1:]

		if name, ok := strings.CutPrefix(tag, "/"); ok {
			name = strings.TrimSpace(name)
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == name {
					open = open[:i]
					break
				}
			}
			continue
		}
		if name, _, _ := strings.Cut(tag, " "); name != "" {
			open = append(open, name)
		}
	}

	var b strings.Builder
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}
	return b.String()
}
