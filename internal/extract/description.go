package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/remotefeed/internal/model"
)

// DescriptionUnspecified is shown when a job has no description text.
const DescriptionUnspecified = "Описание не указано"

// MaxDescriptionLength is the rune budget for the description excerpt.
const MaxDescriptionLength = 350

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// Description strips HTML, collapses whitespace and truncates the text to
// MaxDescriptionLength runes at a word boundary.
func Description(job model.RawJob) string {
	text := PlainText(job.Description)
	text = truncateWords(text, MaxDescriptionLength)
	if text == "" {
		return DescriptionUnspecified
	}
	return text
}

// PlainText converts HTML to whitespace-collapsed text. Entities are decoded.
func PlainText(content string) string {
	if content == "" {
		return ""
	}
	var plain string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		plain = htmlTagRegex.ReplaceAllString(content, " ")
	} else {
		// Block elements lose their separation in Text(); pad them first.
		doc.Find("p, br, li, div, h1, h2, h3, h4, tr").Each(func(_ int, s *goquery.Selection) {
			s.AppendHtml(" ")
		})
		plain = doc.Text()
	}
	return strings.Join(strings.Fields(plain), " ")
}

func truncateWords(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
