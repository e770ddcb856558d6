package filter

import (
	"strings"

	"github.com/amishk599/remotefeed/internal/model"
)

// Ensure KeywordClassifier implements model.JobClassifier.
var _ model.JobClassifier = (*KeywordClassifier)(nil)

// KeywordClassifier decides suitability and seniority from keyword lists
// matched against the lowercased title and description.
type KeywordClassifier struct {
	kw Keywords
}

// NewKeywordClassifier lowercases the keyword lists once and returns a classifier.
func NewKeywordClassifier(kw Keywords) *KeywordClassifier {
	return &KeywordClassifier{
		kw: Keywords{
			Remote:  lowerAll(kw.Remote),
			ITRoles: lowerAll(kw.ITRoles),
			Junior:  lowerAll(kw.Junior),
			Middle:  lowerAll(kw.Middle),
			Exclude: lowerAll(kw.Exclude),
		},
	}
}

// Match reports whether the job is a remote IT role: the text must contain
// both a remote keyword and an IT-role keyword.
func (c *KeywordClassifier) Match(job model.RawJob) bool {
	text := jobText(job)
	return containsAny(text, c.kw.Remote) && containsAny(text, c.kw.ITRoles)
}

// Classify returns the seniority level. The first rule that matches wins:
// exclusion, junior, middle, any IT role (defaults to junior), otherwise excluded.
func (c *KeywordClassifier) Classify(job model.RawJob) model.Level {
	text := jobText(job)

	switch {
	case containsAny(text, c.kw.Exclude):
		return model.LevelExcluded
	case containsAny(text, c.kw.Junior):
		return model.LevelJunior
	case containsAny(text, c.kw.Middle):
		return model.LevelMiddle
	case containsAny(text, c.kw.ITRoles):
		return model.LevelJunior
	}
	return model.LevelExcluded
}

func jobText(job model.RawJob) string {
	return strings.ToLower(job.Title + " " + job.Description)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
