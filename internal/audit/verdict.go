package audit

import (
	"html"
	"regexp"
	"strings"

	"github.com/amishk599/remotefeed/internal/extract"
	"github.com/amishk599/remotefeed/internal/model"
	"github.com/amishk599/remotefeed/internal/notifier"
)

// Verdict is the classifier's decision for one fetched job.
type Verdict struct {
	Job      model.RawJob
	Suitable bool
	Level    model.Level
}

// Accepted reports whether the job would reach the publishing phase.
func (v Verdict) Accepted() bool {
	return v.Suitable && v.Level != model.LevelExcluded
}

// Label is a short human-readable decision.
func (v Verdict) Label() string {
	switch {
	case !v.Suitable:
		return "not suitable"
	case v.Level == model.LevelExcluded:
		return "excluded"
	default:
		return v.Level.String()
	}
}

// Classified returns the job as the pipeline would see it after classification.
func (v Verdict) Classified() model.ClassifiedJob {
	return model.ClassifiedJob{RawJob: v.Job, Level: v.Level}
}

// Evaluate runs the suitability and level decisions over jobs, keeping order.
func Evaluate(jobs []model.RawJob, classifier model.JobClassifier) []Verdict {
	out := make([]Verdict, 0, len(jobs))
	for _, j := range jobs {
		v := Verdict{Job: j}
		if classifier.Match(j) {
			v.Suitable = true
			v.Level = classifier.Classify(j)
		}
		out = append(out, v)
	}
	return out
}

// Accepted filters verdicts down to those that would be published.
func Accepted(verdicts []Verdict) []Verdict {
	var out []Verdict
	for _, v := range verdicts {
		if v.Accepted() {
			out = append(out, v)
		}
	}
	return out
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// MessagePreview renders the channel message for a job as terminal text:
// the same layout that would be posted, with HTML tags removed.
func MessagePreview(v Verdict) string {
	msg := notifier.Truncate(notifier.FormatJobMessage(v.Classified()), notifier.MaxMessageLength)
	return html.UnescapeString(tagRegex.ReplaceAllString(msg, ""))
}

// summaryLine is the one-line subtitle shown under a job title in the lists.
func summaryLine(v Verdict) string {
	company := v.Job.Company
	if company == "" {
		company = "?"
	}
	return strings.Join([]string{company, extract.Salary(v.Job), extract.PostedDate(v.Job)}, " · ")
}
