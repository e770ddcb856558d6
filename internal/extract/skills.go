package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amishk599/remotefeed/internal/model"
)

// MaxSkills caps the number of skills shown per job.
const MaxSkills = 5

// maxTagLength excludes provider tags that are really sentences.
const maxTagLength = 25

// TechStack lists technologies recognized in title and description text.
var TechStack = []string{
	"Python", "JavaScript", "TypeScript", "React", "Vue", "Angular",
	"Node.js", "Django", "Flask", "FastAPI", "Express", "Next.js",
	"PostgreSQL", "MongoDB", "MySQL", "Redis", "SQLite",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"Git", "CI/CD", "REST API", "GraphQL",
	"HTML", "CSS", "SASS", "Tailwind",
	"Figma", "Sketch",
	"Java", "C#", "Go", "Rust", "PHP", "Ruby", "Swift", "Kotlin",
}

var techByKey = func() map[string]string {
	m := make(map[string]string, len(TechStack))
	for _, tech := range TechStack {
		m[strings.ToLower(tech)] = tech
	}
	return m
}()

// Skills merges short provider tags with tech-stack keywords found in the
// job text. The result is deduplicated case-insensitively, sorted and capped
// at MaxSkills.
func Skills(job model.RawJob) []string {
	titler := cases.Title(language.Und)
	byKey := make(map[string]string)

	for _, tag := range job.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || utf8.RuneCountInString(tag) >= maxTagLength {
			continue
		}
		key := strings.ToLower(tag)
		if canonical, ok := techByKey[key]; ok {
			byKey[key] = canonical
			continue
		}
		byKey[key] = titler.String(tag)
	}

	text := strings.ToLower(job.Title + " " + job.Description)
	for _, tech := range TechStack {
		key := strings.ToLower(tech)
		if strings.Contains(text, key) {
			byKey[key] = tech
		}
	}

	skills := make([]string, 0, len(byKey))
	for _, display := range byKey {
		skills = append(skills, display)
	}
	sort.Strings(skills)

	if len(skills) > MaxSkills {
		skills = skills[:MaxSkills]
	}
	return skills
}
