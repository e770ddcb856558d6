package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/remotefeed/internal/model"
)

func TestSalary(t *testing.T) {
	tests := []struct {
		name string
		job  model.RawJob
		want string
	}{
		{name: "nothing set", job: model.RawJob{}, want: SalaryNotSpecified},
		{name: "preformatted wins", job: model.RawJob{Salary: "$80k - $100k", MinSalary: 1, MaxSalary: 2}, want: "$80k - $100k"},
		{name: "sentinel string ignored", job: model.RawJob{Salary: "Не указана"}, want: SalaryNotSpecified},
		{name: "english sentinel ignored", job: model.RawJob{Salary: "Not specified"}, want: SalaryNotSpecified},
		{name: "range", job: model.RawJob{MinSalary: 3000, MaxSalary: 5000, Currency: "USD"}, want: "$3,000-$5,000 USD"},
		{name: "range default currency", job: model.RawJob{MinSalary: 120000, MaxSalary: 150000}, want: "$120,000-$150,000 USD"},
		{name: "max only", job: model.RawJob{MaxSalary: 5000, Currency: "eur"}, want: "до $5,000 EUR"},
		{name: "min only", job: model.RawJob{MinSalary: 3000, Currency: "GBP"}, want: SalaryNotSpecified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Salary(tt.job))
		})
	}
}

func TestSkills_TagsAndStackMergedCaseInsensitively(t *testing.T) {
	job := model.RawJob{
		Title: "Senior Python Developer",
		Tags:  []string{"Docker", "python"},
	}

	got := Skills(job)

	assert.LessOrEqual(t, len(got), MaxSkills)
	assert.Equal(t, []string{"Docker", "Python"}, got)
}

func TestSkills_SortedAndCapped(t *testing.T) {
	job := model.RawJob{
		Title:       "Fullstack engineer",
		Description: "We use React, TypeScript, PostgreSQL, Redis, Docker and Kubernetes on AWS.",
		Tags:        []string{"remote", "this tag is definitely far too long to keep"},
	}

	got := Skills(job)

	require.Len(t, got, MaxSkills)
	assert.IsIncreasing(t, got)
	for _, s := range got {
		assert.NotEqual(t, "This Tag Is Definitely Far Too Long To Keep", s)
	}
}

func TestSkills_Deterministic(t *testing.T) {
	job := model.RawJob{Title: "Go developer", Description: "rust, php, ruby", Tags: []string{"b", "a", "c"}}
	first := Skills(job)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Skills(job))
	}
}

func TestPostedDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-01-15T10:00:00+00:00", "15 янв 2024"},
		{"2024-01-15T10:00:00Z", "15 янв 2024"},
		{"2024-03-02T08:15:00.123Z", "2 мар 2024"},
		{"2024-05-09T23:30:00+0300", "9 май 2024"},
		{"2024-12-31T10:00:00", "31 дек 2024"},
		{"2024-06-01 12:00:00", "1 июн 2024"},
		{"2024-07-20 garbage after prefix", "20 июл 2024"},
		{"", DateRecently},
		{"yesterday", DateRecently},
		{"1705312800", DateRecently},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, PostedDate(model.RawJob{PublishedAt: tt.raw}))
		})
	}
}

func TestEmploymentType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"full_time", EmploymentFull},
		{"Full-Time", EmploymentFull},
		{"Полная занятость", EmploymentFull},
		{"part_time", EmploymentPart},
		{"Частичная занятость", EmploymentPart},
		{"contract", EmploymentContract},
		{"Контракт", EmploymentContract},
		{"freelance", "⏰ freelance"},
		{"", EmploymentUnspecified},
		{"   ", EmploymentUnspecified},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, EmploymentType(model.RawJob{EmploymentType: tt.raw}))
		})
	}
}

func TestDescription(t *testing.T) {
	t.Run("strips tags and collapses whitespace", func(t *testing.T) {
		job := model.RawJob{Description: "<p>We are   hiring.</p>\n<ul><li>Write code</li><li>Review&nbsp;PRs</li></ul>"}
		assert.Equal(t, "We are hiring. Write code Review PRs", Description(job))
	})

	t.Run("empty yields sentinel", func(t *testing.T) {
		assert.Equal(t, DescriptionUnspecified, Description(model.RawJob{}))
		assert.Equal(t, DescriptionUnspecified, Description(model.RawJob{Description: "<div> </div>"}))
	})

	t.Run("truncates at word boundary", func(t *testing.T) {
		long := strings.Repeat("word ", 200)
		got := Description(model.RawJob{Description: long})

		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxDescriptionLength+3)
		assert.False(t, strings.Contains(got, "wor..."), "must not cut inside a word")
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		short := strings.Repeat("слово ", 50) // 300 runes, 550+ bytes
		got := Description(model.RawJob{Description: short})
		assert.False(t, strings.HasSuffix(got, "..."))
	})
}
