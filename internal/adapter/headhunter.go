package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/amishk599/remotefeed/internal/model"
)

const headHunterURL = "https://api.hh.ru/vacancies"

type hhResponse struct {
	Items []hhVacancy `json:"items"`
}

type hhVacancy struct {
	Name         string `json:"name"`
	AlternateURL string `json:"alternate_url"`
	PublishedAt  string `json:"published_at"`
	Salary       *struct {
		From     int64  `json:"from"`
		To       int64  `json:"to"`
		Currency string `json:"currency"`
	} `json:"salary"`
	Employer struct {
		Name string `json:"name"`
	} `json:"employer"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Snippet struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
	Employment *struct {
		Name string `json:"name"`
	} `json:"employment"`
}

// HeadHunterAdapter searches remote vacancies on hh.ru. No credentials needed.
type HeadHunterAdapter struct {
	client *http.Client
}

// NewHeadHunterAdapter creates a new HeadHunter adapter.
func NewHeadHunterAdapter(client *http.Client) *HeadHunterAdapter {
	return &HeadHunterAdapter{client: client}
}

func (a *HeadHunterAdapter) Name() string { return "HeadHunter" }

func (a *HeadHunterAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	q := url.Values{}
	q.Set("text", "программист разработчик developer")
	q.Set("per_page", "50")
	q.Set("page", "0")
	q.Set("schedule", "remote")

	var resp hhResponse
	if err := getJSON(ctx, a.client, headHunterURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("headhunter fetch: %w", err)
	}

	jobs := make([]model.RawJob, 0, len(resp.Items))
	for _, item := range resp.Items {
		job := model.RawJob{
			Title:       item.Name,
			Company:     item.Employer.Name,
			Description: strings.TrimSpace(item.Snippet.Requirement + " " + item.Snippet.Responsibility),
			URL:         item.AlternateURL,
			Location:    orDefault(item.Area.Name, locationRemoteRU),
			PublishedAt: item.PublishedAt,
			Source:      a.Name(),
		}
		if item.Salary != nil {
			currency := orDefault(item.Salary.Currency, "RUB")
			job.Salary = salaryRange(item.Salary.From, item.Salary.To, currency)
			job.Currency = currency
		}
		if item.Employment != nil {
			job.EmploymentType = item.Employment.Name
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
