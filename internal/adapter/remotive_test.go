package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/amishk599/remotefeed/internal/model"
)

func TestRemotiveAdapter_FetchJobs_Success(t *testing.T) {
	payload := `{
		"job-count": 2,
		"jobs": [
			{
				"title": "Frontend Developer",
				"company_name": "Initech",
				"description": "<p>React and TypeScript</p>",
				"url": "https://remotive.com/remote-jobs/software-dev/frontend-1",
				"salary": "$50k - $70k",
				"candidate_required_location": "Worldwide",
				"publication_date": "2024-01-15T10:00:00",
				"job_type": "full_time",
				"tags": ["react", "typescript"]
			},
			{
				"title": "Data Analyst",
				"company_name": "Hooli",
				"url": "https://remotive.com/remote-jobs/data/analyst-2",
				"candidate_required_location": ""
			}
		]
	}`
	srv := jsonServer(t, payload)

	jobs, err := NewRemotiveAdapter(newTestClient(srv)).FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Company != "Initech" {
		t.Errorf("Company = %q, want Initech", j.Company)
	}
	if j.Salary != "$50k - $70k" {
		t.Errorf("Salary = %q", j.Salary)
	}
	if j.Location != "Worldwide" {
		t.Errorf("Location = %q, want Worldwide", j.Location)
	}
	if j.EmploymentType != "full_time" {
		t.Errorf("EmploymentType = %q, want full_time", j.EmploymentType)
	}
	if j.PublishedAt != "2024-01-15T10:00:00" {
		t.Errorf("PublishedAt = %q", j.PublishedAt)
	}
	if j.Source != "Remotive" {
		t.Errorf("Source = %q, want Remotive", j.Source)
	}
	if jobs[1].Location != "Remote" {
		t.Errorf("expected default location Remote, got %q", jobs[1].Location)
	}
}

func TestRemotiveAdapter_FetchJobs_MalformedJSON(t *testing.T) {
	srv := jsonServer(t, `{"jobs": [{"title": 42}]}`)

	_, err := NewRemotiveAdapter(newTestClient(srv)).FetchJobs(context.Background())
	if !errors.Is(err, model.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}
