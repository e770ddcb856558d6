package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amishk599/remotefeed/internal/model"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	Description               string   `json:"description"`
	URL                       string   `json:"url"`
	Salary                    string   `json:"salary"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	PublicationDate           string   `json:"publication_date"`
	JobType                   string   `json:"job_type"`
	Tags                      []string `json:"tags"`
}

// RemotiveAdapter fetches jobs from the Remotive public API.
type RemotiveAdapter struct {
	client *http.Client
}

// NewRemotiveAdapter creates a new Remotive adapter.
func NewRemotiveAdapter(client *http.Client) *RemotiveAdapter {
	return &RemotiveAdapter{client: client}
}

func (a *RemotiveAdapter) Name() string { return "Remotive" }

func (a *RemotiveAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	var resp remotiveResponse
	if err := getJSON(ctx, a.client, remotiveURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}

	jobs := make([]model.RawJob, 0, len(resp.Jobs))
	for _, rj := range resp.Jobs {
		jobs = append(jobs, model.RawJob{
			Title:          rj.Title,
			Company:        rj.CompanyName,
			Description:    rj.Description,
			URL:            rj.URL,
			Location:       orDefault(rj.CandidateRequiredLocation, locationRemote),
			Salary:         rj.Salary,
			PublishedAt:    rj.PublicationDate,
			EmploymentType: rj.JobType,
			Source:         a.Name(),
			Tags:           rj.Tags,
		})
	}
	return jobs, nil
}
