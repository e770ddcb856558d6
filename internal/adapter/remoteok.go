package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amishk599/remotefeed/internal/model"
)

const remoteOKURL = "https://remoteok.com/api"

// remoteOKJob represents a single element of the RemoteOK API array.
type remoteOKJob struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Salary      string   `json:"salary"`
	SalaryMin   int64    `json:"salary_min"`
	SalaryMax   int64    `json:"salary_max"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
}

// RemoteOKAdapter fetches jobs from the public RemoteOK feed.
type RemoteOKAdapter struct {
	client *http.Client
}

// NewRemoteOKAdapter creates a new RemoteOK adapter.
func NewRemoteOKAdapter(client *http.Client) *RemoteOKAdapter {
	return &RemoteOKAdapter{client: client}
}

func (a *RemoteOKAdapter) Name() string { return "RemoteOK" }

// FetchJobs retrieves the feed and normalizes it. The first array element
// is a legal notice, not a job.
func (a *RemoteOKAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	var items []remoteOKJob
	if err := getJSON(ctx, a.client, remoteOKURL, nil, &items); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	if len(items) <= 1 {
		return nil, nil
	}

	jobs := make([]model.RawJob, 0, len(items)-1)
	for _, it := range items[1:] {
		jobs = append(jobs, model.RawJob{
			Title:       it.Position,
			Company:     it.Company,
			Description: it.Description,
			URL:         it.URL,
			Location:    orDefault(it.Location, locationRemote),
			Salary:      it.Salary,
			MinSalary:   it.SalaryMin,
			MaxSalary:   it.SalaryMax,
			Currency:    "USD",
			PublishedAt: it.Date,
			Source:      a.Name(),
			Tags:        it.Tags,
		})
	}
	return jobs, nil
}
