package adapter

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/amishk599/remotefeed/internal/model"
)

const jobicyURL = "https://jobicy.com/api/v2/remote-jobs?count=50"

type jobicyResponse struct {
	Jobs []jobicyJob `json:"jobs"`
}

// jobicyJob mirrors the Jobicy v2 job object. jobType and jobIndustry are
// sometimes a string and sometimes an array.
type jobicyJob struct {
	JobTitle        string      `json:"jobTitle"`
	CompanyName     string      `json:"companyName"`
	JobExcerpt      string      `json:"jobExcerpt"`
	URL             string      `json:"url"`
	JobGeo          string      `json:"jobGeo"`
	PubDate         string      `json:"pubDate"`
	JobPosted       string      `json:"jobPosted"`
	JobType         flexStrings `json:"jobType"`
	JobIndustry     flexStrings `json:"jobIndustry"`
	AnnualSalaryMin flexNumber  `json:"annualSalaryMin"`
	AnnualSalaryMax flexNumber  `json:"annualSalaryMax"`
	SalaryCurrency  string      `json:"salaryCurrency"`
}

// JobicyAdapter fetches jobs from the Jobicy remote jobs API.
type JobicyAdapter struct {
	client *http.Client
}

// NewJobicyAdapter creates a new Jobicy adapter.
func NewJobicyAdapter(client *http.Client) *JobicyAdapter {
	return &JobicyAdapter{client: client}
}

func (a *JobicyAdapter) Name() string { return "Jobicy" }

func (a *JobicyAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	var resp jobicyResponse
	if err := getJSON(ctx, a.client, jobicyURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("jobicy fetch: %w", err)
	}

	jobs := make([]model.RawJob, 0, len(resp.Jobs))
	for _, jj := range resp.Jobs {
		published := jj.PubDate
		if published == "" {
			published = jj.JobPosted
		}

		var tags []string
		for _, industry := range jj.JobIndustry {
			tags = append(tags, html.UnescapeString(industry))
		}

		jobs = append(jobs, model.RawJob{
			Title:          html.UnescapeString(jj.JobTitle),
			Company:        jj.CompanyName,
			Description:    jj.JobExcerpt,
			URL:            jj.URL,
			Location:       orDefault(jj.JobGeo, locationRemote),
			MinSalary:      int64(jj.AnnualSalaryMin),
			MaxSalary:      int64(jj.AnnualSalaryMax),
			Currency:       jj.SalaryCurrency,
			PublishedAt:    published,
			EmploymentType: strings.Join(jj.JobType, ", "),
			Source:         a.Name(),
			Tags:           tags,
		})
	}
	return jobs, nil
}
