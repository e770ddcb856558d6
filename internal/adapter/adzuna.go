package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amishk599/remotefeed/internal/model"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// DefaultAdzunaCountries are searched when no countries are configured.
var DefaultAdzunaCountries = []string{"us", "gb"}

var adzunaCurrencies = map[string]string{
	"us": "USD",
	"gb": "GBP",
	"ca": "CAD",
	"au": "AUD",
	"nz": "NZD",
	"in": "INR",
	"za": "ZAR",
	"sg": "SGD",
	"br": "BRL",
	"pl": "PLN",
	"ch": "CHF",
	"de": "EUR",
	"fr": "EUR",
	"nl": "EUR",
	"it": "EUR",
	"es": "EUR",
	"at": "EUR",
	"be": "EUR",
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Contract    string  `json:"contract_type"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// AdzunaAdapter searches remote developer jobs in several Adzuna country
// indexes. A failing country is logged and skipped; the fetch fails only
// when every country does.
type AdzunaAdapter struct {
	appID        string
	appKey       string
	countries    []string
	countryPause time.Duration
	client       *http.Client
	logger       *slog.Logger
	notice       credentialNotice
}

// NewAdzunaAdapter creates a new Adzuna adapter. Empty credentials make
// FetchJobs a no-op; empty countries fall back to DefaultAdzunaCountries.
func NewAdzunaAdapter(appID, appKey string, countries []string, client *http.Client, logger *slog.Logger) *AdzunaAdapter {
	if len(countries) == 0 {
		countries = DefaultAdzunaCountries
	}
	return &AdzunaAdapter{
		appID:        appID,
		appKey:       appKey,
		countries:    countries,
		countryPause: 2 * time.Second,
		client:       client,
		logger:       logger,
	}
}

func (a *AdzunaAdapter) Name() string { return "Adzuna" }

func (a *AdzunaAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	if a.appID == "" || a.appKey == "" {
		a.notice.log(a.logger, a.Name(), "ADZUNA_APP_ID", "ADZUNA_APP_KEY")
		return nil, nil
	}

	var (
		all     []model.RawJob
		failed  int
		lastErr error
	)
	for i, country := range a.countries {
		if i > 0 {
			select {
			case <-ctx.Done():
				return all, fmt.Errorf("adzuna fetch: %w", ctx.Err())
			case <-time.After(a.countryPause):
			}
		}

		jobs, err := a.fetchCountry(ctx, country)
		if err != nil {
			if ctx.Err() != nil {
				return all, fmt.Errorf("adzuna fetch: %w", ctx.Err())
			}
			a.logger.Error("adzuna country failed", "country", country, "error", err)
			failed++
			lastErr = err
			continue
		}
		a.logger.Debug("adzuna country fetched", "country", country, "jobs", len(jobs))
		all = append(all, jobs...)
	}
	// Surface the error only when every country failed, so the caller can retry.
	if failed == len(a.countries) {
		return nil, fmt.Errorf("adzuna fetch: %w", lastErr)
	}
	return all, nil
}

func (a *AdzunaAdapter) fetchCountry(ctx context.Context, country string) ([]model.RawJob, error) {
	country = strings.ToLower(country)
	q := url.Values{}
	q.Set("app_id", a.appID)
	q.Set("app_key", a.appKey)
	q.Set("results_per_page", "30")
	q.Set("what", "developer programmer engineer")
	q.Set("where", "remote")
	q.Set("sort_by", "date")
	endpoint := fmt.Sprintf("%s/%s/search/1?%s", adzunaBaseURL, url.PathEscape(country), q.Encode())

	var resp adzunaResponse
	if err := getJSON(ctx, a.client, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	currency := adzunaCurrencies[country]
	jobs := make([]model.RawJob, 0, len(resp.Results))
	for _, r := range resp.Results {
		jobs = append(jobs, model.RawJob{
			Title:          r.Title,
			Company:        r.Company.DisplayName,
			Description:    r.Description,
			URL:            r.RedirectURL,
			Location:       orDefault(r.Location.DisplayName, locationRemote),
			MinSalary:      int64(math.Round(r.SalaryMin)),
			MaxSalary:      int64(math.Round(r.SalaryMax)),
			Currency:       currency,
			PublishedAt:    r.Created,
			EmploymentType: r.Contract,
			Source:         a.Name(),
		})
	}
	return jobs, nil
}
