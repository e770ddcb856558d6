package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amishk599/remotefeed/internal/model"
)

const superJobURL = "https://api.superjob.ru/2.0/vacancies/"

type superJobResponse struct {
	Objects []superJobVacancy `json:"objects"`
}

type superJobVacancy struct {
	Profession    string `json:"profession"`
	FirmName      string `json:"firm_name"`
	Candidat      string `json:"candidat"`
	Link          string `json:"link"`
	PaymentFrom   int64  `json:"payment_from"`
	PaymentTo     int64  `json:"payment_to"`
	Currency      string `json:"currency"`
	DatePublished int64  `json:"date_published"`
	Town          *struct {
		Title string `json:"title"`
	} `json:"town"`
	TypeOfWork *struct {
		Title string `json:"title"`
	} `json:"type_of_work"`
}

// SuperJobAdapter searches vacancies on superjob.ru. It requires an API key
// sent as X-Api-App-Id.
type SuperJobAdapter struct {
	apiKey string
	client *http.Client
	logger *slog.Logger
	notice credentialNotice
}

// NewSuperJobAdapter creates a new SuperJob adapter. An empty apiKey makes
// FetchJobs a no-op.
func NewSuperJobAdapter(apiKey string, client *http.Client, logger *slog.Logger) *SuperJobAdapter {
	return &SuperJobAdapter{apiKey: apiKey, client: client, logger: logger}
}

func (a *SuperJobAdapter) Name() string { return "SuperJob" }

func (a *SuperJobAdapter) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	if a.apiKey == "" {
		a.notice.log(a.logger, a.Name(), "SUPERJOB_API_KEY")
		return nil, nil
	}

	q := url.Values{}
	q.Set("keyword", "программист разработчик")
	q.Set("count", "20")
	header := http.Header{}
	header.Set("X-Api-App-Id", a.apiKey)

	var resp superJobResponse
	err := getJSON(ctx, a.client, superJobURL+"?"+q.Encode(), header, &resp)
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusForbidden {
		a.logger.Error("superjob rejected the API key, check SUPERJOB_API_KEY", "status", httpErr.StatusCode)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("superjob fetch: %w", err)
	}

	jobs := make([]model.RawJob, 0, len(resp.Objects))
	for _, v := range resp.Objects {
		currency := strings.ToUpper(orDefault(v.Currency, "RUB"))
		job := model.RawJob{
			Title:       v.Profession,
			Company:     v.FirmName,
			Description: v.Candidat,
			URL:         v.Link,
			Location:    locationRemoteRU,
			Salary:      salaryRange(v.PaymentFrom, v.PaymentTo, currency),
			Currency:    currency,
			Source:      a.Name(),
		}
		if v.Town != nil {
			job.Location = orDefault(v.Town.Title, locationRemoteRU)
		}
		if v.DatePublished > 0 {
			job.PublishedAt = time.Unix(v.DatePublished, 0).UTC().Format(time.RFC3339)
		}
		if v.TypeOfWork != nil {
			job.EmploymentType = v.TypeOfWork.Title
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
