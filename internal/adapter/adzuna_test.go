package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/amishk599/remotefeed/internal/model"
)

func newAdzunaTestAdapter(srv *httptest.Server, countries []string) *AdzunaAdapter {
	a := NewAdzunaAdapter("id", "key", countries, newTestClient(srv), discardLogger())
	a.countryPause = 0
	return a
}

func TestAdzunaAdapter_FetchJobs_PerCountry(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		if r.URL.Query().Get("app_id") != "id" || r.URL.Query().Get("app_key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		country := "us"
		if strings.Contains(r.URL.Path, "/gb/") {
			country = "gb"
		}
		w.Write([]byte(`{"results": [{
			"title": "Junior Developer ` + country + `",
			"description": "remote role",
			"redirect_url": "https://adzuna.example/` + country + `/1",
			"created": "2024-01-15T10:00:00Z",
			"salary_min": 45000.4,
			"salary_max": 60000.6,
			"contract_type": "permanent",
			"company": {"display_name": "Acme"},
			"location": {"display_name": ""}
		}]}`))
	}))
	defer srv.Close()

	jobs, err := newAdzunaTestAdapter(srv, nil).FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if len(paths) != 2 || !strings.Contains(paths[0], "/us/search/1") || !strings.Contains(paths[1], "/gb/search/1") {
		t.Errorf("unexpected request paths: %v", paths)
	}

	us, gb := jobs[0], jobs[1]
	if us.Currency != "USD" || gb.Currency != "GBP" {
		t.Errorf("currencies = %s/%s, want USD/GBP", us.Currency, gb.Currency)
	}
	if us.MinSalary != 45000 || us.MaxSalary != 60001 {
		t.Errorf("salary = %d-%d, want 45000-60001", us.MinSalary, us.MaxSalary)
	}
	if us.Company != "Acme" || us.Location != "Remote" {
		t.Errorf("unexpected company/location: %q / %q", us.Company, us.Location)
	}
	if us.EmploymentType != "permanent" || us.Source != "Adzuna" {
		t.Errorf("unexpected employment/source: %q / %q", us.EmploymentType, us.Source)
	}
}

func TestAdzunaAdapter_FetchJobs_CountryFailureIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/us/") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results": [{"title": "QA Engineer", "redirect_url": "https://adzuna.example/gb/1"}]}`))
	}))
	defer srv.Close()

	jobs, err := newAdzunaTestAdapter(srv, []string{"us", "gb"}).FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "QA Engineer" {
		t.Fatalf("expected only the gb job, got %v", jobs)
	}
}

func TestAdzunaAdapter_FetchJobs_AllCountriesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newAdzunaTestAdapter(srv, []string{"us", "gb"}).FetchJobs(context.Background())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected HTTPError 503, got %v", err)
	}
}

func TestAdzunaAdapter_MissingCredentials(t *testing.T) {
	a := NewAdzunaAdapter("id", "", nil, http.DefaultClient, discardLogger())
	jobs, err := a.FetchJobs(context.Background())
	if err != nil || jobs != nil {
		t.Fatalf("expected nil, nil; got %v, %v", jobs, err)
	}
}
