package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuperJobAdapter_FetchJobs_Success(t *testing.T) {
	payload := `{
		"objects": [
			{
				"profession": "Junior PHP программист",
				"firm_name": "Веб-студия",
				"candidat": "Опыт от года",
				"link": "https://www.superjob.ru/vakansii/1.html",
				"payment_from": 80000,
				"payment_to": 120000,
				"currency": "rub",
				"date_published": 1705312800,
				"town": {"title": "Санкт-Петербург"},
				"type_of_work": {"title": "Полный рабочий день"}
			},
			{
				"profession": "Разработчик",
				"firm_name": "Стартап",
				"link": "https://www.superjob.ru/vakansii/2.html",
				"payment_from": 0,
				"payment_to": 0,
				"date_published": 0
			}
		]
	}`
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-App-Id")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewSuperJobAdapter("v3.key", newTestClient(srv), discardLogger())
	jobs, err := a.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "v3.key" {
		t.Errorf("X-Api-App-Id = %q, want v3.key", gotKey)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Salary != "80,000-120,000 RUB" {
		t.Errorf("Salary = %q", j.Salary)
	}
	if j.PublishedAt != "2024-01-15T10:00:00Z" {
		t.Errorf("PublishedAt = %q, want 2024-01-15T10:00:00Z", j.PublishedAt)
	}
	if j.Location != "Санкт-Петербург" {
		t.Errorf("Location = %q", j.Location)
	}
	if j.EmploymentType != "Полный рабочий день" {
		t.Errorf("EmploymentType = %q", j.EmploymentType)
	}

	j2 := jobs[1]
	if j2.Salary != "" || j2.PublishedAt != "" {
		t.Errorf("expected empty salary and date, got %q / %q", j2.Salary, j2.PublishedAt)
	}
	if j2.Location != "Удалённо" {
		t.Errorf("Location = %q, want Удалённо", j2.Location)
	}
}

func TestSuperJobAdapter_MissingKeySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := NewSuperJobAdapter("", newTestClient(srv), discardLogger())
	for i := 0; i < 2; i++ {
		jobs, err := a.FetchJobs(context.Background())
		if err != nil || jobs != nil {
			t.Fatalf("expected nil, nil; got %v, %v", jobs, err)
		}
	}
	if called {
		t.Error("no request should be made without a key")
	}
}

func TestSuperJobAdapter_ForbiddenReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := NewSuperJobAdapter("bad", newTestClient(srv), discardLogger())
	jobs, err := a.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("expected nil error on 403, got %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}
