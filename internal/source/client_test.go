package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"jobscraper/ingest-service/internal/model"
	"jobscraper/ingest-service/internal/source"
)

func criteria(keyword, page string) model.SearchCriteria {
	return model.SearchCriteria{
		Keyword:         keyword,
		Location:        "United States",
		DateSincePosted: "24hr",
		JobType:         "full time",
		RemoteFilter:    "remote",
		SortBy:          "recent",
		Page:            page,
	}
}

func TestFetch_MapsResponse(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"position":"SWE","company":"Acme","location":"NY","date":"2024-01-01",
			 "jobUrl":"https://example.com/a","salary":"$150k","agoTime":"2 hours ago"},
			{"position":"SRE","company":"Globex","location":"SF","date":"2024-01-02",
			 "jobUrl":"https://example.com/b"}
		]`))
	}))
	defer srv.Close()

	client := source.NewClient(srv.URL)
	jobs, err := client.Fetch(context.Background(), criteria("golang developer", "2"))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("got %d candidates, want 2", len(jobs))
	}
	if jobs[0].Position != "SWE" || jobs[0].Salary != "$150k" {
		t.Errorf("first candidate = %+v", jobs[0])
	}
	if jobs[1].Salary != "" {
		t.Errorf("missing salary should stay empty at the client, got %q", jobs[1].Salary)
	}

	if gotQuery.Get("keyword") != "golang developer" {
		t.Errorf("keyword param = %q", gotQuery.Get("keyword"))
	}
	if gotQuery.Get("page") != "2" {
		t.Errorf("page param = %q", gotQuery.Get("page"))
	}
	if gotQuery.Get("remoteFilter") != "remote" {
		t.Errorf("remoteFilter param = %q", gotQuery.Get("remoteFilter"))
	}
	if gotQuery.Has("experienceLevel") {
		t.Error("empty filters must be omitted from the query string")
	}
}

func TestFetch_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := source.NewClient(srv.URL)
	jobs, err := client.Fetch(context.Background(), criteria("golang", "7"))
	if err != nil {
		t.Fatalf("empty page is not an error, got: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("got %d candidates, want 0", len(jobs))
	}
}

func TestFetch_InputValidation(t *testing.T) {
	client := source.NewClient("http://unused.invalid")

	if _, err := client.Fetch(context.Background(), criteria("", "0")); err == nil {
		t.Error("empty keyword should error")
	}
	for _, page := range []string{"-1", "abc", "1.5"} {
		if _, err := client.Fetch(context.Background(), criteria("golang", page)); err == nil {
			t.Errorf("page %q should error", page)
		}
	}
}

func TestFetch_NonOKStatusIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := source.NewClient(srv.URL)
	_, err := client.Fetch(context.Background(), criteria("golang", "0"))
	if !errors.Is(err, source.ErrProtocol) {
		t.Errorf("err = %v, want ErrProtocol", err)
	}
}

func TestFetch_MalformedBodyIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	client := source.NewClient(srv.URL)
	_, err := client.Fetch(context.Background(), criteria("golang", "0"))
	if !errors.Is(err, source.ErrProtocol) {
		t.Errorf("err = %v, want ErrProtocol", err)
	}
}

func TestFetch_UnreachableSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := source.NewClient(baseURL)
	_, err := client.Fetch(context.Background(), criteria("golang", "0"))
	if !errors.Is(err, source.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
