package config_test

import (
	"testing"

	"jobscraper/ingest-service/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jobs")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("JOB_SOURCE_URL", "https://jobs.example.com")

	// Clear the optional knobs so ambient environment cannot leak in.
	for _, key := range []string{
		"INGEST_PORT", "MATURE_JOB_URL", "CRON_SPEC", "JOB_KEYWORDS",
		"SEARCH_LOCATION", "SEARCH_DATE_SINCE_POSTED", "SEARCH_JOB_TYPE",
		"SEARCH_REMOTE_FILTER", "SEARCH_EXPERIENCE_LEVEL", "SEARCH_SORT_BY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_RequiredVariables(t *testing.T) {
	cases := []string{"DATABASE_URL", "REDIS_URL", "JOB_SOURCE_URL"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			if _, err := config.Load(); err == nil {
				t.Errorf("Load without %s expected error, got nil", missing)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CronSpec != "0 4 * * *" {
		t.Errorf("CronSpec = %q, want daily at 04:00", cfg.CronSpec)
	}
	if len(cfg.Keywords) == 0 {
		t.Error("default keyword list must not be empty")
	}
	if cfg.MatureJobURL != "" {
		t.Errorf("MatureJobURL = %q, want empty when unset", cfg.MatureJobURL)
	}
	if cfg.Defaults.Location != "United States" || cfg.Defaults.SortBy != "recent" {
		t.Errorf("search defaults = %+v", cfg.Defaults)
	}
}

func TestLoad_KeywordListParsing(t *testing.T) {
	setRequired(t)
	t.Setenv("JOB_KEYWORDS", " React Developer , ,Golang Developer ")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []string{"React Developer", "Golang Developer"}
	if len(cfg.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want %v", cfg.Keywords, want)
	}
	for i := range want {
		if cfg.Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, cfg.Keywords[i], want[i])
		}
	}
}

func TestLoad_BlankKeywordListRejected(t *testing.T) {
	setRequired(t)
	t.Setenv("JOB_KEYWORDS", " , ,")

	if _, err := config.Load(); err == nil {
		t.Error("blank JOB_KEYWORDS expected error, got nil")
	}
}
