// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strings"

	"jobscraper/ingest-service/internal/model"
)

// defaultKeywords is the sweep list used when JOB_KEYWORDS is unset.
var defaultKeywords = []string{
	"React Developer",
	"Node.js Developer",
	"Python Developer",
	"Golang Developer",
	"DevOps Engineer",
	"QA Engineer",
}

// defaultCronSpec fires the sweep once a day at 04:00.
const defaultCronSpec = "0 4 * * *"

// Config holds all runtime configuration for the ingest service.
type Config struct {
	Port         string
	DatabaseURL  string
	RedisURL     string
	JobSourceURL string // base URL of the external job-search API
	MatureJobURL string // downstream maturation endpoint; empty = not configured
	CronSpec     string
	Keywords     []string
	Defaults     model.SearchDefaults
}

// Load reads environment variables and returns a validated Config.
// MATURE_JOB_URL is deliberately allowed to be empty: the sweep still runs,
// only the final notify fails (main logs a warning at startup).
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	sourceURL := os.Getenv("JOB_SOURCE_URL")
	if sourceURL == "" {
		return nil, fmt.Errorf("JOB_SOURCE_URL is required")
	}

	port := os.Getenv("INGEST_PORT")
	if port == "" {
		port = "8080"
	}

	cronSpec := os.Getenv("CRON_SPEC")
	if cronSpec == "" {
		cronSpec = defaultCronSpec
	}

	keywords := defaultKeywords
	if raw := os.Getenv("JOB_KEYWORDS"); raw != "" {
		keywords = splitKeywords(raw)
		if len(keywords) == 0 {
			return nil, fmt.Errorf("JOB_KEYWORDS must contain at least one keyword, got %q", raw)
		}
	}

	return &Config{
		Port:         port,
		DatabaseURL:  dbURL,
		RedisURL:     redisURL,
		JobSourceURL: sourceURL,
		MatureJobURL: os.Getenv("MATURE_JOB_URL"),
		CronSpec:     cronSpec,
		Keywords:     keywords,
		Defaults:     loadSearchDefaults(),
	}, nil
}

// loadSearchDefaults reads the fixed filter set applied to every search.
func loadSearchDefaults() model.SearchDefaults {
	return model.SearchDefaults{
		Location:        envOr("SEARCH_LOCATION", "United States"),
		DateSincePosted: envOr("SEARCH_DATE_SINCE_POSTED", "24hr"),
		JobType:         envOr("SEARCH_JOB_TYPE", "full time"),
		RemoteFilter:    envOr("SEARCH_REMOTE_FILTER", "remote"),
		ExperienceLevel: os.Getenv("SEARCH_EXPERIENCE_LEVEL"),
		SortBy:          envOr("SEARCH_SORT_BY", "recent"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
