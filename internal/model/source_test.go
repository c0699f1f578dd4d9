package model_test

import (
	"testing"

	"jobscraper/ingest-service/internal/model"
)

func TestParseSource_ValidValues(t *testing.T) {
	valid := []string{
		"careerpage", "linkedin", "glassdoor", "indeed", "jointaro",
		"weworkremotely", "talent", "careerbuilder", "remoterocketship",
		"monster", "email",
	}
	for _, s := range valid {
		got, err := model.ParseSource(s)
		if err != nil {
			t.Errorf("ParseSource(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseSource(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseSource_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "LINKEDIN", "craigslist"} {
		if _, err := model.ParseSource(s); err == nil {
			t.Errorf("ParseSource(%q) expected error, got nil", s)
		}
	}
}

func TestSearchDefaults_Criteria(t *testing.T) {
	d := model.SearchDefaults{
		Location:        "United States",
		DateSincePosted: "24hr",
		JobType:         "full time",
		RemoteFilter:    "remote",
		SortBy:          "recent",
	}

	c := d.Criteria("React Developer", "3")
	if c.Keyword != "React Developer" {
		t.Errorf("Keyword = %q", c.Keyword)
	}
	if c.Page != "3" {
		t.Errorf("Page = %q", c.Page)
	}
	if c.Location != "United States" || c.SortBy != "recent" {
		t.Errorf("defaults not merged: %+v", c)
	}
	if c.ExperienceLevel != "" {
		t.Errorf("unset default leaked: %q", c.ExperienceLevel)
	}
}
