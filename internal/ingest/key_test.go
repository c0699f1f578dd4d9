package ingest_test

import (
	"testing"

	"jobscraper/ingest-service/internal/ingest"
	"jobscraper/ingest-service/internal/model"
)

// ── CompositeKey ───────────────────────────────────────────────────────────

func TestCompositeKey(t *testing.T) {
	got := ingest.CompositeKey("SWE", "Acme", "NY", "2024-01-01")
	want := "SWE|Acme|NY|2024-01-01"
	if got != want {
		t.Errorf("CompositeKey = %q, want %q", got, want)
	}
}

func TestCompositeKey_FieldOrderMatters(t *testing.T) {
	a := ingest.CompositeKey("SWE", "Acme", "NY", "2024-01-01")
	b := ingest.CompositeKey("Acme", "SWE", "NY", "2024-01-01")
	if a == b {
		t.Errorf("keys with swapped position/company should differ, both %q", a)
	}
}

func TestCandidateKey_MatchesCompositeKey(t *testing.T) {
	c := model.RawJobCandidate{
		Position: "SWE", Company: "Acme", Location: "NY", Date: "2024-01-01",
	}
	if got, want := ingest.CandidateKey(c), ingest.CompositeKey("SWE", "Acme", "NY", "2024-01-01"); got != want {
		t.Errorf("CandidateKey = %q, want %q", got, want)
	}
}

// ── HasRequiredFields ──────────────────────────────────────────────────────

func TestHasRequiredFields(t *testing.T) {
	complete := model.RawJobCandidate{
		Position: "SWE", Company: "Acme", Location: "NY",
		Date: "2024-01-01", JobURL: "https://example.com/a",
	}
	if !ingest.HasRequiredFields(complete) {
		t.Error("complete candidate should pass validation")
	}

	cases := []struct {
		name   string
		mutate func(*model.RawJobCandidate)
	}{
		{"missing position", func(c *model.RawJobCandidate) { c.Position = "" }},
		{"missing company", func(c *model.RawJobCandidate) { c.Company = "" }},
		{"missing location", func(c *model.RawJobCandidate) { c.Location = "" }},
		{"missing date", func(c *model.RawJobCandidate) { c.Date = "" }},
		{"missing jobUrl", func(c *model.RawJobCandidate) { c.JobURL = "" }},
	}
	for _, tc := range cases {
		c := complete
		tc.mutate(&c)
		if ingest.HasRequiredFields(c) {
			t.Errorf("candidate with %s should fail validation", tc.name)
		}
	}
}

func TestHasRequiredFields_OptionalFieldsMayBeEmpty(t *testing.T) {
	c := model.RawJobCandidate{
		Position: "SWE", Company: "Acme", Location: "NY",
		Date: "2024-01-01", JobURL: "https://example.com/a",
		Salary: "", CompanyLogo: "", AgoTime: "",
	}
	if !ingest.HasRequiredFields(c) {
		t.Error("empty optional fields should not fail validation")
	}
}
