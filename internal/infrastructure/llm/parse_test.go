package llm

import (
	"errors"
	"testing"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

func TestParseResponseWellFormed(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"Summary of Key Findings": "wheat supply under pressure",
		"List of Affected Business Categories": [
			{
				"Business Category Name": "Bakeries",
				"NAIC Code": "3118",
				"Affected Commodities": ["wheat", "flour"],
				"Potential Impact": "rising input costs"
			}
		]
	}`)

	got, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse error: %v", err)
	}
	if got.Summary != "wheat supply under pressure" {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
	if len(got.Impacts) != 1 {
		t.Fatalf("expected one impact, got %d", len(got.Impacts))
	}
	impact := got.Impacts[0]
	if impact.Category != "Bakeries" || impact.Code != "3118" {
		t.Fatalf("unexpected impact: %+v", impact)
	}
	if len(impact.Commodities) != 2 || impact.Commodities[1] != "flour" {
		t.Fatalf("unexpected commodities: %v", impact.Commodities)
	}
}

func TestParseResponseAcceptsNumericCode(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"List of Affected Business Categories": [
			{"Business Category Name": "Bakeries", "NAIC Code": 3118}
		]
	}`)

	got, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse error: %v", err)
	}
	if got.Impacts[0].Code != "3118" {
		t.Fatalf("expected numeric code coerced to string, got %q", got.Impacts[0].Code)
	}
}

func TestParseResponseAcceptsSingleCommodityString(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"List of Affected Business Categories": [
			{"Business Category Name": "Roasters", "NAIC Code": "3119", "Affected Commodities": "coffee"}
		]
	}`)

	got, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse error: %v", err)
	}
	if len(got.Impacts[0].Commodities) != 1 || got.Impacts[0].Commodities[0] != "coffee" {
		t.Fatalf("expected single commodity wrapped in a list, got %v", got.Impacts[0].Commodities)
	}
}

func TestParseResponseMissingListIsSchemaViolation(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"Summary of Key Findings": "nothing to report"}`)
	if _, err := parseResponse(raw); !errors.Is(err, domain.ErrSchemaViolation) {
		t.Fatalf("expected schema violation for missing list, got %v", err)
	}
}

func TestParseResponseEmptyListIsValid(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"List of Affected Business Categories": []}`)
	got, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("an empty list is a legitimate result: %v", err)
	}
	if len(got.Impacts) != 0 {
		t.Fatalf("expected no impacts, got %d", len(got.Impacts))
	}
}

func TestParseResponseMalformedJSONIsSchemaViolation(t *testing.T) {
	t.Parallel()

	if _, err := parseResponse([]byte(`not json at all`)); !errors.Is(err, domain.ErrSchemaViolation) {
		t.Fatalf("expected schema violation for malformed payload, got %v", err)
	}
}

func TestParseResponseKeepsObjectSummaryVerbatim(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"Summary of Key Findings": {"theme": "tariffs"},
		"List of Affected Business Categories": []
	}`)

	got, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse error: %v", err)
	}
	if got.Summary != `{"theme": "tariffs"}` {
		t.Fatalf("expected verbatim object summary, got %q", got.Summary)
	}
}
