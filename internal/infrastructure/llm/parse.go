package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

const listKey = "List of Affected Business Categories"

// flexString accepts both JSON strings and bare numbers; models tend to emit
// NAIC codes either way.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(data)
	return nil
}

// flexStrings accepts a JSON array of strings or a single string.
type flexStrings []string

func (s *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var v []string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = v
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = []string{v}
	return nil
}

type affectedEntry struct {
	Name        string      `json:"Business Category Name"`
	Code        flexString  `json:"NAIC Code"`
	Commodities flexStrings `json:"Affected Commodities"`
	Impact      string      `json:"Potential Impact"`
}

type response struct {
	Summary json.RawMessage  `json:"Summary of Key Findings"`
	List    *[]affectedEntry `json:"List of Affected Business Categories"`
}

// parseResponse validates the top-level contract and projects the entries to
// domain impacts. A missing category list is a schema violation, not an
// empty result.
func parseResponse(raw []byte) (domain.Classification, error) {
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.Classification{}, fmt.Errorf("%w: decode response: %v", domain.ErrSchemaViolation, err)
	}
	if resp.List == nil {
		return domain.Classification{}, fmt.Errorf("%w: response is missing %q", domain.ErrSchemaViolation, listKey)
	}

	impacts := make([]domain.Impact, 0, len(*resp.List))
	for _, entry := range *resp.List {
		impacts = append(impacts, domain.Impact{
			Category:    entry.Name,
			Code:        string(entry.Code),
			Commodities: entry.Commodities,
			Assessment:  entry.Impact,
		})
	}

	return domain.Classification{
		Summary: summaryText(resp.Summary),
		Impacts: impacts,
	}, nil
}

func summaryText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// Some models return the summary as a nested object; keep it verbatim.
	return string(raw)
}
