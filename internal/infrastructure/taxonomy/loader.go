// Package taxonomy loads the remotely published business-category reference.
package taxonomy

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
)

const (
	nameColumn = "Category"
	codeColumn = "naic_category"
)

// Loader fetches the published CSV reference and projects it to unique
// (category name, code) pairs. Any failure here is fatal for classification,
// so every error wraps domain.ErrTaxonomyUnavailable.
type Loader struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

var _ ports.TaxonomyLoader = (*Loader)(nil)

// NewLoader wires an HTTP client with the configured timeout.
func NewLoader(cfg config.TaxonomyConfig, logger *slog.Logger) *Loader {
	return &Loader{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Load downloads the reference and returns its deduplicated categories in
// first-seen order.
func (l *Loader) Load(ctx context.Context) ([]domain.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrTaxonomyUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch reference: %v", domain.ErrTaxonomyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reference returned %s", domain.ErrTaxonomyUnavailable, resp.Status)
	}

	categories, err := parseReference(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTaxonomyUnavailable, err)
	}

	if l.logger != nil {
		l.logger.Debug("taxonomy reference parsed", "categories", len(categories))
	}
	return categories, nil
}

func parseReference(r io.Reader) ([]domain.Category, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameIdx, codeIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nameColumn:
			nameIdx = i
		case codeColumn:
			codeIdx = i
		}
	}
	if nameIdx < 0 || codeIdx < 0 {
		return nil, fmt.Errorf("reference is missing %q or %q column", nameColumn, codeColumn)
	}

	seen := make(map[domain.Category]struct{})
	var categories []domain.Category
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if nameIdx >= len(record) || codeIdx >= len(record) {
			continue
		}

		cat := domain.Category{
			Name: strings.TrimSpace(record[nameIdx]),
			Code: strings.TrimSpace(record[codeIdx]),
		}
		if cat.Name == "" || cat.Code == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		categories = append(categories, cat)
	}

	return categories, nil
}
