// Package artifacts persists the per-run audit documents under fixed
// filenames, overwritten on every run.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
)

// Store writes JSON artifacts into the configured output directory.
type Store struct {
	dir           string
	aggregateFile string
	responseFile  string
}

var _ ports.ArtifactStore = (*Store)(nil)

// NewStore wires the output locations.
func NewStore(cfg config.OutputConfig) *Store {
	return &Store{
		dir:           cfg.Dir,
		aggregateFile: cfg.AggregateFile,
		responseFile:  cfg.ResponseFile,
	}
}

// SaveAggregate writes the full raw aggregate as an indented JSON document.
func (s *Store) SaveAggregate(agg domain.Aggregate) error {
	payload, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal aggregate: %w", err)
	}
	return s.write(s.aggregateFile, payload)
}

// SaveResponse writes the model response verbatim, before any transformation.
func (s *Store) SaveResponse(raw []byte) error {
	return s.write(s.responseFile, raw)
}

func (s *Store) write(name string, payload []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
