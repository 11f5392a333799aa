package ports

import (
	"context"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

// FeedSource pulls structured, pre-timestamped entries for one query.
type FeedSource interface {
	Fetch(ctx context.Context, query string) ([]domain.RawItem, error)
}

// SearchSource reveals unstructured search hits for one query through
// incremental pagination. Implementations own the exclusive browser resource
// for the duration of a call and must release it on every exit path.
type SearchSource interface {
	Search(ctx context.Context, query string) ([]domain.RawItem, error)
}

// TimelineSource collects posts from the single fixed target page. Same
// resource contract as SearchSource.
type TimelineSource interface {
	Timeline(ctx context.Context) ([]domain.RawItem, error)
}

// TaxonomyLoader retrieves the deduplicated category reference.
type TaxonomyLoader interface {
	Load(ctx context.Context) ([]domain.Category, error)
}

// Classifier submits the corpus and taxonomy to the model collaborator. The
// raw response bytes are returned alongside the parsed result so callers can
// persist them verbatim, even when parsing failed.
type Classifier interface {
	Classify(ctx context.Context, corpus []byte, categories []domain.Category) (domain.Classification, []byte, error)
}

// ArtifactStore persists the per-run audit documents.
type ArtifactStore interface {
	SaveAggregate(agg domain.Aggregate) error
	SaveResponse(raw []byte) error
}

// RunRepository keeps the run history for later inspection.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.RunRecord) error
}
