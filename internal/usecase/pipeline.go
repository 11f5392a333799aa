package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/export"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
	"github.com/ayaStable/news-tweets-scraper/internal/temporal"
)

// maxCorpusBytes bounds the serialized corpus handed to the model in a
// single request.
const maxCorpusBytes = 200_000

// PipelineDeps wires all driven adapters into the run orchestration.
type PipelineDeps struct {
	Feed        ports.FeedSource
	Search      ports.SearchSource
	Timeline    ports.TimelineSource
	Taxonomy    ports.TaxonomyLoader
	Classifier  ports.Classifier
	Artifacts   ports.ArtifactStore
	Runs        ports.RunRepository
	Logger      *slog.Logger
	FeedWorkers int
	Now         func() time.Time
}

// Pipeline implements one scraping-and-classification run: a bounded parallel
// feed phase, a strictly sequential scroll phase over the exclusive browser
// resource, the aggregate merge, the classification gate, and the exports.
type Pipeline struct {
	feed        ports.FeedSource
	search      ports.SearchSource
	timeline    ports.TimelineSource
	taxonomy    ports.TaxonomyLoader
	classifier  ports.Classifier
	artifacts   ports.ArtifactStore
	runs        ports.RunRepository
	logger      *slog.Logger
	feedWorkers int
	now         func() time.Time
}

// Result carries everything a single run produced. The aggregate and its
// workbook survive classification failures; ClassifyErr records why the
// impact table is absent when it is.
type Result struct {
	RunID          string
	Aggregate      domain.Aggregate
	Classification domain.Classification
	ClassifyErr    error
	ImpactCSV      []byte
	CorpusXLSX     []byte
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	workers := deps.FeedWorkers
	if workers <= 0 {
		workers = 5
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		feed:        deps.Feed,
		search:      deps.Search,
		timeline:    deps.Timeline,
		taxonomy:    deps.Taxonomy,
		classifier:  deps.Classifier,
		artifacts:   deps.Artifacts,
		runs:        deps.Runs,
		logger:      deps.Logger,
		feedWorkers: workers,
		now:         now,
	}
}

// Run executes the full pipeline for the given keywords and day window.
func (p *Pipeline) Run(ctx context.Context, keywords []string, windowDays int) (Result, error) {
	if len(keywords) == 0 {
		return Result{}, fmt.Errorf("no keywords provided")
	}

	result := Result{RunID: uuid.NewString()}
	filter := temporal.NewFilter(p.now(), windowDays)

	feedResults := p.fetchFeeds(ctx, keywords, filter)
	searchResults, timelineResult := p.fetchScrolls(ctx, keywords, filter)

	result.Aggregate = buildAggregate(keywords, feedResults, searchResults, timelineResult)
	p.info("aggregate built", "items", result.Aggregate.ItemCount())

	if p.artifacts != nil {
		if err := p.artifacts.SaveAggregate(result.Aggregate); err != nil {
			p.warn("persist aggregate", "error", err)
		}
	}

	workbook, err := export.CorpusWorkbook(result.Aggregate)
	if err != nil {
		p.warn("build corpus workbook", "error", err)
	}
	result.CorpusXLSX = workbook

	classification, err := p.classify(ctx, result.Aggregate)
	if err != nil {
		p.warn("classification stage failed", "error", err)
		result.ClassifyErr = err
	} else {
		result.Classification = classification
		csvBytes, csvErr := export.ImpactCSV(classification.Impacts)
		if csvErr != nil {
			p.warn("build impact table", "error", csvErr)
		}
		result.ImpactCSV = csvBytes
	}

	p.saveRun(ctx, result, keywords, windowDays)
	return result, nil
}

// fetchFeeds fans the feed source out over all keywords under a bounded
// worker pool. A task failure is captured in its own FetchResult and never
// cancels siblings.
func (p *Pipeline) fetchFeeds(ctx context.Context, keywords []string, filter temporal.Filter) []domain.FetchResult {
	results := make([]domain.FetchResult, len(keywords))

	var group errgroup.Group
	group.SetLimit(p.feedWorkers)
	for i, query := range keywords {
		i, query := i, query
		group.Go(func() error {
			results[i] = p.fetchOne(ctx, query, domain.SourceFeed, filter, func() ([]domain.RawItem, error) {
				if p.feed == nil {
					return nil, nil
				}
				return p.feed.Fetch(ctx, query)
			})
			return nil
		})
	}
	_ = group.Wait()

	return results
}

// fetchScrolls runs all scroll-based fetches strictly in keyword order, one
// at a time; the underlying browser resource is exclusive and rate-sensitive.
func (p *Pipeline) fetchScrolls(ctx context.Context, keywords []string, filter temporal.Filter) ([]domain.FetchResult, domain.FetchResult) {
	searchResults := make([]domain.FetchResult, len(keywords))
	for i, query := range keywords {
		searchResults[i] = p.fetchOne(ctx, query, domain.SourceSearch, filter, func() ([]domain.RawItem, error) {
			if p.search == nil {
				return nil, nil
			}
			return p.search.Search(ctx, query)
		})
	}

	timelineResult := p.fetchOne(ctx, "", domain.SourceTimeline, filter, func() ([]domain.RawItem, error) {
		if p.timeline == nil {
			return nil, nil
		}
		return p.timeline.Timeline(ctx)
	})

	return searchResults, timelineResult
}

// fetchOne isolates one (query, source) attempt: any failure degrades the
// result to an empty item list with an error marker.
func (p *Pipeline) fetchOne(ctx context.Context, query string, source domain.SourceType, filter temporal.Filter, fetch func() ([]domain.RawItem, error)) domain.FetchResult {
	result := domain.FetchResult{Query: query, Source: source, Items: []domain.Item{}}

	raw, err := fetch()
	if err != nil {
		p.warn("fetch failed", "source", source, "query", query, "error", err)
		result.Err = err
		return result
	}

	result.Items = p.normalize(raw, filter, query, source)
	p.info("fetch done", "source", source, "query", query, "items", len(result.Items))
	return result
}

func (p *Pipeline) normalize(raw []domain.RawItem, filter temporal.Filter, query string, source domain.SourceType) []domain.Item {
	items := make([]domain.Item, 0, len(raw))
	for _, r := range raw {
		item, verdict := filter.Normalize(r)
		switch verdict {
		case temporal.Kept, temporal.KeptUntimed:
			items = append(items, item)
		case temporal.Stale:
			p.debug("item outside window", "source", source, "query", query)
		case temporal.Unparseable:
			p.warn("unparseable timestamp, item skipped",
				"source", source, "query", query, "published", r.Published)
		}
	}
	return items
}

// buildAggregate merges fetch results into the write-once aggregate. Every
// keyword gets an entry in both maps even when a fetch produced nothing, and
// the merge is order-independent per key.
func buildAggregate(keywords []string, feed, search []domain.FetchResult, timeline domain.FetchResult) domain.Aggregate {
	agg := domain.Aggregate{
		News:     make(map[string][]domain.Item, len(keywords)),
		Search:   make(map[string][]domain.Item, len(keywords)),
		Timeline: []domain.Item{},
	}

	for _, query := range keywords {
		agg.News[query] = []domain.Item{}
		agg.Search[query] = []domain.Item{}
	}
	for _, res := range feed {
		agg.News[res.Query] = append(agg.News[res.Query], res.Items...)
	}
	for _, res := range search {
		agg.Search[res.Query] = append(agg.Search[res.Query], res.Items...)
	}
	agg.Timeline = append(agg.Timeline, timeline.Items...)

	return agg
}

// classify loads the taxonomy, submits the bounded corpus, persists the raw
// response for audit, and drops entries that reference categories outside
// the supplied taxonomy.
func (p *Pipeline) classify(ctx context.Context, agg domain.Aggregate) (domain.Classification, error) {
	if p.classifier == nil {
		return domain.Classification{}, fmt.Errorf("no classifier configured")
	}

	categories, err := p.taxonomy.Load(ctx)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("load taxonomy: %w", err)
	}
	p.info("taxonomy loaded", "categories", len(categories))

	corpus, err := json.Marshal(agg)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("serialize corpus: %w", err)
	}
	if len(corpus) > maxCorpusBytes {
		corpus = corpus[:maxCorpusBytes]
	}

	classification, raw, err := p.classifier.Classify(ctx, corpus, categories)
	if len(raw) > 0 && p.artifacts != nil {
		if saveErr := p.artifacts.SaveResponse(raw); saveErr != nil {
			p.warn("persist raw response", "error", saveErr)
		}
	}
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classify corpus: %w", err)
	}

	classification.Impacts = p.validateImpacts(classification.Impacts, categories)
	return classification, nil
}

// validateImpacts enforces the no-hallucinated-codes invariant: every impact
// must cite a (name, code) pair present in this run's taxonomy.
func (p *Pipeline) validateImpacts(impacts []domain.Impact, categories []domain.Category) []domain.Impact {
	known := make(map[domain.Category]struct{}, len(categories))
	for _, cat := range categories {
		known[cat] = struct{}{}
	}

	kept := make([]domain.Impact, 0, len(impacts))
	for _, impact := range impacts {
		if _, ok := known[domain.Category{Name: impact.Category, Code: impact.Code}]; !ok {
			p.warn("impact cites unknown category, dropped",
				"category", impact.Category, "code", impact.Code,
				"error", domain.ErrSchemaViolation)
			continue
		}
		kept = append(kept, impact)
	}
	return kept
}

func (p *Pipeline) saveRun(ctx context.Context, result Result, keywords []string, windowDays int) {
	if p.runs == nil {
		return
	}

	record := domain.RunRecord{
		ID:         result.RunID,
		Keywords:   keywords,
		WindowDays: windowDays,
		ItemCount:  result.Aggregate.ItemCount(),
		Impacts:    result.Classification.Impacts,
		CreatedAt:  p.now().UTC(),
	}
	if err := p.runs.SaveRun(ctx, record); err != nil {
		p.warn("persist run history", "error", err)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
