package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/infrastructure/artifacts"
	"github.com/ayaStable/news-tweets-scraper/internal/infrastructure/browser"
	"github.com/ayaStable/news-tweets-scraper/internal/infrastructure/feed"
	"github.com/ayaStable/news-tweets-scraper/internal/infrastructure/llm"
	"github.com/ayaStable/news-tweets-scraper/internal/infrastructure/storage"
	"github.com/ayaStable/news-tweets-scraper/internal/infrastructure/taxonomy"
	"github.com/ayaStable/news-tweets-scraper/internal/logging"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
	"github.com/ayaStable/news-tweets-scraper/internal/usecase"
)

// Application wires configuration into the run pipeline.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds all adapters from configuration and assembles the pipeline.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	session := browser.NewSession(cfg.Browser, baseLogger.With("component", "browser"))

	var classifier ports.Classifier
	if cfg.OpenAI.APIKey != "" {
		classifier = llm.NewClassifier(cfg.OpenAI, baseLogger.With("component", "llm"))
	}

	var db *sql.DB
	var runs ports.RunRepository
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		runs = storage.NewPostgresRepository(db)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Feed:        feed.NewGoogleNews(cfg.Feed, baseLogger.With("component", "feed")),
		Search:      browser.NewNitterSearch(session, cfg.Browser, baseLogger.With("component", "search")),
		Timeline:    browser.NewTruthTimeline(session, cfg.Browser, baseLogger.With("component", "timeline")),
		Taxonomy:    taxonomy.NewLoader(cfg.Taxonomy, baseLogger.With("component", "taxonomy")),
		Classifier:  classifier,
		Artifacts:   artifacts.NewStore(cfg.Output),
		Runs:        runs,
		Logger:      baseLogger.With("component", "pipeline"),
		FeedWorkers: cfg.Feed.Workers,
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, db: db}, nil
}

// Run executes one scraping-and-classification run.
func (a *Application) Run(ctx context.Context, keywords []string, windowDays int) (usecase.Result, error) {
	return a.pipeline.Run(ctx, keywords, windowDays)
}

// Close releases long-lived resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
