package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayaStable/news-tweets-scraper/internal/app"
	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/logging"
)

func main() {
	keywords := flag.String("keywords", "", "comma-separated search keywords (required)")
	days := flag.Int("days", 5, "retain items newer than this many days")
	flag.Parse()

	keywordList := splitKeywords(*keywords)
	if len(keywordList) == 0 {
		fmt.Fprintln(os.Stderr, "at least one keyword is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	result, err := application.Run(ctx, keywordList, *days)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	if len(result.CorpusXLSX) > 0 {
		if err := writeOutput(cfg.Output.Dir, cfg.Output.CorpusXLSX, result.CorpusXLSX); err != nil {
			logger.Error("write corpus workbook", "error", err)
		}
	}

	if result.ClassifyErr != nil {
		logger.Error("classification unavailable, impact table skipped", "error", result.ClassifyErr)
	} else if err := writeOutput(cfg.Output.Dir, cfg.Output.ImpactCSV, result.ImpactCSV); err != nil {
		logger.Error("write impact table", "error", err)
	}

	logger.Info("run complete",
		"run_id", result.RunID,
		"items", result.Aggregate.ItemCount(),
		"impacts", len(result.Classification.Impacts))
}

func splitKeywords(raw string) []string {
	var list []string
	for _, part := range strings.Split(raw, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			list = append(list, kw)
		}
	}
	return list
}

func writeOutput(dir, name string, payload []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), payload, 0o644)
}
