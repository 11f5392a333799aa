package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
)

// GoogleNews fetches the news RSS search feed for one query. Entries carry
// RFC-2822 style timestamps which are normalized downstream.
type GoogleNews struct {
	searchURL string
	suffix    string
	parser    *gofeed.Parser
	logger    *slog.Logger
}

var _ ports.FeedSource = (*GoogleNews)(nil)

// NewGoogleNews wires a feed parser with the configured request timeout.
func NewGoogleNews(cfg config.FeedConfig, logger *slog.Logger) *GoogleNews {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.Timeout()}
	parser.UserAgent = "news-tweets-scraper/1.0"

	return &GoogleNews{
		searchURL: cfg.SearchURL,
		suffix:    cfg.QuerySuffix,
		parser:    parser,
		logger:    logger,
	}
}

// Fetch downloads and parses the search feed for the query.
func (g *GoogleNews) Fetch(ctx context.Context, query string) ([]domain.RawItem, error) {
	term := query
	if g.suffix != "" {
		term += " " + g.suffix
	}
	feedURL := fmt.Sprintf("%s?q=%s", g.searchURL, url.QueryEscape(term))

	parsed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed for %q: %w", query, err)
	}

	items := make([]domain.RawItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry.Title == "" {
			continue
		}
		items = append(items, domain.RawItem{
			Text:      entry.Title,
			Link:      entry.Link,
			Published: entry.Published,
			Source:    domain.SourceFeed,
		})
	}

	if g.logger != nil {
		g.logger.Debug("feed parsed", "query", query, "entries", len(items))
	}
	return items, nil
}
