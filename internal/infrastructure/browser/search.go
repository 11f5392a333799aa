package browser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
	"github.com/ayaStable/news-tweets-scraper/internal/scroll"
)

// NitterSearch collects search hits for one query by scrolling a Nitter
// results page until the convergence target is met.
type NitterSearch struct {
	session *Session
	cfg     config.BrowserConfig
	logger  *slog.Logger
}

var _ ports.SearchSource = (*NitterSearch)(nil)

// NewNitterSearch wires the shared session settings.
func NewNitterSearch(session *Session, cfg config.BrowserConfig, logger *slog.Logger) *NitterSearch {
	return &NitterSearch{session: session, cfg: cfg, logger: logger}
}

// Search opens the results page for the query and runs the collector over it.
// Search hits expose no parseable timestamp, so items are produced untimed.
func (n *NitterSearch) Search(ctx context.Context, query string) ([]domain.RawItem, error) {
	term := query
	if n.cfg.QuerySuffix != "" {
		term += " " + n.cfg.QuerySuffix
	}
	target := fmt.Sprintf("%s/search?f=tweets&q=%s",
		strings.TrimSuffix(n.cfg.SearchInstance, "/"), url.QueryEscape(term))

	page, cleanup, err := n.session.open(ctx, target, tweetSelector)
	if err != nil {
		return nil, fmt.Errorf("open search page: %w", err)
	}
	defer cleanup()

	texts, err := scroll.Collect(ctx, &pageSource{page: page, extract: tweetTexts}, scroll.Options{
		Target:   n.cfg.MinItems,
		MaxSteps: n.cfg.MaxScrolls,
		Settle:   n.cfg.Settle(),
	})
	if err != nil {
		if len(texts) == 0 {
			return nil, fmt.Errorf("collect search items: %w", err)
		}
		if n.logger != nil {
			n.logger.Warn("search collection ended early", "query", query, "error", err)
		}
	}

	return untimedItems(texts, domain.SourceSearch), nil
}

func untimedItems(texts []string, source domain.SourceType) []domain.RawItem {
	items := make([]domain.RawItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, domain.RawItem{Text: text, Source: source})
	}
	return items
}
