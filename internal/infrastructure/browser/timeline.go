package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
	"github.com/ayaStable/news-tweets-scraper/internal/ports"
	"github.com/ayaStable/news-tweets-scraper/internal/scroll"
)

// TruthTimeline collects posts from the fixed timeline page configured for
// the run. Unlike search there is no query; the target is constant.
type TruthTimeline struct {
	session *Session
	cfg     config.BrowserConfig
	logger  *slog.Logger
}

var _ ports.TimelineSource = (*TruthTimeline)(nil)

// NewTruthTimeline wires the shared session settings.
func NewTruthTimeline(session *Session, cfg config.BrowserConfig, logger *slog.Logger) *TruthTimeline {
	return &TruthTimeline{session: session, cfg: cfg, logger: logger}
}

// Timeline opens the timeline page and runs the collector over its posts.
func (t *TruthTimeline) Timeline(ctx context.Context) ([]domain.RawItem, error) {
	page, cleanup, err := t.session.open(ctx, t.cfg.TimelineURL, timelineWait)
	if err != nil {
		return nil, fmt.Errorf("open timeline page: %w", err)
	}
	defer cleanup()

	labels, err := scroll.Collect(ctx, &pageSource{page: page, extract: statusLabels}, scroll.Options{
		Target:   t.cfg.MinItems,
		MaxSteps: t.cfg.MaxScrolls,
		Settle:   t.cfg.Settle(),
	})
	if err != nil {
		if len(labels) == 0 {
			return nil, fmt.Errorf("collect timeline posts: %w", err)
		}
		if t.logger != nil {
			t.logger.Warn("timeline collection ended early", "error", err)
		}
	}

	return untimedItems(labels, domain.SourceTimeline), nil
}
