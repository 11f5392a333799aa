// Package browser implements the scroll-based source adapters on top of a
// dedicated headless browser. The browser is an exclusive, expensive
// resource: each fetch launches its own instance and tears it down on every
// exit path before the next sequential fetch may acquire one.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
)

// scrollStep is how far Advance moves the viewport per collector step.
const scrollStep = 800

// Session knows how to bring up a browser page on a target URL and hand it
// to a scroll adapter.
type Session struct {
	cfg    config.BrowserConfig
	logger *slog.Logger
}

// NewSession stores launch settings; nothing is started until open is called.
func NewSession(cfg config.BrowserConfig, logger *slog.Logger) *Session {
	return &Session{cfg: cfg, logger: logger}
}

// open launches a browser, navigates to target, and waits for waitSelector
// to appear. The returned cleanup closes the page, the browser, and the
// launcher; callers must invoke it on every exit path.
func (s *Session) open(ctx context.Context, target, waitSelector string) (*rod.Page, func(), error) {
	l := launcher.New().
		Headless(s.cfg.Headless).
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-extensions").
		Set("window-size", "1280,800")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}

	cleanup := func() {
		if err := b.Close(); err != nil && s.logger != nil {
			s.logger.Warn("close browser", "error", err)
		}
		l.Cleanup()
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}

	if s.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.cfg.UserAgent}); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	timed := page.Timeout(s.cfg.PageWait())
	if err := timed.Navigate(target); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("navigate %s: %w", target, err)
	}
	if err := timed.WaitLoad(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wait load: %w", err)
	}
	if _, err := timed.Element(waitSelector); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wait for %q: %w", waitSelector, err)
	}

	return page, cleanup, nil
}

// pageSource adapts a live page to the convergence collector: Visible parses
// a snapshot of the rendered HTML, Advance scrolls the viewport down.
type pageSource struct {
	page    *rod.Page
	extract func(*goquery.Document) []string
}

func (p *pageSource) Visible(ctx context.Context) ([]string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return p.extract(doc), nil
}

func (p *pageSource) Advance(ctx context.Context) error {
	return p.page.Context(ctx).Mouse.Scroll(0, scrollStep, 1)
}
