package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ayaStable/news-tweets-scraper/internal/config"
	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>search results</title>
    <item>
      <title>Wheat futures climb on export news</title>
      <link>http://example.com/wheat-1</link>
      <pubDate>Mon, 10 Mar 2025 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title></title>
      <link>http://example.com/untitled</link>
    </item>
    <item>
      <title>Harvest outlook revised</title>
      <link>http://example.com/wheat-2</link>
      <pubDate>Sun, 09 Mar 2025 18:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchParsesEntriesAndAppendsSuffix(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	source := NewGoogleNews(config.FeedConfig{
		SearchURL:      server.URL,
		QuerySuffix:    "usa",
		TimeoutSeconds: 5,
	}, nil)

	items, err := source.Fetch(context.Background(), "wheat")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotQuery != "wheat usa" {
		t.Fatalf("expected suffixed query, got %q", gotQuery)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 titled entries, got %d", len(items))
	}
	first := items[0]
	if first.Text != "Wheat futures climb on export news" {
		t.Fatalf("unexpected text: %q", first.Text)
	}
	if first.Link != "http://example.com/wheat-1" {
		t.Fatalf("unexpected link: %q", first.Link)
	}
	if first.Published == "" {
		t.Fatalf("expected the raw timestamp carried through")
	}
	if first.Source != domain.SourceFeed {
		t.Fatalf("unexpected source tag: %q", first.Source)
	}
}

func TestFetchEscapesQueryTerm(t *testing.T) {
	t.Parallel()

	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	source := NewGoogleNews(config.FeedConfig{SearchURL: server.URL, TimeoutSeconds: 5}, nil)
	if _, err := source.Fetch(context.Background(), "crude oil & gas"); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if got := values.Get("q"); got != "crude oil & gas" {
		t.Fatalf("query term mangled in transit: %q", got)
	}
}

func TestFetchPropagatesServerFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := NewGoogleNews(config.FeedConfig{SearchURL: server.URL, TimeoutSeconds: 5}, nil)
	if _, err := source.Fetch(context.Background(), "wheat"); err == nil {
		t.Fatalf("expected an error for a failing feed endpoint")
	}
}
