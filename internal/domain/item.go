package domain

import "time"

// SourceType identifies which kind of adapter produced an item.
type SourceType string

const (
	SourceFeed     SourceType = "feed"
	SourceSearch   SourceType = "search"
	SourceTimeline SourceType = "timeline"
)

// RawItem is a single text signal as emitted by a source adapter.
// Published keeps the source-native timestamp text; it may be empty when the
// source exposes no timestamp at all.
type RawItem struct {
	Text      string
	Link      string
	Published string
	Source    SourceType
}

// Item is a RawItem whose timestamp has been resolved to an absolute instant.
// A zero PublishedAt means the source provided no timestamp (distinct from an
// unparseable one, which never becomes an Item).
type Item struct {
	Text        string     `json:"text"`
	Link        string     `json:"link,omitempty"`
	Published   string     `json:"date,omitempty"`
	PublishedAt time.Time  `json:"-"`
	Source      SourceType `json:"-"`
}

// FetchResult is the outcome of one (query, source) attempt. Partial success
// is valid: some items together with no fatal error.
type FetchResult struct {
	Query  string
	Source SourceType
	Items  []Item
	Err    error
}

// Aggregate merges all fetch results of a run. Every requested query has an
// entry in both maps, empty when the fetch produced nothing. It is built once
// per run and read-only afterwards.
type Aggregate struct {
	News     map[string][]Item `json:"news_feeds"`
	Search   map[string][]Item `json:"search_results"`
	Timeline []Item            `json:"timeline_posts"`
}

// ItemCount reports the total number of retained items across all sources.
func (a Aggregate) ItemCount() int {
	total := len(a.Timeline)
	for _, items := range a.News {
		total += len(items)
	}
	for _, items := range a.Search {
		total += len(items)
	}
	return total
}
