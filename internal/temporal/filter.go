package temporal

import (
	"strings"
	"time"

	"github.com/ayaStable/news-tweets-scraper/internal/domain"
)

// Verdict tells what happened to a raw item during normalization.
type Verdict int

const (
	// Kept means the timestamp parsed and the item is inside the window.
	Kept Verdict = iota
	// KeptUntimed means the source provided no timestamp; absence is not a
	// defect, so the item passes through unfiltered.
	KeptUntimed
	// Stale means the timestamp parsed but the item is older than the cutoff.
	Stale
	// Unparseable means a timestamp was present but no strategy understood it.
	Unparseable
)

// layouts are tried in order: the RFC-2822 family used by feed sources first,
// then the aria-style text some scroll sources embed.
var layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Jan 2, 2006, 3:04 PM",
	"Jan 2, 2006",
}

// Filter normalizes heterogeneous timestamp texts and rejects items older
// than the run cutoff. The lower bound is closed: an item exactly at the
// cutoff is retained.
type Filter struct {
	cutoff time.Time
}

// NewFilter derives the cutoff instant now − windowDays, compared in UTC.
func NewFilter(now time.Time, windowDays int) Filter {
	return Filter{cutoff: now.UTC().AddDate(0, 0, -windowDays)}
}

// Cutoff exposes the inclusive lower bound of the retention window.
func (f Filter) Cutoff() time.Time {
	return f.cutoff
}

// Normalize resolves the raw timestamp and applies the window. Only Kept and
// KeptUntimed verdicts come with a usable item.
func (f Filter) Normalize(raw domain.RawItem) (domain.Item, Verdict) {
	item := domain.Item{
		Text:      raw.Text,
		Link:      raw.Link,
		Published: raw.Published,
		Source:    raw.Source,
	}

	if strings.TrimSpace(raw.Published) == "" {
		return item, KeptUntimed
	}

	instant, ok := parseTimestamp(raw.Published)
	if !ok {
		return domain.Item{}, Unparseable
	}

	if instant.UTC().Before(f.cutoff) {
		return domain.Item{}, Stale
	}

	item.PublishedAt = instant.UTC()
	return item, Kept
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
