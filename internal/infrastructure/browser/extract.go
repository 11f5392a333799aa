package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	tweetSelector  = "div.tweet-content"
	timelineWait   = "#timeline"
	statusSelector = "#timeline .status[aria-label]"
)

// tweetTexts pulls the visible text of every search hit on the page.
func tweetTexts(doc *goquery.Document) []string {
	var texts []string
	doc.Find(tweetSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// statusLabels pulls the aria-label of every timeline post; the label is the
// stable per-post identity the collector deduplicates on.
func statusLabels(doc *goquery.Document) []string {
	var labels []string
	doc.Find(statusSelector).Each(func(_ int, sel *goquery.Selection) {
		if label, ok := sel.Attr("aria-label"); ok {
			if label = strings.TrimSpace(label); label != "" {
				labels = append(labels, label)
			}
		}
	})
	return labels
}
