package radar

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const maxPerFeed = 10

// FeedConfig is one configured headline feed.
type FeedConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// Headline is one recent feed entry used to ground the scan.
type Headline struct {
	Title         string
	Source        string
	PublishedDate string // YYYY-MM-DD or empty
}

// collectHeadlines parses all configured feeds and returns recent headlines.
// Individual feed failures are logged and skipped; an empty result is fine,
// the scan prompt just loses its grounding section.
func collectHeadlines(feeds []FeedConfig, daysBack int) []Headline {
	cutoff := time.Now().AddDate(0, 0, -daysBack)
	parser := gofeed.NewParser()

	var all []Headline
	for _, fc := range feeds {
		feed, err := parser.ParseURL(fc.URL)
		if err != nil {
			log.Printf("failed to parse feed %s: %v", fc.URL, err)
			continue
		}

		name := fc.Name
		if name == "" {
			name = feed.Title
		}

		count := 0
		for _, item := range feed.Items {
			if count >= maxPerFeed {
				break
			}
			h := parseItem(item, name)
			if h == nil || !withinWindow(h.PublishedDate, cutoff) {
				continue
			}
			all = append(all, *h)
			count++
		}
		log.Printf("collected %d headlines from %s", count, name)
	}
	return all
}

func parseItem(item *gofeed.Item, source string) *Headline {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return nil
	}

	var published string
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.Format("2006-01-02")
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.Format("2006-01-02")
	}

	return &Headline{Title: title, Source: source, PublishedDate: published}
}

func withinWindow(publishedDate string, cutoff time.Time) bool {
	if publishedDate == "" {
		return true // benefit of the doubt
	}
	pub, err := time.Parse("2006-01-02", publishedDate)
	if err != nil {
		return true
	}
	return !pub.Before(cutoff)
}

// headlineText flattens headlines into prompt material.
func headlineText(headlines []Headline) string {
	var lines []string
	for _, h := range headlines {
		line := fmt.Sprintf("- %s (%s", h.Title, h.Source)
		if h.PublishedDate != "" {
			line += ", " + h.PublishedDate
		}
		lines = append(lines, line+")")
	}
	return strings.Join(lines, "\n")
}
