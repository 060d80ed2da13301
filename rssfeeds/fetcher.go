package rssfeeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is one feed entry before it becomes a raw article
type Item struct {
	ID          string
	Title       string
	URL         string
	Description string // plain text
	Content     string // plain text, filled by extraction when enabled
	ImageURL    string
	Author      string
	Source      string
	PublishedAt time.Time

	ExtractionError string
}

// FetchFeed retrieves and parses an RSS/Atom feed, returning item metadata.
// maxCount <= 0 returns every item.
func FetchFeed(ctx context.Context, parser *gofeed.Parser, feed FeedConfig, maxCount int) ([]*Item, error) {
	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feed.Name, err)
	}

	count := len(parsed.Items)
	if maxCount > 0 {
		count = min(count, maxCount)
	}
	items := make([]*Item, 0, count)

	for i := 0; i < count; i++ {
		entry := parsed.Items[i]

		// Key by link so one story carried by two feeds collapses
		id := GenerateID(entry.Link)
		if entry.Link == "" {
			id = entry.GUID
			if id == "" {
				id = GenerateID(entry.Title)
			}
		}

		// Parse published date
		var publishedAt time.Time
		if entry.PublishedParsed != nil {
			publishedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			publishedAt = *entry.UpdatedParsed
		}

		author := ""
		if entry.Author != nil {
			author = entry.Author.Name
		}

		// Get description/summary
		description := entry.Description
		if description == "" {
			description = entry.Content
		}

		item := &Item{
			ID:          id,
			Title:       strings.TrimSpace(entry.Title),
			URL:         entry.Link,
			Description: HTMLToText(description),
			Content:     HTMLToText(entry.Content),
			ImageURL:    imageFor(entry, description),
			Author:      author,
			Source:      feed.Name,
			PublishedAt: publishedAt,
		}

		items = append(items, item)
	}

	return items, nil
}

// imageFor picks the item image, then an image enclosure, then the first <img> in the description
func imageFor(entry *gofeed.Item, description string) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return FirstImage(description)
}
