package rssfeeds

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"newsdesk/config"
	"newsdesk/newsapi"

	"github.com/mmcdole/gofeed"
)

// FeedSource serves article batches from RSS/Atom feeds in the same raw
// shape the generator API returns
type FeedSource struct {
	mu      sync.RWMutex
	presets Presets
	parser  *gofeed.Parser
	extract bool
	workers int
	timeout time.Duration
}

// NewFeedSource creates a feed-backed source. A nil presets uses DefaultPresets.
// With extract set, full text is pulled from each article page. timeout bounds
// a whole Fetch call; zero uses the API default.
func NewFeedSource(presets Presets, extract bool, timeout time.Duration) *FeedSource {
	if presets == nil {
		presets = DefaultPresets
	}
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	return &FeedSource{
		presets: presets,
		parser:  parser,
		extract: extract,
		workers: WorkerCount,
		timeout: timeout,
	}
}

// Presets returns the feed presets in use
func (s *FeedSource) Presets() Presets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presets
}

// SetPresets swaps the feed presets used by later fetches
func (s *FeedSource) SetPresets(presets Presets) {
	s.mu.Lock()
	s.presets = presets
	s.mu.Unlock()
}

// Fetch reads every feed of p.Category and returns the newest p.Count unique items.
// Feeds still pending when the source timeout expires count as failed.
func (s *FeedSource) Fetch(ctx context.Context, p newsapi.Params) (newsapi.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feeds := s.Presets().For(p.Category)
	if len(feeds) == 0 {
		return newsapi.Response{}, fmt.Errorf("no feeds configured for %s", p.Category)
	}

	var (
		items []*Item
		errs  []error
		seen  = make(map[string]bool)
	)
	for _, feed := range feeds {
		fetched, err := FetchFeed(ctx, s.parser, feed, 0)
		if err != nil {
			log.Printf("⚠️ %v", err)
			errs = append(errs, err)
			continue
		}
		for _, item := range fetched {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			items = append(items, item)
		}
	}

	if len(items) == 0 && len(errs) > 0 {
		return newsapi.Response{}, errors.Join(errs...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > p.Count {
		items = items[:p.Count]
	}

	if s.extract {
		ExtractAllContent(ctx, items, s.workers)
	}

	raw := make([]newsapi.RawItem, 0, len(items))
	for _, item := range items {
		raw = append(raw, toRawItem(item))
	}
	return newsapi.Response{Kind: newsapi.KindItems, Items: raw}, nil
}

func toRawItem(item *Item) newsapi.RawItem {
	raw := newsapi.RawItem{
		"title":       item.Title,
		"description": item.Description,
		"content":     item.Content,
		"image":       item.ImageURL,
		"url":         item.URL,
		"author":      item.Author,
		"source":      item.Source,
	}
	if !item.PublishedAt.IsZero() {
		raw["published_at"] = item.PublishedAt.UTC().Format(time.RFC3339)
	}
	return raw
}
