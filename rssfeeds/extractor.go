package rssfeeds

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// ExtractAllContent fetches and extracts full text for all items using a worker pool
func ExtractAllContent(ctx context.Context, items []*Item, workers int) {
	if workers <= 0 {
		workers = WorkerCount
	}

	var wg sync.WaitGroup
	itemChan := make(chan *Item, len(items))

	// Start worker pool
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			for item := range itemChan {
				if ctx.Err() != nil {
					item.ExtractionError = ctx.Err().Error()
				} else if err := extractContent(item, extractBudget(ctx)); err != nil {
					item.ExtractionError = err.Error()
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, item.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	// Queue items for extraction
	for _, item := range items {
		wg.Add(1)
		itemChan <- item
	}

	// Wait for all extractions to complete
	wg.Wait()
	close(itemChan)
}

// extractBudget caps the per-page timeout at whatever is left of ctx
func extractBudget(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return extractorTimeout
	}
	return max(min(time.Until(deadline), extractorTimeout), time.Millisecond)
}

// extractContent fetches and extracts full text for a single item
func extractContent(item *Item, timeout time.Duration) error {
	if item.URL == "" {
		return fmt.Errorf("item URL is empty")
	}

	extracted, err := readability.FromURL(item.URL, timeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	item.Content = extracted.TextContent
	if item.Description == "" {
		item.Description = extracted.Excerpt
	}

	// Use extracted metadata if not already set
	if item.ImageURL == "" {
		item.ImageURL = extracted.Image
	}
	if item.Author == "" {
		item.Author = extracted.Byline
	}

	log.Printf("✓ Extracted: %s", item.Title)
	return nil
}
