package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentiment is the coarse tone label attached to every article
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists every valid sentiment label
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// Valid reports whether s is one of the known sentiment labels
func (s Sentiment) Valid() bool {
	for _, v := range Sentiments {
		if s == v {
			return true
		}
	}
	return false
}

// Article is the canonical, fully populated news record handed to the reader
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Category    Category  `json:"category"`
	Sentiment   Sentiment `json:"sentiment"`
	Summary     []string  `json:"summary"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// ErrInvalidArticle is wrapped by every Validate failure
var ErrInvalidArticle = errors.New("invalid article")

// Validate checks that the article carries every field the reader renders
func (a Article) Validate() error {
	switch {
	case strings.TrimSpace(a.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidArticle)
	case strings.TrimSpace(a.Title) == "":
		return fmt.Errorf("%w: %s has empty title", ErrInvalidArticle, a.ID)
	case strings.TrimSpace(a.Description) == "":
		return fmt.Errorf("%w: %s has empty description", ErrInvalidArticle, a.ID)
	case strings.TrimSpace(a.Content) == "":
		return fmt.Errorf("%w: %s has empty content", ErrInvalidArticle, a.ID)
	case !strings.HasPrefix(a.Image, "http://") && !strings.HasPrefix(a.Image, "https://"):
		return fmt.Errorf("%w: %s has image %q", ErrInvalidArticle, a.ID, a.Image)
	case !a.Category.Valid():
		return fmt.Errorf("%w: %s has category %q", ErrInvalidArticle, a.ID, a.Category)
	case !a.Sentiment.Valid():
		return fmt.Errorf("%w: %s has sentiment %q", ErrInvalidArticle, a.ID, a.Sentiment)
	case len(a.Summary) == 0:
		return fmt.Errorf("%w: %s has no summary", ErrInvalidArticle, a.ID)
	}
	return nil
}

// FindArticle returns the first article with the given id
func FindArticle(articles []Article, id string) (Article, bool) {
	for _, a := range articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}
