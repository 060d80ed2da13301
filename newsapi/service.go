package newsapi

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"newsdesk/config"
	"newsdesk/types"
)

// searchFillerCount is how many query-labeled articles a search with no matches returns
const searchFillerCount = 5

// Result is the outcome of a single remote fetch: either Articles or Err
type Result struct {
	Articles []types.Article
	Err      error
}

// OK reports whether the remote fetch produced usable articles
func (r Result) OK() bool {
	return r.Err == nil
}

// Service fetches article batches from a Source and papers over failures
// with generated articles
type Service struct {
	source   Source
	defaults Params
	now      func() time.Time
}

// NewService creates a fetch service. Zero fields in defaults use DefaultParams.
func NewService(source Source, defaults Params) *Service {
	return &Service{
		source:   source,
		defaults: defaults.WithDefaults(DefaultParams()),
		now:      time.Now,
	}
}

// Defaults returns the merged request defaults
func (s *Service) Defaults() Params {
	return s.defaults
}

// FetchRemote performs exactly one upstream request and normalizes the result.
// It never falls back; the failure reason is returned in Result.Err.
func (s *Service) FetchRemote(ctx context.Context, p Params) Result {
	p = p.WithDefaults(s.defaults)

	resp, err := s.source.Fetch(ctx, p)
	if err != nil {
		return Result{Err: fmt.Errorf("fetch %s: %w", p.Category, err)}
	}

	if resp.Kind == KindError {
		return Result{Err: &APIError{Message: resp.Error}}
	}
	if len(resp.Items) == 0 {
		return Result{Err: ErrEmptyResponse}
	}

	items := resp.Items
	if len(items) > p.Count {
		items = items[:p.Count]
	}

	now := s.now()
	articles := make([]types.Article, 0, len(items))
	for i, raw := range items {
		article := Normalize(raw, p, now)
		if err := article.Validate(); err != nil {
			return Result{Err: fmt.Errorf("item %d: %w", i, err)}
		}
		articles = append(articles, article)
	}

	return Result{Articles: articles}
}

// SupplyFallback generates p.Count articles locally. It performs no I/O.
func (s *Service) SupplyFallback(p Params) []types.Article {
	return GenerateMockArticles(p.WithDefaults(s.defaults), s.now())
}

// FetchNews returns live articles when the upstream answers usefully and
// generated ones otherwise. It never fails.
func (s *Service) FetchNews(ctx context.Context, p Params) []types.Article {
	p = p.WithDefaults(s.defaults)

	result := s.FetchRemote(ctx, p)
	if result.OK() {
		log.Printf("✅ Fetched %d %s articles", len(result.Articles), p.Category)
		return result.Articles
	}

	log.Printf("⚠️ Using generated %s articles: %v", p.Category, result.Err)
	return s.SupplyFallback(p)
}

// Search fetches a broad batch and filters it by a case-insensitive substring
// match on title, description, content and category. An empty query returns
// the whole batch. No match yields generated query-labeled articles.
func (s *Service) Search(ctx context.Context, query string) []types.Article {
	p := Params{Category: types.CategoryGeneral, Count: config.SearchCount}.WithDefaults(s.defaults)
	return s.filter(s.FetchNews(ctx, p), query, p)
}

func (s *Service) filter(articles []types.Article, query string, p Params) []types.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return articles
	}

	var matches []types.Article
	for _, a := range articles {
		if matchesQuery(a, q) {
			matches = append(matches, a)
		}
	}

	if len(matches) == 0 {
		log.Printf("🔍 No matches for %q, generating results", query)
		return GenerateSearchResults(query, searchFillerCount, p, s.now())
	}
	return matches
}

func matchesQuery(a types.Article, q string) bool {
	for _, field := range []string{a.Title, a.Description, a.Content, string(a.Category)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
