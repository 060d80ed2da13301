package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsdesk/config"
	"newsdesk/types"
)

type fakeSource struct {
	resp  Response
	err   error
	calls int
	last  Params
}

func (f *fakeSource) Fetch(_ context.Context, p Params) (Response, error) {
	f.calls++
	f.last = p
	return f.resp, f.err
}

func rawArticles(titles ...string) []RawItem {
	items := make([]RawItem, 0, len(titles))
	for _, title := range titles {
		items = append(items, RawItem{
			"title":       title,
			"description": "About " + title,
			"content":     "Full story on " + title,
			"image":       "https://cdn.example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".jpg",
		})
	}
	return items
}

func assertValid(t *testing.T, articles []types.Article, category types.Category) {
	t.Helper()
	for i, a := range articles {
		if err := a.Validate(); err != nil {
			t.Fatalf("article %d invalid: %v", i, err)
		}
		if a.Category != category {
			t.Fatalf("article %d category = %q; want %q", i, a.Category, category)
		}
	}
}

func TestGeneratorClientRequest(t *testing.T) {
	var got map[string]any
	var header http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"title":"One"},{"title":"Two"},{"title":"Three"}]`))
	}))
	defer server.Close()

	svc := NewService(NewGeneratorClient(server.URL, "secret", time.Second), Params{})
	result := svc.FetchRemote(context.Background(), Params{Category: types.CategorySports, Count: 2})

	if !result.OK() {
		t.Fatalf("FetchRemote() error = %v", result.Err)
	}
	if len(result.Articles) != 2 {
		t.Fatalf("len = %d; want 2 (truncated to count)", len(result.Articles))
	}
	assertValid(t, result.Articles, types.CategorySports)

	if header.Get("X-API-KEY") != "secret" {
		t.Errorf("X-API-KEY = %q", header.Get("X-API-KEY"))
	}
	if header.Get("Content-Type") != "application/json" || header.Get("Accept") != "application/json" {
		t.Errorf("content headers = %q / %q", header.Get("Content-Type"), header.Get("Accept"))
	}

	want := map[string]float64{
		"count": 2, "min_length": 1200, "max_length": 3000,
		"img_width": 800, "img_height": 400, "img_quality": 85,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("body[%s] = %v; want %v", k, got[k], v)
		}
	}
	if got["category"] != "sports" {
		t.Errorf("body[category] = %v", got["category"])
	}
}

func TestFetchRemoteFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		summary string
	}{
		{"server error", http.StatusInternalServerError, `oops`, func(err error) bool {
			var se *StatusError
			return errors.As(err, &se) && se.Code == http.StatusInternalServerError
		}, "*StatusError"},
		{"explicit error", http.StatusOK, `{"error":"quota"}`, func(err error) bool {
			var ae *APIError
			return errors.As(err, &ae) && ae.Message == "quota"
		}, "*APIError"},
		{"empty list", http.StatusOK, `[]`, func(err error) bool {
			return errors.Is(err, ErrEmptyResponse)
		}, "ErrEmptyResponse"},
		{"bad shape", http.StatusOK, `"just a string"`, func(err error) bool {
			return errors.Is(err, ErrUnexpectedShape)
		}, "ErrUnexpectedShape"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			}))
			defer server.Close()

			svc := NewService(NewGeneratorClient(server.URL, "", time.Second), Params{})
			result := svc.FetchRemote(context.Background(), Params{Category: types.CategoryWorld, Count: 4})
			if result.OK() {
				t.Fatalf("FetchRemote() succeeded; want %s", c.summary)
			}
			if !c.check(result.Err) {
				t.Fatalf("FetchRemote() error = %v; want %s", result.Err, c.summary)
			}

			articles := svc.FetchNews(context.Background(), Params{Category: types.CategoryWorld, Count: 4})
			if len(articles) != 4 {
				t.Fatalf("FetchNews() len = %d; want 4", len(articles))
			}
			assertValid(t, articles, types.CategoryWorld)
		})
	}
}

func TestFetchNewsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	svc := NewService(NewGeneratorClient(url, "", 2*time.Second), Params{})

	start := time.Now()
	articles := svc.FetchNews(context.Background(), Params{Category: types.CategorySports, Count: 5})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("FetchNews() took %v; want within timeout", elapsed)
	}

	if len(articles) != 5 {
		t.Fatalf("len = %d; want 5", len(articles))
	}
	assertValid(t, articles, types.CategorySports)
	for _, a := range articles {
		if !strings.HasPrefix(a.ID, "mock-sports-") {
			t.Fatalf("ID = %q; want mock-sports- prefix", a.ID)
		}
	}
}

func TestFetchNewsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	svc := NewService(NewGeneratorClient(server.URL, "", 50*time.Millisecond), Params{})
	articles := svc.FetchNews(context.Background(), Params{Category: types.CategoryHealth, Count: 3})

	if len(articles) != 3 {
		t.Fatalf("len = %d; want 3", len(articles))
	}
	assertValid(t, articles, types.CategoryHealth)
}

func TestGenerateMockArticles(t *testing.T) {
	now := time.Now()
	for _, category := range types.Categories() {
		t.Run(string(category), func(t *testing.T) {
			first := GenerateMockArticles(Params{Category: category, Count: 9}, now)
			second := GenerateMockArticles(Params{Category: category, Count: 9}, now)

			if len(first) != 9 || len(second) != 9 {
				t.Fatalf("len = %d/%d; want 9", len(first), len(second))
			}
			assertValid(t, first, category)

			for i := range first {
				if first[i].Title != second[i].Title || first[i].Image != second[i].Image {
					t.Fatalf("article %d differs between runs", i)
				}
				if first[i].PublishedAt.After(now) || now.Sub(first[i].PublishedAt) > 24*time.Hour {
					t.Fatalf("article %d publishedAt %v outside the last day", i, first[i].PublishedAt)
				}
			}
		})
	}
}

func TestGeneratedIDsDifferAcrossBatches(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	batches := [][]types.Article{
		GenerateMockArticles(Params{Category: types.CategoryGeneral, Count: 5}, now),
		GenerateMockArticles(Params{Category: types.CategoryGeneral, Count: 5}, now),
		GenerateSearchResults("ai", 5, Params{}, now),
		GenerateSearchResults("ai", 5, Params{}, now),
	}
	for _, batch := range batches {
		for _, a := range batch {
			if seen[a.ID] {
				t.Fatalf("duplicate id %q across batches built at the same instant", a.ID)
			}
			seen[a.ID] = true
		}
	}
}

func TestGeneratorClientDefaultKey(t *testing.T) {
	var key string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get(config.APIKeyHeader)
		w.Write([]byte(`[{"title":"One"}]`))
	}))
	defer server.Close()

	if _, err := NewGeneratorClient(server.URL, "", time.Second).Fetch(context.Background(), DefaultParams()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if key != config.DefaultAPIKey {
		t.Fatalf("%s = %q; want %q", config.APIKeyHeader, key, config.DefaultAPIKey)
	}
}

func TestGenerateMockArticlesEdgeCases(t *testing.T) {
	now := time.Now()

	if got := GenerateMockArticles(Params{Category: types.CategoryScience}, now); len(got) != 12 {
		t.Errorf("zero count len = %d; want default 12", len(got))
	}

	got := GenerateMockArticles(Params{Category: "weather", Count: 2}, now)
	if len(got) != 2 {
		t.Fatalf("unknown category len = %d; want 2", len(got))
	}
	assertValid(t, got, types.CategoryGeneral)
}

func TestSearch(t *testing.T) {
	src := &fakeSource{resp: Response{Kind: KindItems, Items: rawArticles(
		"Quantum Computing Leap",
		"Election Results Announced",
		"Local Quantum Startup Raises Funds",
	)}}
	svc := NewService(src, Params{})

	t.Run("matches", func(t *testing.T) {
		got := svc.Search(context.Background(), "QUANTUM")
		if len(got) != 2 {
			t.Fatalf("len = %d; want 2", len(got))
		}
		if src.last.Category != types.CategoryGeneral || src.last.Count != 20 {
			t.Fatalf("search params = %+v; want general/20", src.last)
		}
	})

	t.Run("empty query returns batch", func(t *testing.T) {
		if got := svc.Search(context.Background(), "  "); len(got) != 3 {
			t.Fatalf("len = %d; want 3", len(got))
		}
	})

	t.Run("no match generates results", func(t *testing.T) {
		got := svc.Search(context.Background(), "zeppelin")
		if len(got) != searchFillerCount {
			t.Fatalf("len = %d; want %d", len(got), searchFillerCount)
		}
		for _, a := range got {
			if !strings.HasPrefix(a.ID, "search-") || !strings.Contains(a.Title, "zeppelin") {
				t.Fatalf("unexpected filler article %q / %q", a.ID, a.Title)
			}
			if err := a.Validate(); err != nil {
				t.Fatalf("filler invalid: %v", err)
			}
		}
	})

	t.Run("source failure still returns results", func(t *testing.T) {
		failing := NewService(&fakeSource{err: errors.New("offline")}, Params{})
		if got := failing.Search(context.Background(), "anything"); len(got) == 0 {
			t.Fatal("Search() returned nothing")
		}
	})
}
