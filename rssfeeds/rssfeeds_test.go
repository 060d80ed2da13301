package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsdesk/newsapi"
	"newsdesk/types"
)

const techFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test Tech</title>
  <link>https://example.com</link>
  <description>Test feed</description>
  <item>
    <title>Older Story</title>
    <link>https://example.com/older</link>
    <description>&lt;p&gt;An &lt;b&gt;older&lt;/b&gt; story.&lt;/p&gt;&lt;img src="https://cdn.example.com/older.jpg"&gt;</description>
    <pubDate>Mon, 06 Jan 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Newest Story</title>
    <link>https://example.com/newest</link>
    <description>Plain newest text</description>
    <enclosure url="https://cdn.example.com/newest.png" type="image/png" length="1"/>
    <pubDate>Wed, 08 Jan 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Middle Story</title>
    <link>https://example.com/middle</link>
    <description>Middle text</description>
    <pubDate>Tue, 07 Jan 2025 10:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFeedSourceFetch(t *testing.T) {
	server := feedServer(t, techFeed)
	presets := Presets{
		types.CategoryTechnology: {
			{Name: "Test Tech", URL: server.URL},
			{Name: "Mirror", URL: server.URL},
		},
	}

	src := NewFeedSource(presets, false, 0)
	resp, err := src.Fetch(context.Background(), newsapi.Params{Category: types.CategoryTechnology, Count: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.Kind != newsapi.KindItems {
		t.Fatalf("Kind = %v", resp.Kind)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("len(Items) = %d; want 2 (deduped, newest first)", len(resp.Items))
	}

	first := resp.Items[0]
	if first["title"] != "Newest Story" || first["image"] != "https://cdn.example.com/newest.png" {
		t.Fatalf("first = %v", first)
	}
	if first["source"] != "Test Tech" || first["published_at"] != "2025-01-08T10:00:00Z" {
		t.Fatalf("first = %v", first)
	}
	if resp.Items[1]["title"] != "Middle Story" {
		t.Fatalf("second title = %v", resp.Items[1]["title"])
	}
}

func TestFeedSourceThroughService(t *testing.T) {
	server := feedServer(t, techFeed)
	presets := Presets{types.CategoryGeneral: {{Name: "Test", URL: server.URL}}}

	svc := newsapi.NewService(NewFeedSource(presets, false, 0), newsapi.Params{})
	result := svc.FetchRemote(context.Background(), newsapi.Params{Category: types.CategoryHealth, Count: 3})
	if !result.OK() {
		t.Fatalf("FetchRemote: %v", result.Err)
	}
	if len(result.Articles) != 3 {
		t.Fatalf("len = %d; want 3", len(result.Articles))
	}
	for _, a := range result.Articles {
		if a.Category != types.CategoryHealth {
			t.Fatalf("category = %q", a.Category)
		}
		if err := a.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	}

	older := result.Articles[2]
	if older.Description != "An older story." || older.Image != "https://cdn.example.com/older.jpg" {
		t.Fatalf("older = %q / %q", older.Description, older.Image)
	}
}

func TestFeedSourceAllFeedsFail(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	src := NewFeedSource(Presets{types.CategoryGeneral: {{Name: "Broken", URL: server.URL}}}, false, 0)
	if _, err := src.Fetch(context.Background(), newsapi.Params{Category: types.CategoryGeneral, Count: 3}); err == nil {
		t.Fatal("Fetch() = nil error; want failure")
	}
}

func TestFeedSourceHungFeedFallsBack(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	src := NewFeedSource(Presets{types.CategoryGeneral: {{Name: "Hung", URL: server.URL}}}, false, 200*time.Millisecond)
	svc := newsapi.NewService(src, newsapi.Params{})

	done := make(chan []types.Article, 1)
	go func() {
		done <- svc.FetchNews(context.Background(), newsapi.Params{Category: types.CategoryGeneral, Count: 5})
	}()

	select {
	case articles := <-done:
		if len(articles) != 5 {
			t.Fatalf("len = %d; want 5", len(articles))
		}
		for _, a := range articles {
			if !strings.HasPrefix(a.ID, "mock-general-") {
				t.Fatalf("id = %q; want generated fallback", a.ID)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("FetchNews did not return while the feed hung")
	}
}

func TestExtractBudget(t *testing.T) {
	if got := extractBudget(context.Background()); got != extractorTimeout {
		t.Fatalf("no deadline: budget = %v; want %v", got, extractorTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if got := extractBudget(ctx); got > time.Second || got <= 0 {
		t.Fatalf("1s deadline: budget = %v", got)
	}

	expired, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()
	if got := extractBudget(expired); got != time.Millisecond {
		t.Fatalf("expired: budget = %v; want 1ms", got)
	}
}

func TestHTMLToText(t *testing.T) {
	cases := map[string]string{
		"":                                    "",
		"plain text":                          "plain text",
		"<p>Hello <b>world</b></p>":           "Hello world",
		"<div>a<script>x()</script>  b</div>": "a b",
		"  spaced\n\n out  ":                  "spaced out",
	}
	for in, want := range cases {
		if got := HTMLToText(in); got != want {
			t.Errorf("HTMLToText(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestFirstImage(t *testing.T) {
	if got := FirstImage(`<p>x</p><img src="https://a/b.jpg"><img src="https://a/c.jpg">`); got != "https://a/b.jpg" {
		t.Fatalf("FirstImage = %q", got)
	}
	if got := FirstImage("no images"); got != "" {
		t.Fatalf("FirstImage = %q; want empty", got)
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID("https://example.com/a")
	if len(a) != 16 || a != GenerateID("https://example.com/a") || a == GenerateID("https://example.com/b") {
		t.Fatalf("GenerateID not a stable 16-char hash: %q", a)
	}
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "feeds.yaml")
	os.WriteFile(yamlPath, []byte(`
feeds:
  Sports:
    - name: Local Sports
      url: https://example.com/sports.xml
`), 0644)

	tomlPath := filepath.Join(dir, "feeds.toml")
	os.WriteFile(tomlPath, []byte(`
[[feeds.science]]
url = "https://example.com/science.xml"
`), 0644)

	presets, err := LoadPresets(yamlPath)
	if err != nil {
		t.Fatalf("LoadPresets(yaml): %v", err)
	}
	if got := presets.For(types.CategorySports); len(got) != 1 || got[0].Name != "Local Sports" {
		t.Fatalf("sports = %v", got)
	}
	if got := presets.For(types.CategoryTechnology); len(got) != len(DefaultPresets[types.CategoryTechnology]) {
		t.Fatalf("technology presets not kept: %v", got)
	}

	presets, err = LoadPresets(tomlPath)
	if err != nil {
		t.Fatalf("LoadPresets(toml): %v", err)
	}
	if got := presets.For(types.CategoryScience); len(got) != 1 || got[0].Name != "https://example.com/science.xml" {
		t.Fatalf("science = %v", got)
	}
}

func TestLoadPresetsErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte(body), 0644)
		return path
	}

	cases := map[string]string{
		"unknown category": write("bad.yaml", "feeds:\n  weather:\n    - url: https://x\n"),
		"missing url":      write("nourl.yaml", "feeds:\n  world:\n    - name: x\n"),
		"bad extension":    write("feeds.json", "{}"),
		"missing file":     filepath.Join(dir, "absent.yaml"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadPresets(path); err == nil {
				t.Fatalf("LoadPresets(%s) = nil error", path)
			}
		})
	}
}

func TestWatchPresetsReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte("feeds:\n  sports:\n    - url: https://example.com/a.xml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}

	src := NewFeedSource(presets, false, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := WatchPresets(ctx, path, src); err != nil {
		t.Fatalf("WatchPresets: %v", err)
	}

	if err := os.WriteFile(path, []byte("feeds:\n  sports:\n    - url: https://example.com/b.xml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got := src.Presets().For(types.CategorySports); len(got) == 1 && got[0].URL == "https://example.com/b.xml" {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("presets not reloaded: %v", src.Presets().For(types.CategorySports))
}
