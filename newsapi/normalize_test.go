package newsapi

import (
	"strings"
	"testing"
	"time"

	"newsdesk/types"
)

func TestNormalizeFieldPrecedence(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := DefaultParams()
	p.Category = types.CategoryScience

	raw := RawItem{
		"headline":     "Comet Returns",
		"summary":      "A short summary",
		"body":         "Body text about the comet.",
		"image_url":    "https://cdn.example.com/comet.jpg",
		"link":         "https://example.com/comet",
		"publishedAt":  "2024-01-02T03:04:05Z",
		"author":       "  ",
		"source":       "Space Daily",
		"unrelated_id": 7,
	}

	a := Normalize(raw, p, now)

	if a.Title != "Comet Returns" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Description != "A short summary" {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Content != "Body text about the comet." {
		t.Errorf("Content = %q", a.Content)
	}
	if a.Image != "https://cdn.example.com/comet.jpg" {
		t.Errorf("Image = %q", a.Image)
	}
	if a.URL != "https://example.com/comet" {
		t.Errorf("URL = %q", a.URL)
	}
	if a.Author != defaultAuthor {
		t.Errorf("Author = %q; want %q", a.Author, defaultAuthor)
	}
	if a.Source != "Space Daily" {
		t.Errorf("Source = %q", a.Source)
	}
	if want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC); !a.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v; want %v", a.PublishedAt, want)
	}
	if a.Category != types.CategoryScience {
		t.Errorf("Category = %q", a.Category)
	}
	if !strings.HasPrefix(a.ID, "api-") {
		t.Errorf("ID = %q; want api- prefix", a.ID)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNormalizeEmptyItem(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := DefaultParams()
	p.Category = types.CategoryHealth

	a := Normalize(RawItem{}, p, now)

	if a.Title != "Breaking Health News" {
		t.Errorf("Title = %q", a.Title)
	}
	if !strings.Contains(a.Description, "health") {
		t.Errorf("Description = %q; want category mention", a.Description)
	}
	if !strings.Contains(a.Content, "breaking health news") {
		t.Errorf("Content = %q; want title mention", a.Content)
	}
	if !a.PublishedAt.Equal(now) {
		t.Errorf("PublishedAt = %v; want now", a.PublishedAt)
	}
	if a.URL != defaultURL || a.Source != defaultSource {
		t.Errorf("URL/Source = %q/%q", a.URL, a.Source)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNormalizeDescriptionFromContent(t *testing.T) {
	content := strings.Repeat("x", 250)
	a := Normalize(RawItem{"content": content}, DefaultParams(), time.Now())

	want := strings.Repeat("x", 200) + "..."
	if a.Description != want {
		t.Fatalf("Description length = %d; want %d", len(a.Description), len(want))
	}
}

func TestRepairImage(t *testing.T) {
	p := DefaultParams()
	query := "w=800&h=400&fit=crop&auto=format&q=85"

	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain https", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png", true},
		{"plain http", "http://cdn.example.com/a.png", "http://cdn.example.com/a.png", true},
		{"unsplash gets query", "https://images.unsplash.com/photo-1", "https://images.unsplash.com/photo-1?" + query, true},
		{"unsplash keeps query", "https://images.unsplash.com/photo-1?w=10", "https://images.unsplash.com/photo-1?w=10", true},
		{"mixed case host", "HTTPS://Images.Unsplash.com/photo-2", "https://images.unsplash.com/photo-2?" + query, true},
		{"relative", "/img/a.png", "", false},
		{"ftp", "ftp://cdn.example.com/a.png", "", false},
		{"no host", "https://", "", false},
		{"empty", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := repairImage(c.in, p)
			if ok != c.ok || got != c.want {
				t.Fatalf("repairImage(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestNormalizeInvalidImageUsesFallback(t *testing.T) {
	p := DefaultParams()
	p.Category = types.CategorySports

	a := Normalize(RawItem{"image": "data:image/png;base64,AAAA"}, p, time.Now())
	if a.Image != fallbackImage(types.CategorySports, 0, p) {
		t.Fatalf("Image = %q; want sports fallback", a.Image)
	}
}

func TestBuildSummary(t *testing.T) {
	t.Run("short content", func(t *testing.T) {
		got := BuildSummary("Too short.", types.CategoryBusiness)
		if len(got) != 3 {
			t.Fatalf("len = %d; want 3", len(got))
		}
		if !strings.Contains(got[0], "business") {
			t.Fatalf("got[0] = %q; want category mention", got[0])
		}
	})

	t.Run("few qualifying sentences", func(t *testing.T) {
		content := strings.Repeat("Tiny bit. ", 20)
		got := BuildSummary(content, types.CategoryWorld)
		if len(got) != 3 || !strings.Contains(got[0], "world are being closely monitored") {
			t.Fatalf("got = %q", got)
		}
	})

	t.Run("first middle last", func(t *testing.T) {
		sentences := []string{
			"The first sentence is comfortably longer than thirty runes",
			"The second sentence is also comfortably long enough",
			"The third sentence sits right in the middle of the text",
			"The fourth sentence keeps the story moving along nicely",
			"The fifth sentence closes the article with an outlook",
		}
		content := strings.Join(sentences, ". ") + "!"

		got := BuildSummary(content, types.CategoryScience)
		want := []string{
			"Key Finding: " + sentences[0] + "...",
			"Market Impact: " + sentences[2] + "...",
			"Future Outlook: " + sentences[4] + "...",
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q; want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("points are clipped", func(t *testing.T) {
		long := strings.Repeat("word ", 60)
		content := long + ". " + long + ". " + long + "."
		for _, point := range BuildSummary(content, types.CategoryScience) {
			if n := len([]rune(point)); n > len("Future Outlook: ")+maxPointLength+3 {
				t.Errorf("point length = %d; too long", n)
			}
		}
	})
}
