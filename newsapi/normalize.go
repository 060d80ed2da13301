package newsapi

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"newsdesk/types"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

// Candidate upstream keys per article attribute, in precedence order
var (
	titleKeys       = []string{"title", "headline"}
	descriptionKeys = []string{"description", "summary"}
	contentKeys     = []string{"content", "body", "text"}
	imageKeys       = []string{"image", "image_url", "img"}
	urlKeys         = []string{"url", "link"}
	publishedKeys   = []string{"published_at", "publishedAt"}
)

const (
	defaultSource = "NewsWire"
	defaultAuthor = "News Team"
	defaultURL    = "#"
)

// Normalize maps one raw upstream item onto the canonical article
func Normalize(raw RawItem, p Params, now time.Time) types.Article {
	category := p.Category
	if !category.Valid() {
		category = types.CategoryTechnology
	}

	content := pick(raw, contentKeys...)
	title := pick(raw, titleKeys...)
	if title == "" {
		title = fmt.Sprintf("Breaking %s News", category.Title())
	}

	description := pick(raw, descriptionKeys...)
	if description == "" {
		if content != "" {
			description = clip(content, 200) + "..."
		} else {
			description = fmt.Sprintf("Latest %s coverage: %s.", category, title)
		}
	}

	summary := BuildSummary(content, category)

	if content == "" {
		content = placeholderContent(title)
	}

	image, ok := repairImage(pick(raw, imageKeys...), p)
	if !ok {
		image = fallbackImage(category, 0, p)
	}

	return types.Article{
		ID:          "api-" + uuid.NewString(),
		Title:       title,
		Description: description,
		Content:     content,
		Image:       image,
		Category:    category,
		Sentiment:   randomSentiment(),
		Summary:     summary,
		PublishedAt: parsePublished(pick(raw, publishedKeys...), now),
		Author:      orDefault(pick(raw, "author"), defaultAuthor),
		Source:      orDefault(pick(raw, "source"), defaultSource),
		URL:         orDefault(pick(raw, urlKeys...), defaultURL),
	}
}

// pick returns the first non-blank string value among keys
func pick(raw RawItem, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func placeholderContent(title string) string {
	return fmt.Sprintf("This is a developing story about %s. Our newsroom is working to bring you "+
		"comprehensive coverage with detailed analysis and expert insights. The full article will "+
		"provide in-depth reporting on this development, including background information, expert "+
		"opinions, and potential implications for the future. Stay tuned as we continue to monitor "+
		"this situation and provide updates as new information becomes available.", strings.ToLower(title))
}

var unsplashHosts = map[string]bool{
	"images.unsplash.com": true,
	"source.unsplash.com": true,
	"plus.unsplash.com":   true,
}

// repairImage accepts absolute http(s) URLs only. Unsplash URLs without a
// query get the default crop and size parameters.
func repairImage(raw string, p Params) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}

	if unsplashHosts[u.Host] && u.RawQuery == "" {
		u.RawQuery = unsplashQuery(p)
	}
	return u.String(), true
}

func unsplashQuery(p Params) string {
	return fmt.Sprintf("w=%d&h=%d&fit=crop&auto=format&q=%d", p.ImgWidth, p.ImgHeight, p.ImgQuality)
}

func parsePublished(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return now
	}
	return t
}

func randomSentiment() types.Sentiment {
	return types.Sentiments[rand.IntN(len(types.Sentiments))]
}

// clip shortens s to at most n runes
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
