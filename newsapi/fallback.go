package newsapi

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"newsdesk/types"

	"github.com/google/uuid"
)

const (
	mockSource = "NewsWire Network"
	mockAuthor = "Editorial Team"
)

// mockPool is the small per-category set of titles and Unsplash photos used
// to build generated articles
type mockPool struct {
	label  string
	titles []string
	photos []string
}

var mockPools = map[types.Category]mockPool{
	types.CategoryGeneral: {
		label: "Breaking News",
		titles: []string{
			"City Council Approves Landmark Infrastructure Plan",
			"Community Volunteers Rally After Overnight Storm",
			"Public Transit Ridership Reaches New High",
			"Local Libraries Expand Evening Hours",
		},
		photos: []string{"photo-1504711434969-e33886168f5c", "photo-1495020689067-958852a7765e", "photo-1585829365295-ab7cd400c167"},
	},
	types.CategoryTechnology: {
		label: "Tech Innovation",
		titles: []string{
			"Chipmakers Race to Shrink Next Generation Processors",
			"Open Source Project Reaches a Million Contributors",
			"New Battery Chemistry Promises Faster Charging",
			"Developers Embrace On-Device Machine Learning",
		},
		photos: []string{"photo-1518770660439-4636190af475", "photo-1488590528505-98d2b5aba04b", "photo-1550751827-4bd374c3f58b"},
	},
	types.CategoryWorld: {
		label: "Global Affairs",
		titles: []string{
			"Leaders Gather for Regional Climate Summit",
			"Trade Corridor Reopens After Lengthy Negotiations",
			"Relief Agencies Coordinate Cross-Border Aid",
			"Historic Treaty Marks Its Fiftieth Anniversary",
		},
		photos: []string{"photo-1451187580459-43490279c0fa", "photo-1526470608268-f674ce90ebd4", "photo-1521295121783-8a321d551ad2"},
	},
	types.CategoryBusiness: {
		label: "Market Updates",
		titles: []string{
			"Markets Steady as Investors Weigh Rate Outlook",
			"Small Businesses Report Strong Holiday Quarter",
			"Retailers Rethink Supply Chains for Resilience",
			"Startup Funding Rebounds in Emerging Sectors",
		},
		photos: []string{"photo-1611974789855-9c2a0a7236a3", "photo-1460925895917-afdab827c52f", "photo-1486406146926-c627a92ad1ab"},
	},
	types.CategoryHealth: {
		label: "Health & Wellness",
		titles: []string{
			"Study Links Daily Walks to Better Sleep",
			"Hospitals Pilot Shorter Emergency Wait Times",
			"Researchers Track Progress on Seasonal Vaccines",
			"Nutrition Guidelines Get a Practical Update",
		},
		photos: []string{"photo-1505751172876-fa1923c5c528", "photo-1532938911079-1b06ac7ceec7", "photo-1576091160399-112ba8d25d1d"},
	},
	types.CategorySports: {
		label: "Sports News",
		titles: []string{
			"Underdogs Clinch Playoff Spot in Overtime Thriller",
			"Veteran Striker Announces Final Season",
			"League Unveils Expanded Championship Format",
			"Young Sprinter Breaks National Record",
		},
		photos: []string{"photo-1461896836934-ffe607ba8211", "photo-1517649763962-0c623066013b", "photo-1431324155629-1a6deb1dec8d"},
	},
	types.CategoryEntertainment: {
		label: "Entertainment",
		titles: []string{
			"Independent Film Sweeps Festival Awards",
			"Streaming Series Renewed for Third Season",
			"Concert Tour Adds Dates After Selling Out",
			"Museum Opens Interactive Film History Exhibit",
		},
		photos: []string{"photo-1489599849927-2ee91cede3ba", "photo-1470229722913-7c0e2dbbafd3", "photo-1514525253161-7a46d19cd819"},
	},
	types.CategoryScience: {
		label: "Scientific Discovery",
		titles: []string{
			"Telescope Captures Clearest Image of Distant Galaxy",
			"Ocean Survey Maps Previously Unknown Reef",
			"Physicists Report Progress on Stable Qubits",
			"Ancient Genome Sheds Light on Early Farming",
		},
		photos: []string{"photo-1532094349884-543bc11b234d", "photo-1507413245164-6160d8298b31", "photo-1446776811953-b23d57bd21aa"},
	},
}

func poolFor(c types.Category) mockPool {
	if pool, ok := mockPools[c]; ok {
		return pool
	}
	return mockPools[types.CategoryGeneral]
}

func unsplashPhoto(photo string, p Params) string {
	return fmt.Sprintf("https://images.unsplash.com/%s?%s", photo, unsplashQuery(p))
}

// fallbackImage is the category-keyed replacement for a missing or invalid image
func fallbackImage(c types.Category, i int, p Params) string {
	pool := poolFor(c)
	return unsplashPhoto(pool.photos[i%len(pool.photos)], p)
}

// GenerateMockArticles builds exactly p.Count articles for p.Category without
// any I/O. Unknown categories use the general pool. Only the id suffix,
// sentiment and publishedAt jitter vary between calls with the same inputs.
func GenerateMockArticles(p Params, now time.Time) []types.Article {
	if !p.Category.Valid() {
		p.Category = types.CategoryGeneral
	}
	p = p.WithDefaults(DefaultParams())
	pool := poolFor(p.Category)
	batch := batchID()

	articles := make([]types.Article, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		headline := pool.titles[i%len(pool.titles)]
		articles = append(articles, types.Article{
			ID:          fmt.Sprintf("mock-%s-%d-%d-%s", p.Category, now.UnixMilli(), i, batch),
			Title:       fmt.Sprintf("%s: %s #%d", pool.label, headline, i+1),
			Description: mockDescription(p.Category, headline),
			Content:     mockContent(p.Category, headline),
			Image:       unsplashPhoto(pool.photos[i%len(pool.photos)], p),
			Category:    p.Category,
			Sentiment:   randomSentiment(),
			Summary: []string{
				fmt.Sprintf("Breaking: Major developments reported in %s sector with industry-wide implications", p.Category),
				"Analysis: Experts predict significant changes ahead as new information emerges",
				"Impact: Stakeholders across the industry are reassessing strategies and policies",
			},
			PublishedAt: jitter(now),
			Author:      mockAuthor,
			Source:      mockSource,
			URL:         defaultURL,
		})
	}
	return articles
}

// batchID is a short random suffix keeping ids of batches built in the same millisecond apart
func batchID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// GenerateSearchResults builds a small query-labeled set used when a search matches nothing
func GenerateSearchResults(query string, count int, p Params, now time.Time) []types.Article {
	p = p.WithDefaults(DefaultParams())
	p.Category = types.CategoryGeneral
	p.Count = count

	titles := poolFor(p.Category).titles
	articles := GenerateMockArticles(p, now)
	batch := batchID()
	for i := range articles {
		headline := titles[i%len(titles)]
		articles[i].ID = fmt.Sprintf("search-%d-%d-%s", now.UnixMilli(), i, batch)
		articles[i].Title = fmt.Sprintf("Results for %q: %s", query, headline)
		articles[i].Description = fmt.Sprintf("Coverage related to %q. %s", query, articles[i].Description)
	}
	return articles
}

func mockDescription(c types.Category, headline string) string {
	return fmt.Sprintf("This is a comprehensive report on %q, covering the latest developments in %s. "+
		"Our expert analysis reveals important insights that could impact the future of this industry.",
		headline, c)
}

func mockContent(c types.Category, headline string) string {
	paragraphs := []string{
		fmt.Sprintf("In a significant development within the %s sector, new information has emerged about %s that could reshape our understanding of current trends.", c, strings.ToLower(headline)),
		"This story involves multiple stakeholders and has implications that extend far beyond the immediate industry. Expert analysts have been closely monitoring the situation and what these changes might mean for consumers and businesses.",
		fmt.Sprintf("The development comes at a time when the %s landscape is experiencing rapid growth and transformation. Industry leaders have been quick to respond, with many expressing both optimism and caution.", c),
		"Our newsroom has been working to verify information from multiple sources and provide readers with accurate reporting. We will continue to monitor the situation and provide updates as new information becomes available.",
	}
	return strings.Join(paragraphs, "\n\n")
}

// jitter places a timestamp somewhere in the 24 hours before now
func jitter(now time.Time) time.Time {
	return now.Add(-time.Duration(rand.Int64N(int64(24 * time.Hour))))
}
