package rssfeeds

import "newsdesk/types"

// FeedConfig represents the configuration for a single RSS feed
type FeedConfig struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	URL  string `json:"url" yaml:"url" toml:"url"`
}

// Presets maps each category to the feeds read for it
type Presets map[types.Category][]FeedConfig

// For returns the feeds of category, falling back to the general feeds
func (p Presets) For(category types.Category) []FeedConfig {
	if feeds := p[category]; len(feeds) > 0 {
		return feeds
	}
	return p[types.CategoryGeneral]
}

// DefaultPresets are the built-in feeds per category
var DefaultPresets = Presets{
	types.CategoryGeneral: {
		{Name: "Channel News Asia", URL: "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml"},
		{Name: "Straits Times", URL: "https://www.straitstimes.com/news/singapore/rss.xml"},
	},
	types.CategoryTechnology: {
		{Name: "Hacker News", URL: "https://hnrss.org/newest"},
		{Name: "Technology Review", URL: "https://www.technologyreview.com/feed/"},
	},
	types.CategoryWorld: {
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		{Name: "Straits Times World", URL: "https://www.straitstimes.com/news/world/rss.xml"},
	},
	types.CategoryBusiness: {
		{Name: "BBC Business", URL: "https://feeds.bbci.co.uk/news/business/rss.xml"},
		{Name: "Straits Times Business", URL: "https://www.straitstimes.com/news/business/rss.xml"},
	},
	types.CategoryHealth: {
		{Name: "BBC Health", URL: "https://feeds.bbci.co.uk/news/health/rss.xml"},
	},
	types.CategorySports: {
		{Name: "BBC Sport", URL: "https://feeds.bbci.co.uk/sport/rss.xml"},
		{Name: "Straits Times Sport", URL: "https://www.straitstimes.com/news/sport/rss.xml"},
	},
	types.CategoryEntertainment: {
		{Name: "BBC Entertainment", URL: "https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml"},
	},
	types.CategoryScience: {
		{Name: "BBC Science", URL: "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
		{Name: "Technology Review", URL: "https://www.technologyreview.com/feed/"},
	},
}
