package tui

// UI Text Constants
const (
	TextTitle = "📰 Newsdesk"

	TextNotConnected = "❌ Not connected to newsdesk server"
	TextNoArticles   = "No articles yet"
	TextNoBookmarks  = "No bookmarks yet. Press 'b' on an article to save it."
	TextNoResults    = "No results"

	// Footer
	TextFooterList   = "←/→ category | ↑/↓ move | enter open | b bookmark | tab bookmarks | / search | r refresh | q quit"
	TextFooterDetail = "b bookmark | esc back | q quit"
	TextFooterSearch = "enter search | esc cancel"
)
