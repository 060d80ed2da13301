package tui

import (
	"time"

	"newsdesk/demo/client"
	"newsdesk/types"
)

// Messages for the tea program (polling-based)

// StateUpdateMsg is sent when we receive the reader state from the server
type StateUpdateMsg struct {
	State *client.StateResponse
	Err   error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// ActionDoneMsg is sent when a category switch, refresh or bookmark change returns
type ActionDoneMsg struct {
	Action string
	Err    error
}

// SearchResultsMsg carries the results of a search
type SearchResultsMsg struct {
	Query   string
	Results []types.Article
	Err     error
}
