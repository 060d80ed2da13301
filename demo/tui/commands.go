package tui

import (
	"context"
	"time"

	"newsdesk/demo/client"
	"newsdesk/types"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// pollState creates a command to fetch the reader state
func pollState(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		state, err := c.GetState(ctx)
		return StateUpdateMsg{State: state, Err: err}
	}
}

// runAction wraps a client call into a command reporting ActionDoneMsg
func runAction(action string, call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return ActionDoneMsg{Action: action, Err: call(ctx)}
	}
}

func selectCategory(c *client.Client, category types.Category) tea.Cmd {
	return runAction("Switched to "+category.Title(), func(ctx context.Context) error {
		return c.SelectCategory(ctx, category)
	})
}

func refresh(c *client.Client) tea.Cmd {
	return runAction("Refreshed", c.Refresh)
}

func toggleBookmark(c *client.Client, id string, bookmarked bool) tea.Cmd {
	if bookmarked {
		return runAction("Bookmark removed", func(ctx context.Context) error {
			return c.RemoveBookmark(ctx, id)
		})
	}
	return runAction("Bookmarked", func(ctx context.Context) error {
		return c.AddBookmark(ctx, id)
	})
}

func search(c *client.Client, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		results, err := c.Search(ctx, query)
		return SearchResultsMsg{Query: query, Results: results, Err: err}
	}
}

// tickCmd creates a command that ticks every second for polling
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
