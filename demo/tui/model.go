package tui

import (
	"newsdesk/demo/client"
	"newsdesk/store"
	"newsdesk/types"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is the list or page currently shown
type Screen string

const (
	ScreenFeed      Screen = "feed"
	ScreenBookmarks Screen = "bookmarks"
	ScreenSearch    Screen = "search"
	ScreenDetail    Screen = "detail"
)

// Model represents the TUI client state (thin client)
type Model struct {
	Client *client.Client

	// Synced from the server
	State     store.State
	Logs      []store.LogEntry
	Connected bool
	Err       error

	Screen   Screen
	Previous Screen
	Cursor   int
	Detail   *types.Article
	Status   string

	Query         string
	SearchResults []types.Article
	Searching     bool
	Input         textinput.Model

	Busy    bool
	Spinner spinner.Model
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	input := textinput.New()
	input.Placeholder = "search headlines"
	input.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	return Model{
		Client:  client.NewClient(serverURL),
		State:   store.NewState(),
		Screen:  ScreenFeed,
		Input:   input,
		Spinner: sp,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		pollState(m.Client),
		tickCmd(),
		m.Spinner.Tick,
	)
}

// articles returns the list shown by the current view
func (m Model) articles() []types.Article {
	switch m.Screen {
	case ScreenBookmarks:
		return m.State.Bookmarks
	case ScreenSearch:
		return m.SearchResults
	default:
		return m.State.Articles
	}
}

// selected returns the article under the cursor
func (m Model) selected() (types.Article, bool) {
	list := m.articles()
	if m.Cursor < 0 || m.Cursor >= len(list) {
		return types.Article{}, false
	}
	return list[m.Cursor], true
}

func (m Model) clampCursor() Model {
	n := len(m.articles())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}

// shiftCategory returns the category delta steps away from the selected one, wrapping around
func shiftCategory(current types.Category, delta int) types.Category {
	all := types.Categories()
	idx := 0
	for i, c := range all {
		if c == current {
			idx = i
			break
		}
	}
	n := len(all)
	return all[((idx+delta)%n+n)%n]
}
