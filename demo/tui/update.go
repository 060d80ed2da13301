package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.handleSearchInput(msg)
		}
		return m.handleKeyPress(msg)
	case StateUpdateMsg:
		return m.handleStateUpdate(msg)
	case TickMsg:
		return m, tea.Batch(pollState(m.Client), tickCmd())
	case ActionDoneMsg:
		return m.handleActionDone(msg)
	case SearchResultsMsg:
		return m.handleSearchResults(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input outside the search box
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		return m.back(), nil
	case "up", "k":
		if m.Screen != ScreenDetail {
			m.Cursor--
			m = m.clampCursor()
		}
	case "down", "j":
		if m.Screen != ScreenDetail {
			m.Cursor++
			m = m.clampCursor()
		}
	case "left", "h", "right", "l":
		if m.Busy {
			return m, nil
		}
		delta := 1
		if key := msg.String(); key == "left" || key == "h" {
			delta = -1
		}
		next := shiftCategory(m.State.SelectedCategory, delta)
		m.State.SelectedCategory = next
		m.Screen, m.Cursor, m.Busy = ScreenFeed, 0, true
		return m, selectCategory(m.Client, next)
	case "r":
		if m.Busy {
			return m, nil
		}
		m.Busy = true
		return m, refresh(m.Client)
	case "tab":
		if m.Screen == ScreenBookmarks {
			m.Screen = ScreenFeed
		} else {
			m.Screen = ScreenBookmarks
		}
		m.Cursor = 0
	case "/":
		m.Searching = true
		m.Input.SetValue("")
		return m, m.Input.Focus()
	case "enter":
		if a, ok := m.selected(); ok && m.Screen != ScreenDetail {
			m.Detail = &a
			m.Previous = m.Screen
			m.Screen = ScreenDetail
		}
	case "b":
		return m.toggleBookmark()
	}
	return m, nil
}

// handleSearchInput feeds keys to the search box until enter or esc
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.Searching = false
		m.Input.Blur()
		return m, nil
	case "enter":
		m.Searching = false
		m.Input.Blur()
		m.Query = strings.TrimSpace(m.Input.Value())
		m.Busy = true
		return m, search(m.Client, m.Query)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) toggleBookmark() (tea.Model, tea.Cmd) {
	var id string
	if m.Screen == ScreenDetail && m.Detail != nil {
		id = m.Detail.ID
	} else if a, ok := m.selected(); ok {
		id = a.ID
	}
	if id == "" {
		return m, nil
	}
	return m, toggleBookmark(m.Client, id, m.State.IsBookmarked(id))
}

// back leaves the detail or search view
func (m Model) back() Model {
	switch m.Screen {
	case ScreenDetail:
		m.Screen = m.Previous
		m.Detail = nil
	case ScreenSearch, ScreenBookmarks:
		m.Screen = ScreenFeed
		m.Cursor = 0
	}
	return m.clampCursor()
}

// handleStateUpdate processes a polled state
func (m Model) handleStateUpdate(msg StateUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	if msg.State == nil {
		return m, nil
	}

	m.Connected = true
	m.Err = nil
	m.Logs = msg.State.Logs
	if m.Busy && msg.State.State.SelectedCategory != m.State.SelectedCategory {
		// Keep the optimistic category until the switch completes
		msg.State.State.SelectedCategory = m.State.SelectedCategory
	}
	m.State = msg.State.State
	return m.clampCursor(), nil
}

// handleActionDone processes the end of a category switch, refresh or bookmark change
func (m Model) handleActionDone(msg ActionDoneMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.Err != nil {
		m.Status = ErrorStyle.Render(fmt.Sprintf("❌ %s failed: %v", strings.ToLower(msg.Action), msg.Err))
	} else {
		m.Status = StatusStyle.Render("✅ " + msg.Action)
	}
	return m, pollState(m.Client)
}

// handleSearchResults shows the results list
func (m Model) handleSearchResults(msg SearchResultsMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.Err != nil {
		m.Status = ErrorStyle.Render(fmt.Sprintf("❌ Search failed: %v", msg.Err))
		return m, nil
	}
	m.SearchResults = msg.Results
	m.Screen = ScreenSearch
	m.Cursor = 0
	m.Status = StatusStyle.Render(fmt.Sprintf("🔍 %d results for %q", len(msg.Results), msg.Query))
	return m, nil
}
