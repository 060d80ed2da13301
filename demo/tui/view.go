package tui

import (
	"fmt"
	"strings"

	"newsdesk/types"
)

const (
	maxListRows = 15
	maxLogRows  = 5
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	if !m.Connected {
		b.WriteString(ErrorStyle.Render(TextNotConnected))
		if m.Err != nil {
			b.WriteString("\n" + InfoStyle.Render(m.Err.Error()))
		}
		b.WriteString("\n\n" + InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
		return b.String()
	}

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.Busy || m.State.IsLoading {
		b.WriteString(m.Spinner.View() + StatusStyle.Render(" Loading..."))
		b.WriteString("\n")
	}
	if m.State.Error != "" {
		b.WriteString(WarningStyle.Render("⚠️ " + m.State.Error))
		b.WriteString("\n")
	}
	if m.Status != "" {
		b.WriteString(m.Status)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.Searching:
		b.WriteString(m.Input.View())
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterSearch))
		return b.String()
	case m.Screen == ScreenDetail && m.Detail != nil:
		b.WriteString(BoxStyle.Render(m.renderDetail(*m.Detail)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterDetail))
		return b.String()
	}

	b.WriteString(m.renderList())
	b.WriteString("\n")

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		start := max(0, len(m.Logs)-maxLogRows)
		for _, entry := range m.Logs[start:] {
			line := fmt.Sprintf("   %s %s", entry.Timestamp.Local().Format("15:04:05"), entry.Action)
			if entry.Message != "" {
				line += " " + entry.Message
			}
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render(TextFooterList))
	return b.String()
}

// renderTabs shows every category with the selected one highlighted
func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(types.Categories())+1)
	for _, c := range types.Categories() {
		if c == m.State.SelectedCategory && m.Screen != ScreenBookmarks {
			tabs = append(tabs, HighlightStyle.Render(c.Title()))
		} else {
			tabs = append(tabs, TabStyle.Render(c.Title()))
		}
	}

	bookmarks := fmt.Sprintf("★ Bookmarks (%d)", len(m.State.Bookmarks))
	if m.Screen == ScreenBookmarks {
		tabs = append(tabs, HighlightStyle.Render(bookmarks))
	} else {
		tabs = append(tabs, TabStyle.Render(bookmarks))
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderList() string {
	list := m.articles()
	if len(list) == 0 {
		switch m.Screen {
		case ScreenBookmarks:
			return InfoStyle.Render(TextNoBookmarks) + "\n"
		case ScreenSearch:
			return InfoStyle.Render(TextNoResults) + "\n"
		default:
			return InfoStyle.Render(TextNoArticles) + "\n"
		}
	}

	var b strings.Builder
	if m.Screen == ScreenSearch {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("🔍 Results for %q", m.Query)))
		b.WriteString("\n")
	}

	// Scroll so the cursor stays on screen
	start := 0
	if m.Cursor >= maxListRows {
		start = m.Cursor - maxListRows + 1
	}
	end := min(len(list), start+maxListRows)

	for i := start; i < end; i++ {
		a := list[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.State.IsBookmarked(a.ID) {
			mark = "★"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, a.Title)
		if i == m.Cursor {
			line = HighlightStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString(" ")
		b.WriteString(sentimentStyle(a.Sentiment).Render(string(a.Sentiment)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail formats one article with its key points
func (m Model) renderDetail(a types.Article) string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render(a.Title))
	b.WriteString("\n\n")

	meta := []string{a.Category.Title()}
	if a.Source != "" {
		meta = append(meta, a.Source)
	}
	if a.Author != "" {
		meta = append(meta, "by "+a.Author)
	}
	if !a.PublishedAt.IsZero() {
		meta = append(meta, a.PublishedAt.Local().Format("Jan 2 15:04"))
	}
	b.WriteString(InfoStyle.Render(strings.Join(meta, " · ")))
	b.WriteString(" ")
	b.WriteString(sentimentStyle(a.Sentiment).Render(string(a.Sentiment)))
	if m.State.IsBookmarked(a.ID) {
		b.WriteString(" ★")
	}
	b.WriteString("\n\n")

	if a.Description != "" {
		b.WriteString(a.Description)
		b.WriteString("\n\n")
	}

	if len(a.Summary) > 0 {
		b.WriteString(StatusStyle.Render("Key Points"))
		b.WriteString("\n")
		for _, point := range a.Summary {
			b.WriteString("  • " + point + "\n")
		}
		b.WriteString("\n")
	}

	if a.Content != "" {
		b.WriteString(a.Content)
		b.WriteString("\n")
	}
	if a.URL != "" && a.URL != "#" {
		b.WriteString("\n" + InfoStyle.Render(a.URL))
	}
	return b.String()
}
