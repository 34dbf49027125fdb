package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pranshuparmar/pidtree/internal/proc"
)

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render(m.title)
	body := panelStyle.Render(m.viewport.View())
	if m.err != nil {
		body = panelStyle.Render(errorStyle.Render("refresh failed: " + m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.renderStatusBar(), m.help.View(m.keys))
}

// renderStatusBar renders the bottom status line
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.filterMode:
		status = m.input.View()
	case m.paused:
		status = pausedStyle.Render("⏸ PAUSED")
	case m.refreshing:
		status = refreshingStyle.Render("↻ refreshing...")
	default:
		status = statusDescStyle.Render("updated " + sinceRefresh(m.lastRefresh, time.Now()))
	}

	counts := fmt.Sprintf("%d/%d processes", m.visible, len(m.lines))
	if m.stats.Denied > 0 {
		counts += deniedStyle.Render(fmt.Sprintf("  %d access denied", m.stats.Denied))
	}
	if f := m.input.Value(); f != "" && !m.filterMode {
		counts += statusDescStyle.Render("  filter: " + f)
	}

	left := statusDescStyle.Render(counts)
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + status)
}

// styleLine colors the tree markers of a rendered line and any
// access-denied placeholder.
func styleLine(line string) string {
	body := strings.TrimLeft(line, " ║╠╚═")
	prefix := line[:len(line)-len(body)]
	if strings.Contains(body, proc.AccessDeniedText) {
		body = strings.ReplaceAll(body, proc.AccessDeniedText, deniedStyle.Render(proc.AccessDeniedText))
	}
	if prefix == "" {
		return body
	}
	return markerStyle.Render(prefix) + body
}
