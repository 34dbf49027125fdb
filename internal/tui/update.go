package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.render()
		return m, nil

	case tickMsg:
		if !m.paused && !m.refreshing {
			m.refreshing = true
			return m, tea.Batch(m.loadCmd(), m.tickCmd())
		}
		return m, m.tickCmd()

	case treeMsg:
		m.refreshing = false
		m.lastRefresh = msg.at
		if msg.err != nil {
			log.Debug("refresh failed", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.roots = msg.roots
		m.stats = msg.stats
		m.render()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterMode {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.TogglePID):
		m.cfg.ShowPID = !m.cfg.ShowPID
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.ToggleArgs):
		m.cfg.ShowArgs = !m.cfg.ShowArgs
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.TogglePath):
		m.cfg.ShowPath = !m.cfg.ShowPath
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.cfg.SortByPID = !m.cfg.SortByPID
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filterMode = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Escape):
		m.input.SetValue("")
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleFilterInput handles input in filter mode
func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filterMode = false
		m.input.Blur()
		m.input.SetValue("")
		m.render()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.filterMode = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.render()
	m.viewport.GotoTop()
	return m, cmd
}

// sinceRefresh formats the age of the last refresh for the status bar
func sinceRefresh(last, now time.Time) string {
	if last.IsZero() {
		return "-"
	}
	d := now.Sub(last).Round(time.Second)
	if d < time.Second {
		return "just now"
	}
	return d.String() + " ago"
}
