package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/pidtree/internal/logging"
	"github.com/pranshuparmar/pidtree/internal/output"
	"github.com/pranshuparmar/pidtree/internal/tree"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

var log = logging.L("tui")

// Loader takes a fresh snapshot and returns the forest to display.
type Loader func(ctx context.Context) ([]*model.PidNode, tree.Stats, error)

// Options configures the watch view.
type Options struct {
	Title   string
	Print   output.PrintConfig
	Refresh time.Duration
	Load    Loader
}

// Model is the bubbletea model of the watch view.
type Model struct {
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	input    textinput.Model

	ctx     context.Context
	title   string
	cfg     output.PrintConfig
	refresh time.Duration
	load    Loader

	roots       []*model.PidNode
	stats       tree.Stats
	lines       []string
	visible     int
	err         error
	lastRefresh time.Time
	refreshing  bool
	paused      bool
	filterMode  bool
	ready       bool
	width       int
	height      int
}

// New builds the initial model.
func New(ctx context.Context, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 156
	ti.Width = 30
	ti.Prompt = "/"
	ti.PromptStyle = filterPromptStyle
	ti.Blur()

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = 2 * time.Second
	}

	return Model{
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		input:    ti,
		ctx:      ctx,
		title:    opts.Title,
		cfg:      opts.Print,
		refresh:  refresh,
		load:     opts.Load,
	}
}

// Run starts the watch view and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m Model) loadCmd() tea.Cmd {
	load, ctx := m.load, m.ctx
	return func() tea.Msg {
		roots, stats, err := load(ctx)
		return treeMsg{roots: roots, stats: stats, err: err, at: time.Now()}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// render re-renders the current forest into the viewport, honoring the filter.
func (m *Model) render() {
	m.lines = output.Render(m.roots, m.cfg)

	filter := strings.ToLower(strings.TrimSpace(m.input.Value()))
	shown := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		if filter != "" && !strings.Contains(strings.ToLower(line), filter) {
			continue
		}
		shown = append(shown, styleLine(line))
	}
	m.visible = len(shown)
	m.viewport.SetContent(strings.Join(shown, "\n"))
}

// layout sizes the viewport to the space left by the title, border, status and help rows.
func (m *Model) layout() {
	m.viewport.Width = max(m.width-2, 0)
	m.viewport.Height = max(m.height-5, 1)
	m.help.Width = m.width
}
