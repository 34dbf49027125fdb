package output

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

var (
	colorResetTree   = "\033[0m"
	colorMagentaTree = "\033[35m"
	colorBoldTree    = "\033[2m"
	colorYellowTree  = "\033[33m"
)

// Tree markers. Every marker is four cells wide.
const (
	markerContinue = " ║  "
	markerBlank    = "    "
	markerTee      = " ╠═ "
	markerElbow    = " ╚═ "
)

// PrintConfig selects what each tree line shows.
type PrintConfig struct {
	ShowPID   bool
	ShowPath  bool
	ShowArgs  bool
	SortByPID bool
}

type treeLine struct {
	prefix string
	node   *model.PidNode
}

// Render formats roots, one line per node in depth-first order.
// The trees are not modified; sorting works on a copy of each child list.
func Render(roots []*model.PidNode, cfg PrintConfig) []string {
	lines := collect(roots, cfg)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, formatLine(l, cfg, false))
	}
	return out
}

// PrintTree writes the rendered trees to w.
func PrintTree(w io.Writer, roots []*model.PidNode, cfg PrintConfig, colorEnabled bool) {
	for _, l := range collect(roots, cfg) {
		fmt.Fprintln(w, formatLine(l, cfg, colorEnabled))
	}
}

// Header is the column header printed above a forest listing.
func Header(cfg PrintConfig) string {
	if cfg.ShowPID {
		return fmt.Sprintf("%-6s  Process Name", "PID")
	}
	return "Process Name"
}

func collect(roots []*model.PidNode, cfg PrintConfig) []treeLine {
	var lines []treeLine
	for _, root := range roots {
		lines = walk(lines, root, nil, false, cfg)
	}
	return lines
}

// walk emits node and then its children. prefix is a list of markers; it
// is copied before being changed so siblings never see each other's edits.
func walk(lines []treeLine, node *model.PidNode, prefix []string, haveSiblings bool, cfg PrintConfig) []treeLine {
	lines = append(lines, treeLine{prefix: strings.Join(prefix, ""), node: node})

	children := node.Children
	if len(children) == 0 {
		return lines
	}
	if cfg.SortByPID {
		children = slices.Clone(children)
		slices.SortStableFunc(children, func(a, b *model.PidNode) int {
			return cmp.Compare(a.PID, b.PID)
		})
	}

	next := slices.Clone(prefix)
	switch {
	case haveSiblings:
		next[len(next)-1] = markerContinue
	case len(next) > 0:
		next[len(next)-1] = markerBlank
	}
	next = append(next, markerTee)

	for i, child := range children {
		last := i == len(children)-1
		if last {
			next = slices.Clone(next)
			next[len(next)-1] = markerElbow
		}
		lines = walk(lines, child, next, !last, cfg)
	}
	return lines
}

// label is the path when paths are shown, else the name. An empty path
// falls back to the name.
func label(n *model.PidNode, cfg PrintConfig) string {
	if cfg.ShowPath && n.Info.Path != "" {
		return n.Info.Path
	}
	return n.Info.Name
}

func formatLine(l treeLine, cfg PrintConfig, colorEnabled bool) string {
	var b strings.Builder
	if colorEnabled && l.prefix != "" {
		b.WriteString(colorMagentaTree + l.prefix + colorResetTree)
	} else {
		b.WriteString(l.prefix)
	}

	if cfg.ShowPID {
		if colorEnabled {
			fmt.Fprintf(&b, "(%s%d%s) ", colorBoldTree, l.node.PID, colorResetTree)
		} else {
			fmt.Fprintf(&b, "(%d) ", l.node.PID)
		}
	}

	name := label(l.node, cfg)
	if colorEnabled && cfg.ShowPath && l.node.Info.AccessDenied {
		name = colorYellowTree + name + colorResetTree
	}
	b.WriteString(name)

	if cfg.ShowArgs && l.node.Info.Arguments != "" {
		b.WriteString(" ")
		b.WriteString(l.node.Info.Arguments)
	}
	return b.String()
}
