package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pidtree/internal/config"
	"github.com/pranshuparmar/pidtree/internal/output"
	"github.com/pranshuparmar/pidtree/internal/proc"
	"github.com/pranshuparmar/pidtree/internal/tree"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

type view int

const (
	viewSubtree view = iota
	viewAncestry
	viewAll
)

// request is what the user asked to see.
type request struct {
	view view
	pid  uint32
}

func (r request) title() string {
	switch r.view {
	case viewSubtree:
		return fmt.Sprintf("pidtree tree %d", r.pid)
	case viewAncestry:
		return fmt.Sprintf("pidtree ancestry %d", r.pid)
	default:
		return "pidtree all"
	}
}

func printConfig(c *config.Config) output.PrintConfig {
	return output.PrintConfig{
		ShowPID:   c.Display.ShowPID,
		ShowPath:  c.Display.ShowPath,
		ShowArgs:  c.Display.ShowArgs,
		SortByPID: c.Display.Sort,
	}
}

// build takes one snapshot and builds the requested forest from it.
func build(src proc.SnapshotSource, req request) ([]*model.PidNode, error) {
	snap, err := proc.TakeSnapshot(src)
	if err != nil {
		return nil, err
	}
	idx := tree.NewIndex(snap)

	switch req.view {
	case viewSubtree:
		node, ok := idx.Subtree(req.pid)
		if !ok {
			return nil, &notFoundError{pid: req.pid}
		}
		return []*model.PidNode{node}, nil
	case viewAncestry:
		node, ok := idx.Ancestry(req.pid)
		if !ok {
			return nil, &notFoundError{pid: req.pid}
		}
		return []*model.PidNode{node}, nil
	default:
		return idx.Roots(), nil
	}
}

// populator returns a function filling in process details, or nil when no
// extractor is available on this platform.
func populator(workers int) func(ctx context.Context, roots []*model.PidNode) tree.Stats {
	ex, err := newExtractor()
	if err != nil {
		log.Warn("process details unavailable", "error", err)
		return nil
	}
	return func(ctx context.Context, roots []*model.PidNode) tree.Stats {
		return tree.Populate(ctx, roots, ex, tree.PopulateOptions{Workers: workers})
	}
}

func run(cmd *cobra.Command, req request) error {
	src, err := newSnapshotSource(cfg.Source)
	if err != nil {
		return err
	}
	pc := printConfig(cfg)

	if watch {
		return runWatch(cmd.Context(), req, src, pc)
	}

	start := time.Now()
	roots, err := build(src, req)
	if err != nil {
		return err
	}

	var stats tree.Stats
	if pc.ShowPath || pc.ShowArgs || jsonOut {
		if populate := populator(cfg.Workers); populate != nil {
			stats = populate(cmd.Context(), roots)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return output.WriteJSON(out, output.Report{Roots: roots, Stats: &stats})
	}

	colorEnabled := cfg.ColorEnabled(isTerminal(out))
	switch {
	case req.view == viewAncestry && shortOut:
		output.PrintShort(out, roots[0].Spine(), colorEnabled)
	case req.view == viewAll:
		fmt.Fprintln(out, output.Header(pc))
		output.PrintTree(out, roots, pc, colorEnabled)
	default:
		output.PrintTree(out, roots, pc, colorEnabled)
	}

	if summary {
		nodes := 0
		for _, r := range roots {
			nodes += r.Count()
		}
		errOut := cmd.ErrOrStderr()
		output.PrintSummary(errOut, nodes, stats, time.Since(start), cfg.ColorEnabled(isTerminal(errOut)))
	}
	return nil
}
