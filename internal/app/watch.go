package app

import (
	"context"
	"time"

	"github.com/pranshuparmar/pidtree/internal/output"
	"github.com/pranshuparmar/pidtree/internal/proc"
	"github.com/pranshuparmar/pidtree/internal/tree"
	"github.com/pranshuparmar/pidtree/internal/tui"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

// watchLoader rebuilds the requested view from a fresh snapshot on every call.
// Details are always read so that path and args can be toggled live.
func watchLoader(req request, src proc.SnapshotSource, workers int) tui.Loader {
	populate := populator(workers)
	return func(ctx context.Context) ([]*model.PidNode, tree.Stats, error) {
		roots, err := build(src, req)
		if err != nil {
			return nil, tree.Stats{}, err
		}
		var stats tree.Stats
		if populate != nil {
			stats = populate(ctx, roots)
		}
		return roots, stats, nil
	}
}

func runWatch(ctx context.Context, req request, src proc.SnapshotSource, pc output.PrintConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, tui.Options{
		Title:   req.title(),
		Print:   pc,
		Refresh: time.Duration(cfg.RefreshSeconds) * time.Second,
		Load:    watchLoader(req, src, cfg.Workers),
	})
}
