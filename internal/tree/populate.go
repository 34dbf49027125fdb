package tree

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pranshuparmar/pidtree/internal/logging"
	"github.com/pranshuparmar/pidtree/internal/proc"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

// DefaultWorkers bounds concurrent extractions when none is configured.
const DefaultWorkers = 8

// PopulateOptions tunes Populate.
type PopulateOptions struct {
	Workers int
}

// Stats summarises one Populate call.
type Stats struct {
	Total  int `json:"total"`
	Denied int `json:"denied"`
	Failed int `json:"failed"`
}

// Populate fills in the ProcessInfo of every node of roots that has not
// been populated yet. Extractions run concurrently, at most opts.Workers at
// a time. A failed extraction is recorded on its node and never stops the
// others. Once ctx is done no further extractions are started.
func Populate(ctx context.Context, roots []*model.PidNode, ex proc.InfoExtractor, opts PopulateOptions) Stats {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var pending []*model.PidNode
	for _, root := range roots {
		root.Walk(func(n *model.PidNode, _ int) bool {
			if !n.Populated() {
				pending = append(pending, n)
			}
			return true
		})
	}

	start := time.Now()
	var (
		mu    sync.Mutex
		stats Stats
		wg    sync.WaitGroup
	)
	semaphore := make(chan struct{}, workers)

schedule:
	for _, node := range pending {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break schedule
		case semaphore <- struct{}{}: // Acquire
		}
		if !node.MarkPopulated() {
			<-semaphore
			continue
		}

		wg.Add(1)
		go func(node *model.PidNode) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			denied, err := populateNode(node, ex)

			mu.Lock()
			defer mu.Unlock()
			stats.Total++
			switch {
			case err != nil:
				stats.Failed++
			case denied:
				stats.Denied++
			}
		}(node)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		log.Debug("population cancelled", logging.KeyError, err, "extracted", stats.Total, "pending", len(pending))
	}
	log.Debug("population finished",
		"total", stats.Total,
		"denied", stats.Denied,
		"failed", stats.Failed,
		logging.KeyDuration, time.Since(start))
	return stats
}

// populateNode extracts one node. Only the calling goroutine touches node.
func populateNode(node *model.PidNode, ex proc.InfoExtractor) (denied bool, err error) {
	info, err := ex.Extract(node.PID)
	if err != nil {
		node.Error = err.Error()
		msg := "extraction failed"
		if errors.Is(err, proc.ErrShortRead) {
			msg = "process memory unreadable"
		}
		log.Debug(msg, logging.KeyPID, node.PID, logging.KeyError, err)
		return false, err
	}

	if info.Name != "" {
		node.Info.Name = info.Name
	}
	node.Info.Path = info.Path
	node.Info.Arguments = info.Arguments
	node.Info.AccessDenied = info.AccessDenied
	return info.AccessDenied, nil
}
