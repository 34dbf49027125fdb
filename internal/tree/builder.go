package tree

import (
	"cmp"
	"slices"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// Subtree builds the tree of pid and all its descendants.
// It reports false when pid is not in the snapshot.
func (idx *Index) Subtree(pid uint32) (*model.PidNode, bool) {
	rec, ok := idx.Lookup(pid)
	if !ok {
		return nil, false
	}
	return idx.buildDown(rec, make(map[uint32]bool)), true
}

// buildDown attaches descendants breadth-first. visited is shared so that a
// pid is attached at most once even if pid reuse produced a parent cycle.
func (idx *Index) buildDown(rec model.ProcessRecord, visited map[uint32]bool) *model.PidNode {
	root := model.NewPidNode(rec)
	visited[rec.PID] = true

	queue := []*model.PidNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range idx.Children(node.PID) {
			if visited[child.PID] {
				continue
			}
			visited[child.PID] = true
			c := model.NewPidNode(child)
			node.Children = append(node.Children, c)
			queue = append(queue, c)
		}
	}
	return root
}

// Ancestry builds the chain from the top-most known ancestor down to pid.
// Each node on the chain has exactly one child; siblings are not included.
// The walk stops at a parent with no record, a self-parented process, or a
// pid already on the chain.
func (idx *Index) Ancestry(pid uint32) (*model.PidNode, bool) {
	rec, ok := idx.Lookup(pid)
	if !ok {
		return nil, false
	}

	head := model.NewPidNode(rec)
	seen := map[uint32]bool{rec.PID: true}
	for {
		if rec.PPID == rec.PID || seen[rec.PPID] {
			break
		}
		parent, ok := idx.records[rec.PPID]
		if !ok {
			break
		}
		up := model.NewPidNode(parent)
		up.Children = []*model.PidNode{head}
		head = up
		seen[parent.PID] = true
		rec = parent
	}
	return head, true
}

// Roots builds the whole forest. Pid 0 is always a root and adopts every
// process whose parent is gone; the other roots are the children of a
// missing pid 0. Roots come back in ascending pid order and every pid of the
// snapshot appears in exactly one tree.
func (idx *Index) Roots() []*model.PidNode {
	zero, _ := idx.Lookup(0)
	rootRecs := make([]model.ProcessRecord, 0, len(idx.topLevel)+1)
	rootRecs = append(rootRecs, zero)
	rootRecs = append(rootRecs, idx.topLevel...)
	slices.SortFunc(rootRecs, func(a, b model.ProcessRecord) int {
		return cmp.Compare(a.PID, b.PID)
	})

	visited := make(map[uint32]bool, len(idx.order)+1)
	roots := make([]*model.PidNode, 0, len(rootRecs))
	for _, rec := range rootRecs {
		if visited[rec.PID] {
			continue
		}
		roots = append(roots, idx.buildDown(rec, visited))
	}

	// Parent cycles are unreachable from any root; hang them under pid 0.
	zeroRoot := roots[0]
	for _, pid := range idx.order {
		if visited[pid] {
			continue
		}
		log.Debug("process unreachable from any root, attaching under pid 0", "pid", pid)
		zeroRoot.Children = append(zeroRoot.Children, idx.buildDown(idx.records[pid], visited))
	}
	return roots
}
