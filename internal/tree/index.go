package tree

import (
	"github.com/pranshuparmar/pidtree/internal/logging"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

var log = logging.L("tree")

// RootName is the name given to pid 0 when the snapshot carries no record for it.
const RootName = "[System Process]"

// Index is a read-only view of a snapshot keyed by pid and by parent pid.
// It is built once per operation and shared by every builder call.
type Index struct {
	records  map[uint32]model.ProcessRecord
	order    []uint32
	children map[uint32][]model.ProcessRecord

	// topLevel holds records whose parent is pid 0 while pid 0 is not live.
	topLevel []model.ProcessRecord
	// orphans holds records whose parent is gone (or is themselves);
	// they hang under pid 0.
	orphans []model.ProcessRecord
}

// NewIndex indexes snap in a single pass. When a pid repeats, the first
// record wins and later ones are dropped.
func NewIndex(snap model.Snapshot) *Index {
	idx := &Index{
		records:  make(map[uint32]model.ProcessRecord, len(snap)),
		order:    make([]uint32, 0, len(snap)),
		children: make(map[uint32][]model.ProcessRecord),
	}

	for _, rec := range snap {
		if _, dup := idx.records[rec.PID]; dup {
			log.Debug("duplicate pid in snapshot", logging.KeyPID, rec.PID, "name", rec.Name)
			continue
		}
		idx.records[rec.PID] = rec
		idx.order = append(idx.order, rec.PID)
	}

	_, zeroLive := idx.records[0]
	for _, pid := range idx.order {
		rec := idx.records[pid]
		if pid == 0 {
			continue
		}
		_, parentLive := idx.records[rec.PPID]
		switch {
		case parentLive && rec.PPID != rec.PID:
			idx.children[rec.PPID] = append(idx.children[rec.PPID], rec)
		case rec.PPID == 0 && !zeroLive:
			idx.topLevel = append(idx.topLevel, rec)
		default:
			idx.orphans = append(idx.orphans, rec)
		}
	}

	log.Debug("snapshot indexed",
		"processes", len(idx.order),
		"top_level", len(idx.topLevel),
		"orphans", len(idx.orphans))
	return idx
}

// Len returns the number of distinct pids.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Lookup returns the record for pid. Pid 0 always resolves, to a
// synthetic record when the snapshot has none.
func (idx *Index) Lookup(pid uint32) (model.ProcessRecord, bool) {
	if rec, ok := idx.records[pid]; ok {
		return rec, true
	}
	if pid == 0 {
		return model.ProcessRecord{PID: 0, PPID: 0, Name: RootName}, true
	}
	return model.ProcessRecord{}, false
}

// Children returns the direct children of pid in snapshot order.
// The children of pid 0 include the orphans.
func (idx *Index) Children(pid uint32) []model.ProcessRecord {
	if pid != 0 {
		return idx.children[pid]
	}
	kids := make([]model.ProcessRecord, 0, len(idx.children[0])+len(idx.orphans))
	kids = append(kids, idx.children[0]...)
	return append(kids, idx.orphans...)
}
