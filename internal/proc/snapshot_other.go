//go:build !windows

package proc

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// nativeSource lists processes through gopsutil.
type nativeSource struct{}

func (nativeSource) Enumerate() (model.Snapshot, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	snap := make(model.Snapshot, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		// A process that exits mid-enumeration is simply not part of the snapshot.
		ppid, err := p.Ppid()
		if err != nil {
			skipped++
			continue
		}
		name, err := p.Name()
		if err != nil {
			skipped++
			continue
		}
		snap = append(snap, model.ProcessRecord{
			PID:  uint32(p.Pid),
			PPID: uint32(ppid),
			Name: name,
		})
	}

	if skipped > 0 {
		log.Debug("process snapshot skipped processes", "skipped", skipped, "total", len(procs))
	}
	return snap, nil
}
