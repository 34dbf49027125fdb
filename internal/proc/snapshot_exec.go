package proc

import (
	"encoding/csv"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// execSource lists processes through an external command: wmic on
// Windows, ps everywhere else.
type execSource struct{}

func (execSource) Enumerate() (model.Snapshot, error) {
	if runtime.GOOS == "windows" {
		return listWMIC()
	}
	return listPS()
}

func listPS() (model.Snapshot, error) {
	out, err := Run("ps", "-axo", "pid=,ppid=,comm=")
	if err != nil {
		return nil, fmt.Errorf("ps process list: %w", err)
	}
	return parsePS(string(out)), nil
}

// parsePS parses "pid ppid comm" lines. Malformed lines are skipped.
func parsePS(out string) model.Snapshot {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	snap := make(model.Snapshot, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		pid, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			continue
		}
		ppid, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			continue
		}

		snap = append(snap, model.ProcessRecord{
			PID:  uint32(pid),
			PPID: uint32(ppid),
			Name: strings.Join(fields[2:], " "),
		})
	}
	return snap
}

func listWMIC() (model.Snapshot, error) {
	out, err := Run("wmic", "process", "get", "Name,ParentProcessId,ProcessId", "/format:csv")
	if err != nil {
		return nil, fmt.Errorf("wmic process list: %w", err)
	}
	return parseWMIC(string(out))
}

// parseWMIC parses wmic CSV output. Columns are located by header name.
func parseWMIC(out string) (model.Snapshot, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(strings.ReplaceAll(out, "\r", ""))))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse wmic output: %w", err)
	}

	// wmic prints a blank line before the header
	for len(records) > 0 && len(records[0]) == 1 && records[0][0] == "" {
		records = records[1:]
	}
	if len(records) < 2 {
		return model.Snapshot{}, nil
	}

	headers := records[0]
	nameIdx, ppidIdx, pidIdx := -1, -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case "Name":
			nameIdx = i
		case "ParentProcessId":
			ppidIdx = i
		case "ProcessId":
			pidIdx = i
		}
	}
	if nameIdx == -1 || ppidIdx == -1 || pidIdx == -1 {
		return nil, fmt.Errorf("invalid wmic output headers: %v", headers)
	}

	snap := make(model.Snapshot, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= pidIdx || len(record) <= ppidIdx || len(record) <= nameIdx {
			continue
		}
		pid, err := strconv.ParseUint(strings.TrimSpace(record[pidIdx]), 10, 32)
		if err != nil {
			continue
		}
		ppid, err := strconv.ParseUint(strings.TrimSpace(record[ppidIdx]), 10, 32)
		if err != nil {
			continue
		}
		snap = append(snap, model.ProcessRecord{
			PID:  uint32(pid),
			PPID: uint32(ppid),
			Name: record[nameIdx],
		})
	}
	return snap, nil
}
