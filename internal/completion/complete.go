package completion

import (
	"cmp"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// shellMetaChars contains characters that are unsafe in shell completion contexts.
// Process names containing these characters are left out of descriptions.
const shellMetaChars = "\t\n$`\\\"';&|<>(){}[]!*?~"

// isShellSafe returns true if the string contains no shell metacharacters
func isShellSafe(s string) bool {
	return !strings.ContainsAny(s, shellMetaChars)
}

// PIDs returns completion candidates for the pids in snap that start with
// toComplete, as "pid<TAB>name" pairs sorted by pid. The calling process
// and its parent are left out.
func PIDs(snap model.Snapshot, toComplete string) []string {
	self := uint32(os.Getpid())
	parent := uint32(os.Getppid())

	seen := make(map[uint32]bool, len(snap))
	recs := make([]model.ProcessRecord, 0, len(snap))
	for _, rec := range snap {
		if seen[rec.PID] || rec.PID == self || rec.PID == parent {
			continue
		}
		seen[rec.PID] = true
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b model.ProcessRecord) int {
		return cmp.Compare(a.PID, b.PID)
	})

	var out []string
	for _, rec := range recs {
		pid := strconv.FormatUint(uint64(rec.PID), 10)
		if !strings.HasPrefix(pid, toComplete) {
			continue
		}
		name := strings.TrimSpace(rec.Name)
		if name != "" && isShellSafe(name) {
			pid += "\t" + name
		}
		out = append(out, pid)
	}
	return out
}
