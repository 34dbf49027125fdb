//go:build !windows

package proc

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// NewExtractor returns the gopsutil-backed extractor for this platform.
func NewExtractor() (InfoExtractor, error) {
	return gopsutilExtractor{}, nil
}

type gopsutilExtractor struct{}

// Extract reads the executable path and command line of pid. Permission
// errors degrade the affected field to AccessDeniedText.
func (gopsutilExtractor) Extract(pid uint32) (model.ProcessInfo, error) {
	var info model.ProcessInfo
	if pid == 0 {
		return info, nil
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return info, fmt.Errorf("open process %d: %w", pid, err)
	}

	exe, err := p.Exe()
	switch {
	case err == nil:
		info.Path = exe
	case isPermission(err):
		info.Path = AccessDeniedText
		info.AccessDenied = true
	case errors.Is(err, fs.ErrNotExist):
		// kernel threads have no executable
	default:
		return info, fmt.Errorf("process %d executable: %w", pid, err)
	}

	cmdline, err := p.Cmdline()
	switch {
	case err == nil:
		info.Arguments = cmdline
	case isPermission(err):
		info.Arguments = AccessDeniedText
		info.AccessDenied = true
	default:
		return info, fmt.Errorf("process %d command line: %w", pid, err)
	}
	return info, nil
}

func isPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, ErrAccessDenied)
}
