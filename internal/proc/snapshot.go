package proc

import (
	"fmt"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// Snapshot source kinds.
const (
	SourceAuto   = "auto"
	SourceNative = "native"
	SourceExec   = "exec"
)

// SnapshotSource enumerates the process table.
type SnapshotSource interface {
	Enumerate() (model.Snapshot, error)
}

// SnapshotFunc adapts a plain function to SnapshotSource.
type SnapshotFunc func() (model.Snapshot, error)

func (f SnapshotFunc) Enumerate() (model.Snapshot, error) {
	return f()
}

// NewSnapshotSource returns the source for kind.
func NewSnapshotSource(kind string) (SnapshotSource, error) {
	switch kind {
	case SourceNative:
		return nativeSource{}, nil
	case SourceExec:
		return execSource{}, nil
	case SourceAuto, "":
		return fallbackSource{primary: nativeSource{}, fallback: execSource{}}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot source %q", kind)
	}
}

// TakeSnapshot enumerates src once. Any failure is a setup failure
// matching ErrSnapshot.
func TakeSnapshot(src SnapshotSource) (model.Snapshot, error) {
	snap, err := src.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	log.Debug("process snapshot taken", "processes", len(snap))
	return snap, nil
}

type fallbackSource struct {
	primary  SnapshotSource
	fallback SnapshotSource
}

func (s fallbackSource) Enumerate() (model.Snapshot, error) {
	snap, err := s.primary.Enumerate()
	if err == nil {
		return snap, nil
	}
	log.Warn("native process enumeration failed, falling back to external command", "error", err)
	snap, ferr := s.fallback.Enumerate()
	if ferr != nil {
		return nil, fmt.Errorf("%w (fallback: %w)", err, ferr)
	}
	return snap, nil
}
