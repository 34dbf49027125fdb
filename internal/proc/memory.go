package proc

//go:generate mockgen -destination=mock_memory_test.go -package=proc github.com/pranshuparmar/pidtree/internal/proc MemoryReader,ProcessHandle

// BasicInformation is the part of a process's basic information block the
// extractor needs.
type BasicInformation struct {
	// PebBaseAddress is the address of the process environment block.
	PebBaseAddress uint64
	// ParentPID as recorded by the OS when the process was created.
	ParentPID uint32
}

// MemoryReader opens processes for query and read access.
type MemoryReader interface {
	// Open returns a handle with query and read rights. Failures caused by
	// insufficient privilege match ErrAccessDenied.
	Open(pid uint32) (ProcessHandle, error)
}

// ProcessHandle is an open process. It must be closed on every path.
type ProcessHandle interface {
	BasicInformation() (BasicInformation, error)
	// ReadMemory copies exactly size bytes from addr or fails.
	ReadMemory(addr uint64, size uint32) ([]byte, error)
	Close() error
}
