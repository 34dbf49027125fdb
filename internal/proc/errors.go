package proc

import (
	"errors"

	"github.com/pranshuparmar/pidtree/internal/logging"
)

var log = logging.L("proc")

var (
	// ErrAccessDenied is matched (errors.Is) by open failures caused by
	// insufficient privilege. Extraction treats it as degraded success.
	ErrAccessDenied = errors.New("access denied")

	// ErrShortRead is returned when fewer bytes than requested were copied
	// out of the target process.
	ErrShortRead = errors.New("short read")

	// ErrInvalidText is returned when a string read from a process is not
	// valid UTF-16.
	ErrInvalidText = errors.New("invalid text encoding")

	// ErrUnsupported is returned by components that have no implementation
	// on the running platform.
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrSnapshot wraps failures to enumerate the process table.
	ErrSnapshot = errors.New("process snapshot failed")
)

// AccessDeniedText is the placeholder stored in Path and Arguments when a
// process cannot be opened for reading.
const AccessDeniedText = "Access is denied."
