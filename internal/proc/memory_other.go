//go:build !windows

package proc

// NewMemoryReader reports ErrUnsupported: process environment blocks only
// exist on Windows. Other platforms extract through gopsutil instead.
func NewMemoryReader() (MemoryReader, error) {
	return nil, ErrUnsupported
}
