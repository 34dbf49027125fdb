//go:build windows

package proc

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsReader struct{}

// NewMemoryReader returns the Win32 memory reader.
func NewMemoryReader() (MemoryReader, error) {
	return windowsReader{}, nil
}

func (windowsReader) Open(pid uint32) (ProcessHandle, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return nil, fmt.Errorf("OpenProcess(%d): %w", pid, ErrAccessDenied)
		}
		return nil, fmt.Errorf("OpenProcess(%d): %w", pid, err)
	}
	return &windowsHandle{handle: h}, nil
}

type windowsHandle struct {
	handle windows.Handle
}

func (h *windowsHandle) BasicInformation() (BasicInformation, error) {
	var pbi windows.PROCESS_BASIC_INFORMATION
	var returnLength uint32
	err := windows.NtQueryInformationProcess(
		h.handle,
		windows.ProcessBasicInformation,
		unsafe.Pointer(&pbi),
		uint32(unsafe.Sizeof(pbi)),
		&returnLength,
	)
	if err != nil {
		return BasicInformation{}, fmt.Errorf("NtQueryInformationProcess: %w", err)
	}
	return BasicInformation{
		PebBaseAddress: uint64(uintptr(unsafe.Pointer(pbi.PebBaseAddress))),
		ParentPID:      uint32(pbi.InheritedFromUniqueProcessId),
	}, nil
}

func (h *windowsHandle) ReadMemory(addr uint64, size uint32) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, size)
	var bytesRead uintptr
	err := windows.ReadProcessMemory(h.handle, uintptr(addr), &buf[0], uintptr(size), &bytesRead)
	if err != nil {
		return nil, fmt.Errorf("ReadProcessMemory(0x%X, %d): %w", addr, size, err)
	}
	if bytesRead != uintptr(size) {
		return nil, fmt.Errorf("read incomplete at 0x%X: expected %d, got %d: %w", addr, size, bytesRead, ErrShortRead)
	}
	return buf, nil
}

func (h *windowsHandle) Close() error {
	if h.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(h.handle)
	h.handle = 0
	return err
}
