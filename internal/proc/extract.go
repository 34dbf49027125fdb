package proc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
	"unsafe"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

// InfoExtractor fills in the ProcessInfo of a single process.
type InfoExtractor interface {
	Extract(pid uint32) (model.ProcessInfo, error)
}

// ExtractorFunc adapts a plain function to InfoExtractor.
type ExtractorFunc func(pid uint32) (model.ProcessInfo, error)

func (f ExtractorFunc) Extract(pid uint32) (model.ProcessInfo, error) {
	return f(pid)
}

// DeniedInfo is the degraded result for a process that cannot be opened.
func DeniedInfo() model.ProcessInfo {
	return model.ProcessInfo{
		Path:         AccessDeniedText,
		Arguments:    AccessDeniedText,
		AccessDenied: true,
	}
}

// PEBLayout describes where the process parameters and the two strings we
// want live, for one pointer width.
type PEBLayout struct {
	PointerSize uint32
	// ParametersOffset is the offset of the ProcessParameters pointer in the PEB.
	ParametersOffset uint64
	// ImagePathOffset and CommandLineOffset are offsets of the UNICODE_STRING
	// descriptors within RTL_USER_PROCESS_PARAMETERS.
	ImagePathOffset   uint32
	CommandLineOffset uint32
}

var (
	// Layout64 is the x64 layout.
	Layout64 = PEBLayout{PointerSize: 8, ParametersOffset: 0x20, ImagePathOffset: 0x60, CommandLineOffset: 0x70}
	// Layout32 is the x86 layout.
	Layout32 = PEBLayout{PointerSize: 4, ParametersOffset: 0x10, ImagePathOffset: 0x38, CommandLineOffset: 0x40}
)

// NativeLayout returns the layout matching this binary's pointer width.
func NativeLayout() PEBLayout {
	if unsafe.Sizeof(uintptr(0)) == 4 {
		return Layout32
	}
	return Layout64
}

// descriptorSize is the size of a UNICODE_STRING: two uint16 lengths,
// padded to pointer alignment, followed by the buffer pointer.
func (l PEBLayout) descriptorSize() uint32 {
	return 2 * l.PointerSize
}

// ParametersSize is how much of RTL_USER_PROCESS_PARAMETERS is read.
func (l PEBLayout) ParametersSize() uint32 {
	end := l.CommandLineOffset
	if l.ImagePathOffset > end {
		end = l.ImagePathOffset
	}
	return end + l.descriptorSize()
}

func (l PEBLayout) pointer(b []byte) uint64 {
	if l.PointerSize == 4 {
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

type unicodeString struct {
	Length uint16
	Buffer uint64
}

func (l PEBLayout) unicodeString(params []byte, off uint32) unicodeString {
	b := params[off : off+l.descriptorSize()]
	return unicodeString{
		Length: binary.LittleEndian.Uint16(b[0:2]),
		Buffer: l.pointer(b[l.PointerSize:]),
	}
}

// PEBExtractor reads image path and command line out of a process's
// environment block through a MemoryReader.
type PEBExtractor struct {
	Reader MemoryReader
	Layout PEBLayout
}

// Extract opens pid, walks PEB -> ProcessParameters -> strings and closes
// the handle before returning. Access denied yields DeniedInfo and no error.
func (e *PEBExtractor) Extract(pid uint32) (model.ProcessInfo, error) {
	var info model.ProcessInfo
	if pid == 0 {
		return info, nil
	}

	h, err := e.Reader.Open(pid)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			log.Debug("process not readable", "pid", pid, "error", err)
			return DeniedInfo(), nil
		}
		return info, fmt.Errorf("open process %d: %w", pid, err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			log.Debug("close process handle", "pid", pid, "error", cerr)
		}
	}()

	bi, err := h.BasicInformation()
	if err != nil {
		return info, fmt.Errorf("process %d basic information: %w", pid, err)
	}
	if bi.PebBaseAddress == 0 {
		return info, fmt.Errorf("process %d: PEB base address is 0", pid)
	}

	raw, err := h.ReadMemory(bi.PebBaseAddress+e.Layout.ParametersOffset, e.Layout.PointerSize)
	if err != nil {
		return info, fmt.Errorf("process %d: read ProcessParameters address: %w", pid, err)
	}
	paramsAddr := e.Layout.pointer(raw)
	if paramsAddr == 0 {
		return info, fmt.Errorf("process %d: ProcessParameters is null", pid)
	}

	params, err := h.ReadMemory(paramsAddr, e.Layout.ParametersSize())
	if err != nil {
		return info, fmt.Errorf("process %d: read ProcessParameters: %w", pid, err)
	}

	info.Arguments, err = readUnicodeString(h, e.Layout.unicodeString(params, e.Layout.CommandLineOffset))
	if err != nil {
		return model.ProcessInfo{}, fmt.Errorf("process %d: command line: %w", pid, err)
	}
	info.Path, err = readUnicodeString(h, e.Layout.unicodeString(params, e.Layout.ImagePathOffset))
	if err != nil {
		return model.ProcessInfo{}, fmt.Errorf("process %d: image path: %w", pid, err)
	}
	return info, nil
}

func readUnicodeString(h ProcessHandle, us unicodeString) (string, error) {
	if us.Length == 0 {
		return "", nil
	}
	if us.Length%2 != 0 {
		return "", fmt.Errorf("odd UTF-16 length %d: %w", us.Length, ErrInvalidText)
	}
	if us.Buffer == 0 {
		return "", fmt.Errorf("null buffer for %d bytes: %w", us.Length, ErrInvalidText)
	}
	raw, err := h.ReadMemory(us.Buffer, uint32(us.Length))
	if err != nil {
		return "", err
	}
	if len(raw) != int(us.Length) {
		return "", fmt.Errorf("expected %d bytes, got %d: %w", us.Length, len(raw), ErrShortRead)
	}
	return DecodeUTF16(raw)
}

// DecodeUTF16 decodes little-endian UTF-16 up to the first NUL.
// Unpaired surrogates are rejected with ErrInvalidText.
func DecodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("odd byte count %d: %w", len(b), ErrInvalidText)
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", fmt.Errorf("unpaired high surrogate at %d: %w", i, ErrInvalidText)
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", fmt.Errorf("unpaired low surrogate at %d: %w", i, ErrInvalidText)
		}
	}
	return string(utf16.Decode(units)), nil
}
