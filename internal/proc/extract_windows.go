//go:build windows

package proc

// NewExtractor returns the PEB-walking extractor for this platform.
func NewExtractor() (InfoExtractor, error) {
	reader, err := NewMemoryReader()
	if err != nil {
		return nil, err
	}
	return &PEBExtractor{Reader: reader, Layout: NativeLayout()}, nil
}
