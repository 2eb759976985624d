package bitstream

import (
	"fmt"
	"os"
)

// OpenReader opens an existing file for bit-level reading.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// OpenByteReader opens an existing file for buffered byte reading.
func OpenByteReader(path string) (*ByteReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := NewByteReader(f)
	r.closer = f
	return r, nil
}

// CreateWriter creates a new file for bit-level writing. It fails with an
// error wrapping os.ErrExist when path already exists.
//
// The returned writer owns the file: Close pads the last byte, flushes and
// closes it.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}
