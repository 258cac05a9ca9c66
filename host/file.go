// SPDX-License-Identifier: EPL-2.0

package host

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// MemoryFile is a FileHandle over an in-memory byte slice.
type MemoryFile struct {
	data []byte
	pos  uint32
}

// NewMemoryFile wraps data. data must not exceed 4 GiB.
func NewMemoryFile(data []byte) *MemoryFile {
	return &MemoryFile{data: data}
}

func (m *MemoryFile) Size() uint32     { return uint32(len(m.data)) }
func (m *MemoryFile) Position() uint32 { return m.pos }

func (m *MemoryFile) Read(p []byte) (int, error) {
	if int(m.pos) >= len(m.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}

	n := copy(p, m.data[m.pos:])
	m.pos += uint32(n)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemoryFile) Seek(offset uint32) error {
	if int(offset) > len(m.data) {
		return ErrSeekOutOfRange
	}
	m.pos = offset
	return nil
}

// File is a FileHandle over an operating system file.
type File struct {
	f    *os.File
	size uint32
}

// OpenFile opens path for reading.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w", err)
	}
	if info.Size() > math.MaxUint32 {
		f.Close()
		return nil, ErrFileTooLarge
	}

	return &File{f: f, size: uint32(info.Size())}, nil
}

func (f *File) Size() uint32 { return f.size }
func (f *File) Close() error { return f.f.Close() }

func (f *File) Read(p []byte) (int, error) {
	n, err := io.ReadFull(f.f, p)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

func (f *File) Seek(offset uint32) error {
	if offset > f.size {
		return ErrSeekOutOfRange
	}
	if _, err := f.f.Seek(int64(offset), io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
