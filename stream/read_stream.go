// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/ik5/mfbridge/host"
)

// ReadStream exposes a host FileHandle as a read-only Stream.
//
// The stream keeps its own cursor because the file handle cannot report its
// position. Every successful Read and Seek leaves the cursor equal to the
// file handle's real position. The reference count starts at one for the
// creator; the platform framework takes its own references through AddRef.
type ReadStream struct {
	file   host.FileHandle
	size   uint32
	cursor uint32

	refs     atomic.Int32
	released atomic.Bool
	onFinal  []func()

	name    string
	created time.Time
	logger  *log.Logger
}

// Option configures a ReadStream.
type Option func(*ReadStream)

// WithName sets the name Stat reports.
func WithName(name string) Option {
	return func(s *ReadStream) { s.name = name }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *ReadStream) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnFinalRelease registers fn to run when the reference count drops to zero.
func OnFinalRelease(fn func()) Option {
	return func(s *ReadStream) { s.onFinal = append(s.onFinal, fn) }
}

// NewReadStream wraps file, whose size the host already knows. The file
// cursor is assumed to be at offset zero.
func NewReadStream(file host.FileHandle, size uint32, opts ...Option) *ReadStream {
	s := &ReadStream{
		file:    file,
		size:    size,
		created: time.Now(),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refs.Store(1)
	return s
}

// Size is the file size cached at construction.
func (s *ReadStream) Size() uint32 { return s.size }

// Position is the logical read cursor.
func (s *ReadStream) Position() uint32 { return s.cursor }

// Refs returns the current reference count.
func (s *ReadStream) Refs() int32 { return s.refs.Load() }

func (s *ReadStream) AddRef() int32 {
	return s.refs.Add(1)
}

func (s *ReadStream) Release() int32 {
	for {
		cur := s.refs.Load()
		if cur <= 0 {
			return 0
		}
		if !s.refs.CompareAndSwap(cur, cur-1) {
			continue
		}
		if cur == 1 {
			s.released.Store(true)
			for _, fn := range s.onFinal {
				fn()
			}
		}
		return cur - 1
	}
}

// Read delegates to the file handle. Reaching the end of the file is
// reported as io.EOF together with the bytes that were read; any other
// failure wraps ErrInvalidStream.
func (s *ReadStream) Read(p []byte) (int, error) {
	if s.released.Load() {
		return 0, ErrReleased
	}

	n, err := s.file.Read(p)
	if n > 0 {
		s.cursor += uint32(n)
	}

	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		s.logger.Printf("[mfbridge::stream] reached end-of-file at %d", s.cursor)
		return n, io.EOF
	default:
		return n, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
}

// Write accepts and discards p. The stream is read-only and nothing in the
// bridge writes to it.
func (s *ReadStream) Write(p []byte) (int, error) {
	return 0, nil
}

// Seek moves the cursor. offset must fit in 32 bits and the target must lie
// within [0, Size()]; otherwise the cursor is left untouched.
func (s *ReadStream) Seek(offset int64, whence int) (int64, error) {
	if s.released.Load() {
		return int64(s.cursor), ErrReleased
	}
	if offset > math.MaxUint32 || offset < -math.MaxUint32 {
		return int64(s.cursor), fmt.Errorf("%w: offset %d wider than 32 bits", ErrInvalidFunction, offset)
	}

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(s.cursor) + offset
	case io.SeekEnd:
		target = int64(s.size) + offset
	default:
		return int64(s.cursor), fmt.Errorf("%w: whence %d", ErrInvalidFunction, whence)
	}

	if target < 0 || target > int64(s.size) {
		return int64(s.cursor), fmt.Errorf("%w: target %d outside [0, %d]", ErrInvalidFunction, target, s.size)
	}

	if err := s.file.Seek(uint32(target)); err != nil {
		s.logger.Printf("[mfbridge::stream] seek to %d failed: %v", target, err)
		return int64(s.cursor), fmt.Errorf("%w: %w", ErrInvalidFunction, err)
	}

	s.cursor = uint32(target)
	return target, nil
}

// SetSize accepts any 32-bit size without doing anything.
func (s *ReadStream) SetSize(size uint64) error {
	if size > math.MaxUint32 {
		return ErrMediumFull
	}
	return nil
}

// CopyTo reads up to n bytes from the file and writes them to dst. The
// logical cursor does not move: the file handle is put back where the
// cursor says it is once the read is done.
func (s *ReadStream) CopyTo(dst io.Writer, n uint64) (uint64, uint64, error) {
	if n > math.MaxUint32 {
		return 0, 0, ErrMediumFull
	}
	if _, ok := dst.(*ReadStream); ok {
		return 0, 0, ErrInvalidPointer
	}
	if s.released.Load() {
		return 0, 0, ErrReleased
	}

	buf := make([]byte, n)
	read, err := s.file.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		s.logger.Printf("[mfbridge::stream] copy read failed: %v", err)
		return uint64(read), 0, fmt.Errorf("%w: %w", ErrMediumFull, err)
	}

	written, werr := dst.Write(buf[:read])

	if err := s.file.Seek(s.cursor); err != nil {
		s.logger.Printf("[mfbridge::stream] restoring cursor %d after copy failed: %v", s.cursor, err)
	}

	if werr != nil {
		s.logger.Printf("[mfbridge::stream] copy write failed: %v", werr)
		return uint64(read), uint64(written), fmt.Errorf("%w", werr)
	}
	return uint64(read), uint64(written), nil
}

func (s *ReadStream) Commit(flags uint32) error { return nil }
func (s *ReadStream) Revert() error             { return nil }

func (s *ReadStream) LockRegion(offset, size uint64, lockType LockType) error {
	return ErrInvalidFunction
}

func (s *ReadStream) UnlockRegion(offset, size uint64, lockType LockType) error {
	return ErrInvalidFunction
}

// Clone always fails: the host gives no way to open a second cursor on the
// same file.
func (s *ReadStream) Clone() (Stream, error) {
	return nil, ErrInvalidFunction
}

func (s *ReadStream) Stat(flag StatFlag) (Stat, error) {
	st := Stat{
		Name:       s.name,
		Type:       StorageStream,
		Size:       uint64(s.size),
		ModTime:    s.created,
		CreateTime: s.created,
		AccessTime: s.created,
		Mode:       AccessRead,
	}
	if flag&StatFlagNoName != 0 {
		st.Name = ""
	}
	return st, nil
}

var _ Stream = (*ReadStream)(nil)
