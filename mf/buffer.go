// SPDX-License-Identifier: EPL-2.0

package mf

import (
	"fmt"
	"sync"
)

// MemoryBuffer is a contiguous byte buffer with a separately tracked current
// length. Its memory is only reachable between Lock and Unlock.
type MemoryBuffer struct {
	data   []byte
	length int
	locked bool

	mtx *sync.Mutex
}

// NewMemoryBuffer allocates a buffer able to hold maxLength bytes. The
// current length starts at zero.
func NewMemoryBuffer(maxLength int) *MemoryBuffer {
	return &MemoryBuffer{
		data: make([]byte, maxLength),
		mtx:  &sync.Mutex{},
	}
}

// Lock returns the whole backing memory and the current length.
func (b *MemoryBuffer) Lock() ([]byte, int, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.locked {
		return nil, 0, ErrBufferLocked
	}
	b.locked = true
	return b.data, b.length, nil
}

func (b *MemoryBuffer) Unlock() error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if !b.locked {
		return ErrBufferUnlocked
	}
	b.locked = false
	return nil
}

func (b *MemoryBuffer) SetCurrentLength(n int) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if n < 0 || n > len(b.data) {
		return fmt.Errorf("%w: %d > %d", ErrBufferLength, n, len(b.data))
	}
	b.length = n
	return nil
}

func (b *MemoryBuffer) CurrentLength() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.length
}

func (b *MemoryBuffer) MaxLength() int {
	return len(b.data)
}

// Release drops the backing memory.
func (b *MemoryBuffer) Release() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.data = nil
	b.length = 0
	b.locked = false
}
