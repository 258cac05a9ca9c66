// SPDX-License-Identifier: EPL-2.0

package mf

import "fmt"

// memorySample is a Sample backed by a byte slice it owns.
type memorySample struct {
	data     []byte
	released bool
}

// NewMemorySample returns a Sample holding data. The sample takes
// ownership of data; Release drops it.
func NewMemorySample(data []byte) Sample {
	return &memorySample{data: data}
}

func (s *memorySample) TotalLength() int {
	return len(s.data)
}

func (s *memorySample) CopyToBuffer(buf *MemoryBuffer) error {
	if s.released {
		return ErrReleased
	}

	mem, _, err := buf.Lock()
	if err != nil {
		return err
	}
	if len(mem) < len(s.data) {
		_ = buf.Unlock()
		return fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, len(s.data), len(mem))
	}
	copy(mem, s.data)
	if err := buf.Unlock(); err != nil {
		return err
	}

	return buf.SetCurrentLength(len(s.data))
}

func (s *memorySample) Release() {
	s.data = nil
	s.released = true
}
