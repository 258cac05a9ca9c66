// SPDX-License-Identifier: EPL-2.0

package mf

import (
	"fmt"
	"sync"

	"github.com/ik5/mfbridge/stream"
)

// streamByteStream is a ByteStream over a stream.Stream. It holds one
// reference on the stream from creation until Close.
type streamByteStream struct {
	s     stream.Stream
	attrs *Attributes

	closeOnce sync.Once
}

// NewByteStreamOnStream wraps s. The wrapper takes its own reference on s
// and drops it on Close.
func NewByteStreamOnStream(s stream.Stream) ByteStream {
	s.AddRef()

	return &streamByteStream{
		s:     s,
		attrs: NewAttributes(),
	}
}

func (b *streamByteStream) Read(p []byte) (int, error) {
	return b.s.Read(p)
}

func (b *streamByteStream) Seek(offset int64, whence int) (int64, error) {
	return b.s.Seek(offset, whence)
}

func (b *streamByteStream) Length() (uint64, error) {
	st, err := b.s.Stat(stream.StatFlagNoName)
	if err != nil {
		return 0, fmt.Errorf("stat: %w", err)
	}
	return st.Size, nil
}

func (b *streamByteStream) Attributes() *Attributes {
	return b.attrs
}

func (b *streamByteStream) Close() error {
	b.closeOnce.Do(func() {
		b.s.Release()
	})
	return nil
}
