// SPDX-License-Identifier: EPL-2.0

package session

import (
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/stream"
)

// resources are the objects a session acquires, in acquisition order.
// release drops them in reverse order and is safe to call on a partially
// built set.
type resources struct {
	stream     *stream.ReadStream
	byteStream mf.ByteStream
	resolver   mf.SourceResolver
	source     mf.MediaSource
	reader     mf.SourceReader
	buffer     *mf.MemoryBuffer
}

func (r *resources) release() {
	if r.buffer != nil {
		r.buffer.Release()
		r.buffer = nil
	}
	if r.reader != nil {
		r.reader.Release()
		r.reader = nil
	}
	if r.source != nil {
		_ = r.source.Shutdown()
		r.source.Release()
		r.source = nil
	}
	if r.resolver != nil {
		r.resolver.Release()
		r.resolver = nil
	}
	if r.byteStream != nil {
		_ = r.byteStream.Close()
		r.byteStream = nil
	}
	if r.stream != nil {
		r.stream.Release()
		r.stream = nil
	}
}
