// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"io"

	"github.com/ik5/mfbridge/host"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/timeconv"
)

// Read copies up to samples PCM frames into dst and returns how many it
// copied. dst bounds the request as well. Fewer frames than requested
// means the stream ended, which is reported as io.EOF alongside the count.
func (s *Session) Read(dst []byte, samples uint32) (uint32, error) {
	f, err := s.format()
	if err != nil {
		return 0, err
	}
	frameSize := f.frameSize()
	if frameSize == 0 {
		return 0, fmt.Errorf("%w: media type has no frame size", ErrPlugin)
	}

	want := min(int(samples)*frameSize, len(dst)/frameSize*frameSize)
	written := 0

	for written < want {
		if s.res.buffer == nil {
			eos, err := s.fetch()
			if err != nil {
				return uint32(written / frameSize), err
			}
			if eos {
				s.logf("read", "end of stream after %d bytes", written)
				return uint32(written / frameSize), io.EOF
			}
			if s.res.buffer == nil {
				continue
			}
		}

		mem, length, err := s.res.buffer.Lock()
		if err != nil {
			return uint32(written / frameSize), fmt.Errorf("%w: lock buffer: %w", ErrPlugin, err)
		}
		n := min(want-written, length-s.currentBufferPos)
		copy(dst[written:written+n], mem[s.currentBufferPos:s.currentBufferPos+n])
		if err := s.res.buffer.Unlock(); err != nil {
			s.logf("read", "unlock buffer: %v", err)
		}

		s.currentBufferPos += n
		written += n
		if ticks, err := timeconv.ToTicks(uint32(n), host.TimeUnitPCMBytes, f.conv()); err == nil {
			s.lastReadTimestamp += ticks
		}

		if s.currentBufferPos >= length {
			s.dropBuffer()
		}
	}

	return uint32(written / frameSize), nil
}

// fetch pulls the next sample into a fresh owned buffer. A sample-less
// result that is not the end of the stream leaves the buffer empty.
func (s *Session) fetch() (bool, error) {
	res, err := s.res.reader.ReadSample(mf.FirstAudioStream)
	if err != nil {
		s.logf("read", "read sample failed: %v", err)
		return false, fmt.Errorf("%w: read sample: %w", ErrPlugin, err)
	}

	sample := res.Sample
	if sample == nil {
		return res.Flags&mf.ReadFlagEndOfStream != 0, nil
	}
	defer sample.Release()

	buf := mf.NewMemoryBuffer(sample.TotalLength())
	if err := sample.CopyToBuffer(buf); err != nil {
		buf.Release()
		s.logf("read", "copy sample failed: %v", err)
		return false, fmt.Errorf("%w: copy sample: %w", ErrPlugin, err)
	}

	s.res.buffer = buf
	s.currentBufferPos = 0
	s.lastReadTimestamp = res.Timestamp
	return false, nil
}

func (s *Session) dropBuffer() {
	if s.res.buffer != nil {
		s.res.buffer.Release()
		s.res.buffer = nil
	}
	s.currentBufferPos = 0
}
