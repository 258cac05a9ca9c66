// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"github.com/ik5/mfbridge/utils"
)

// TrackSource exposes a Track as a float32 Source. It does not own the
// track: Close leaves it open.
type TrackSource struct {
	track   Track
	format  Format
	pending []byte
	eof     bool
}

func NewTrackSource(t Track) *TrackSource {
	return &TrackSource{
		track:  t,
		format: t.Format(),
	}
}

func (s *TrackSource) SampleRate() int { return s.format.SampleRate }
func (s *TrackSource) Channels() int   { return s.format.Channels }
func (s *TrackSource) BufSize() int    { return s.track.BufSize() * s.format.Channels }
func (s *TrackSource) Close() error    { return nil }

// Reset drops buffered bytes. Call it after seeking the track.
func (s *TrackSource) Reset() {
	s.pending = nil
	s.eof = false
}

func (s *TrackSource) ReadSamples(dst []float32) (int, error) {
	size := utils.BytesPerSample(s.format.BitDepth)
	written := 0

	for written < len(dst) {
		if len(s.pending) < size {
			if s.eof {
				break
			}

			chunk, err := s.track.ReadChunk()
			s.pending = chunk
			if err == io.EOF {
				s.eof = true
			} else if err != nil {
				return written, err
			}
			continue
		}

		n := utils.PCMToFloat32(dst[written:], s.pending, s.format.BitDepth)
		s.pending = s.pending[n*size:]
		written += n
	}

	if s.eof && len(s.pending) < size {
		return written, io.EOF
	}
	return written, nil
}
