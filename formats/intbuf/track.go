// SPDX-License-Identifier: EPL-2.0

// Package intbuf adapts go-audio decoders, which fill an IntBuffer, to
// audio.Track. wav and aiff share it.
package intbuf

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/utils"
)

// ChunkFrames is the number of frames per ReadChunk.
const ChunkFrames = 1024

// Reader is the part of a go-audio decoder a Track needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Reopen returns a fresh decoder positioned at the first PCM frame.
type Reopen func() (Reader, error)

// Track serves the PCM of a go-audio decoder. Seeking forward decodes and
// discards; seeking backward reopens the decoder first.
type Track struct {
	dec    Reader
	reopen Reopen
	format audio.Format
	frames int64
	pos    int64

	buf *goaudio.IntBuffer
	out []byte
}

// NewTrack wraps dec, which must already be positioned at the PCM data.
// frames may be 0 if the length is unknown.
func NewTrack(dec Reader, reopen Reopen, format audio.Format, frames int64) *Track {
	return &Track{
		dec:    dec,
		reopen: reopen,
		format: format,
		frames: frames,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: format.Channels,
				SampleRate:  format.SampleRate,
			},
			Data:           make([]int, ChunkFrames*format.Channels),
			SourceBitDepth: format.BitDepth,
		},
		out: make([]byte, ChunkFrames*format.FrameSize()),
	}
}

func (t *Track) Format() audio.Format { return t.format }
func (t *Track) Frames() int64        { return t.frames }
func (t *Track) BufSize() int         { return ChunkFrames }
func (t *Track) Close() error         { return nil }

// Position is the current frame.
func (t *Track) Position() int64 { return t.pos }

// read decodes up to limit frames into t.buf and returns the frame count.
func (t *Track) read(limit int) (int, error) {
	if t.frames > 0 {
		limit = int(min(int64(limit), t.frames-t.pos))
	}
	if limit <= 0 {
		return 0, io.EOF
	}

	t.buf.Data = t.buf.Data[:limit*t.format.Channels]
	n, err := t.dec.PCMBuffer(t.buf)
	frames := n / t.format.Channels
	t.pos += int64(frames)

	if err != nil && err != io.EOF {
		return frames, fmt.Errorf("%w", err)
	}
	if frames == 0 {
		return 0, io.EOF
	}
	return frames, err
}

func (t *Track) ReadChunk() ([]byte, error) {
	frames, err := t.read(ChunkFrames)

	size := utils.BytesPerSample(t.format.BitDepth)
	samples := frames * t.format.Channels
	for i := range samples {
		utils.PutPCM(t.out[i*size:], t.buf.Data[i], t.format.BitDepth)
	}
	return t.out[:samples*size], err
}

func (t *Track) SeekFrame(frame int64) error {
	if frame < 0 {
		return audio.ErrNegativeFrame
	}

	if frame < t.pos {
		dec, err := t.reopen()
		if err != nil {
			return fmt.Errorf("reopen: %w", err)
		}
		t.dec = dec
		t.pos = 0
	}

	for t.pos < frame {
		_, err := t.read(int(min(frame-t.pos, ChunkFrames)))
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
