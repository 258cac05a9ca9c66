// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/mfbridge/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels  = 2
	bitDepth  = 16
	frameSize = channels * bitDepth / 8

	chunkFrames = 1152
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	Length() int64
}

type track struct {
	dec    mp3Reader
	format audio.Format
	buf    []byte
}

func newTrack(dec mp3Reader) *track {
	return &track{
		dec: dec,
		format: audio.Format{
			SampleRate: dec.SampleRate(),
			Channels:   channels,
			BitDepth:   bitDepth,
		},
		buf: make([]byte, chunkFrames*frameSize),
	}
}

func (t *track) Format() audio.Format { return t.format }
func (t *track) BufSize() int         { return len(t.buf) / frameSize }
func (t *track) Close() error         { return nil }

func (t *track) Frames() int64 {
	n := t.dec.Length()
	if n < 0 {
		return 0
	}
	return n / frameSize
}

func (t *track) ReadChunk() ([]byte, error) {
	n, err := io.ReadFull(t.dec, t.buf)
	n -= n % frameSize

	switch err {
	case nil:
		return t.buf[:n], nil
	case io.EOF, io.ErrUnexpectedEOF:
		return t.buf[:n], io.EOF
	}
	return t.buf[:n], fmt.Errorf("%w", err)
}

func (t *track) SeekFrame(frame int64) error {
	if frame < 0 {
		return audio.ErrNegativeFrame
	}

	offset := frame * frameSize
	if length := t.dec.Length(); length >= 0 {
		offset = min(offset, length)
	}
	if _, err := t.dec.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Track, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newTrack(dec), nil
}
