// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/utils"
	"github.com/jfreymuth/oggvorbis"
)

const chunkFrames = 2048

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns how many values it
	// wrote.
	Read(p []float32) (int, error)
	Length() int64
	SetPosition(pos int64) error
}

// track converts the float output of the Vorbis decoder to 16-bit PCM.
type track struct {
	dec      oggReader
	format   audio.Format
	floatBuf []float32
	out      []byte
}

func newTrack(dec oggReader) *track {
	channels := dec.Channels()
	return &track{
		dec: dec,
		format: audio.Format{
			SampleRate: dec.SampleRate(),
			Channels:   channels,
			BitDepth:   16,
		},
		floatBuf: make([]float32, chunkFrames*channels),
		out:      make([]byte, chunkFrames*channels*2),
	}
}

func (t *track) Format() audio.Format { return t.format }
func (t *track) Frames() int64        { return max(t.dec.Length(), 0) }
func (t *track) BufSize() int         { return chunkFrames }
func (t *track) Close() error         { return nil }

func (t *track) ReadChunk() ([]byte, error) {
	for {
		n, err := t.dec.Read(t.floatBuf)
		n -= n % t.format.Channels

		for i := range n {
			binary.LittleEndian.PutUint16(t.out[2*i:], uint16(utils.Float32ToInt16(t.floatBuf[i])))
		}

		if err != nil && err != io.EOF {
			return t.out[:2*n], fmt.Errorf("%w", err)
		}
		if n > 0 || err == io.EOF {
			return t.out[:2*n], err
		}
	}
}

func (t *track) SeekFrame(frame int64) error {
	if frame < 0 {
		return audio.ErrNegativeFrame
	}
	if length := t.dec.Length(); length > 0 {
		frame = min(frame, length)
	}
	if err := t.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Track, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newTrack(dec), nil
}
