// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/mfbridge/utils"
)

// Converter turns a Track into 16-bit PCM, optionally resampled to another
// rate and mixed down to mono. It owns the wrapped track.
type Converter struct {
	track    Track
	src      *TrackSource
	resample *Resampler
	out      Source

	srcRate int
	format  Format

	floatBuf []float32
	pcm      []byte
}

// NewConverter builds the conversion chain for t. A sampleRate of 0 keeps
// the track's rate.
func NewConverter(t Track, sampleRate int, mono bool) (*Converter, error) {
	in := t.Format()
	if !in.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidFormat, in)
	}
	if sampleRate <= 0 {
		sampleRate = in.SampleRate
	}

	c := &Converter{
		track:   t,
		src:     NewTrackSource(t),
		srcRate: in.SampleRate,
		format:  Format{SampleRate: sampleRate, Channels: in.Channels, BitDepth: 16},
	}

	c.out = c.src
	if sampleRate != in.SampleRate {
		c.resample = NewResampler(c.src, sampleRate)
		c.out = c.resample
	}
	if mono && in.Channels > 1 {
		c.out = NewMonoMixer(c.out)
		c.format.Channels = 1
	}

	frames := max(t.BufSize(), 256)
	c.floatBuf = make([]float32, frames*c.format.Channels)
	c.pcm = make([]byte, len(c.floatBuf)*2)

	return c, nil
}

func (c *Converter) Format() Format { return c.format }
func (c *Converter) BufSize() int   { return len(c.floatBuf) / c.format.Channels }

// Frames matches the number of frames the resampler emits for the track.
func (c *Converter) Frames() int64 {
	dst, src := int64(c.format.SampleRate), int64(c.srcRate)
	return (c.track.Frames()*dst + src - 1) / src
}

func (c *Converter) ReadChunk() ([]byte, error) {
	for {
		n, err := c.out.ReadSamples(c.floatBuf)
		for i := range n {
			binary.LittleEndian.PutUint16(c.pcm[2*i:], uint16(utils.Float32ToInt16(c.floatBuf[i])))
		}
		if n > 0 || err != nil {
			if err != nil && err != io.EOF {
				return c.pcm[:2*n], fmt.Errorf("%w", err)
			}
			return c.pcm[:2*n], err
		}
	}
}

// SeekFrame seeks in output frames.
func (c *Converter) SeekFrame(frame int64) error {
	if frame < 0 {
		return ErrNegativeFrame
	}

	if err := c.track.SeekFrame(frame * int64(c.srcRate) / int64(c.format.SampleRate)); err != nil {
		return fmt.Errorf("%w", err)
	}

	c.src.Reset()
	if c.resample != nil {
		c.resample.Reset()
	}
	return nil
}

func (c *Converter) Close() error {
	return c.track.Close()
}
