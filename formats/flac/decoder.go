// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacStream is the part of *flac.Stream a track needs.
type flacStream interface {
	ParseNext() (*frame.Frame, error)
	Seek(sampleNum uint64) (uint64, error)
	Close() error
}

// track serves one FLAC frame per chunk. Odd bit depths such as 12 or 20
// are widened to the next whole byte.
type track struct {
	stream  flacStream
	format  audio.Format
	shift   uint
	nframes int64
	block   int
	eof     bool
	// skip is the number of leading samples of the next frame to drop
	// after a seek landed on the start of the frame
	skip int
	out     []byte
}

func newTrack(s flacStream, sampleRate, channels, bitsPerSample int, nsamples uint64, maxBlock int) (*track, error) {
	if channels == 0 || sampleRate == 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", audio.ErrInvalidFormat, sampleRate, channels)
	}

	depth := utils.BytesPerSample(bitsPerSample) * 8
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("%w: %d", audio.ErrUnsupportedBitDepth, bitsPerSample)
	}

	return &track{
		stream: s,
		format: audio.Format{
			SampleRate: sampleRate,
			Channels:   channels,
			BitDepth:   depth,
		},
		shift:   uint(depth - bitsPerSample),
		nframes: int64(nsamples),
		block:   max(maxBlock, 1),
	}, nil
}

func (t *track) Format() audio.Format { return t.format }
func (t *track) Frames() int64        { return t.nframes }
func (t *track) BufSize() int         { return t.block }

func (t *track) Close() error {
	if err := t.stream.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (t *track) ReadChunk() ([]byte, error) {
	if t.eof {
		return nil, io.EOF
	}

	f, err := t.stream.ParseNext()
	if err == io.EOF {
		t.eof = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if len(f.Subframes) != t.format.Channels {
		return nil, fmt.Errorf("%w: frame has %d channels, stream %d",
			audio.ErrInvalidFormat, len(f.Subframes), t.format.Channels)
	}

	first := min(t.skip, len(f.Subframes[0].Samples))
	t.skip = 0

	size := utils.BytesPerSample(t.format.BitDepth)
	n := len(f.Subframes[0].Samples) - first
	need := n * t.format.Channels * size
	if cap(t.out) < need {
		t.out = make([]byte, need)
	}
	t.out = t.out[:need]

	i := 0
	for s := first; s < first+n; s++ {
		for _, sub := range f.Subframes {
			utils.PutPCM(t.out[i:], int(sub.Samples[s])<<t.shift, t.format.BitDepth)
			i += size
		}
	}
	return t.out, nil
}

func (t *track) SeekFrame(frame int64) error {
	if frame < 0 {
		return audio.ErrNegativeFrame
	}
	if t.nframes > 0 && frame >= t.nframes {
		t.eof = true
		return nil
	}

	start, err := t.stream.Seek(uint64(frame))
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	t.skip = int(uint64(frame) - start)
	t.eof = false
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Track, error) {
	stream, err := flac.NewSeek(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	t, err := newTrack(stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample),
		info.NSamples, int(info.BlockSizeMax))
	if err != nil {
		stream.Close()
		return nil, err
	}
	return t, nil
}
