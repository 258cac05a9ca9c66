// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/utils"
)

// MockSource generates float samples from a waveform function. It
// implements audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int
	waveform     func(sample int, channel int) float32
}

func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// PCMTrack is an in-memory audio.Track. Chunks are ChunkFrames long except
// for the last one.
type PCMTrack struct {
	format      audio.Format
	data        []byte
	chunkFrames int
	pos         int

	// Closed is set by Close.
	Closed bool
}

// NewPCMTrack renders frames frames of sample(frame, channel) into PCM of
// the given format.
func NewPCMTrack(format audio.Format, frames, chunkFrames int, sample func(frame, channel int) int) *PCMTrack {
	size := utils.BytesPerSample(format.BitDepth)
	data := make([]byte, 0, frames*format.FrameSize())
	buf := make([]byte, size)

	for f := range frames {
		for c := range format.Channels {
			utils.PutPCM(buf, sample(f, c), format.BitDepth)
			data = append(data, buf...)
		}
	}

	return &PCMTrack{format: format, data: data, chunkFrames: chunkFrames}
}

// NewCountingTrack is a 16-bit track whose samples count up from zero,
// wrapping at 32768, so every byte position is recognisable.
func NewCountingTrack(sampleRate, channels, frames, chunkFrames int) *PCMTrack {
	format := audio.Format{SampleRate: sampleRate, Channels: channels, BitDepth: 16}
	return NewPCMTrack(format, frames, chunkFrames, func(frame, channel int) int {
		return (frame*channels + channel) % 32768
	})
}

// Bytes is the complete PCM content.
func (t *PCMTrack) Bytes() []byte { return t.data }

func (t *PCMTrack) Format() audio.Format { return t.format }
func (t *PCMTrack) Frames() int64        { return int64(len(t.data) / t.format.FrameSize()) }
func (t *PCMTrack) BufSize() int         { return t.chunkFrames }

func (t *PCMTrack) Close() error {
	t.Closed = true
	return nil
}

func (t *PCMTrack) ReadChunk() ([]byte, error) {
	if t.pos >= len(t.data) {
		return nil, io.EOF
	}

	end := min(t.pos+t.chunkFrames*t.format.FrameSize(), len(t.data))
	chunk := t.data[t.pos:end]
	t.pos = end
	return chunk, nil
}

func (t *PCMTrack) SeekFrame(frame int64) error {
	if frame < 0 {
		return audio.ErrNegativeFrame
	}
	t.pos = min(int(frame)*t.format.FrameSize(), len(t.data))
	return nil
}
