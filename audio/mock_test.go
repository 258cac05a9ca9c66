// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"

	"github.com/ik5/mfbridge/utils"
)

// mockSource generates float samples from a waveform function.
type mockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int
	waveform     func(sample int, channel int) float32
}

func newMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func newSilentSource(sampleRate, channels, totalSamples int) *mockSource {
	return newConstantSource(sampleRate, channels, totalSamples, 0)
}

func newSineSource(sampleRate, channels, totalSamples int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func newConstantSource(sampleRate, channels, totalSamples int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
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

// mockTrack serves a fixed PCM buffer in chunks of chunkFrames frames.
type mockTrack struct {
	format      Format
	data        []byte
	chunkFrames int
	pos         int // bytes
	closed      bool
	readErr     error
}

// newRampTrack builds a track whose sample for frame f, channel c is
// f*channels+c, truncated to the bit depth.
func newRampTrack(format Format, frames, chunkFrames int) *mockTrack {
	size := utils.BytesPerSample(format.BitDepth)
	data := make([]byte, frames*format.FrameSize())
	for i := range frames * format.Channels {
		utils.PutPCM(data[i*size:], i%100, format.BitDepth)
	}
	return &mockTrack{format: format, data: data, chunkFrames: chunkFrames}
}

func (t *mockTrack) Format() Format { return t.format }
func (t *mockTrack) Frames() int64  { return int64(len(t.data) / t.format.FrameSize()) }
func (t *mockTrack) BufSize() int   { return t.chunkFrames }

func (t *mockTrack) Close() error {
	t.closed = true
	return nil
}

func (t *mockTrack) ReadChunk() ([]byte, error) {
	if t.readErr != nil {
		return nil, t.readErr
	}
	if t.pos >= len(t.data) {
		return nil, io.EOF
	}

	end := min(t.pos+t.chunkFrames*t.format.FrameSize(), len(t.data))
	chunk := t.data[t.pos:end]
	t.pos = end
	return chunk, nil
}

func (t *mockTrack) SeekFrame(frame int64) error {
	if frame < 0 {
		return ErrNegativeFrame
	}
	t.pos = min(int(frame)*t.format.FrameSize(), len(t.data))
	return nil
}
