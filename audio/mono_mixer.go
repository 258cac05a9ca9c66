// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes src to a single channel by averaging every frame.
// A mono src is passed through untouched.
type MonoMixer struct {
	src   Source
	frame []float32 // interleaved scratch for one read from src
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() / max(m.src.Channels(), 1) }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with at most len(dst) mono samples.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.frame) < need {
		m.frame = make([]float32, need)
	}
	in := m.frame[:need]

	n, err := m.src.ReadSamples(in)
	frames := n / channels

	scale := 1 / float32(channels)
	for f := range frames {
		var sum float32
		for _, s := range in[f*channels : (f+1)*channels] {
			sum += s
		}
		dst[f] = sum * scale
	}

	return frames, err
}
