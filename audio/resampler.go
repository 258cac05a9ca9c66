// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/mfbridge/utils"
)

// lowpassAlpha is the one-pole smoothing factor applied when downsampling.
const lowpassAlpha = 0.5

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation. It keeps the channel count and smooths the input with a
// one-pole low-pass when downsampling.
//
// Output frame k is taken at source position k*srcRate/dstRate, computed
// exactly, so a source of N frames yields ceil(N*dstRate/srcRate) frames.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int
	channels int

	// window holds four consecutive source frames. window[1] is source
	// frame pos and output is interpolated between window[1] and window[2].
	window [4][]float32
	valid  [4]bool
	pos    int64
	out    int64
	primed bool
	done   bool

	// in is a block read from src, consumed one frame at a time.
	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lowpass bool
	lpState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	block := max(src.BufSize(), 1024)
	block -= block % channels

	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		dstRate:  dstRate,
		channels: channels,
		in:       make([]float32, block),
		lowpass:  src.SampleRate() > dstRate,
		lpState:  make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Reset forgets all interpolation state so that the next read starts fresh
// from wherever src now is.
func (r *Resampler) Reset() {
	for i := range r.window {
		clear(r.window[i])
	}
	r.valid = [4]bool{}
	clear(r.lpState)
	r.pos, r.out = 0, 0
	r.primed = false
	r.done = false
	r.inPos, r.inLen = 0, 0
	r.srcEOF = false
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull copies the next source frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		for c := range frame {
			frame[c] = lowpassAlpha*frame[c] + (1-lowpassAlpha)*r.lpState[c]
			r.lpState[c] = frame[c]
		}
	}
	return true, nil
}

// prime fills the window so that window[1] is the first source frame. The
// missing frame before it repeats the first one.
func (r *Resampler) prime() error {
	r.primed = true

	lowpass := r.lowpass
	r.lowpass = false
	ok, err := r.pull(r.window[1])
	r.lowpass = lowpass
	if err != nil || !ok {
		r.done = true
		return err
	}

	copy(r.window[0], r.window[1])
	copy(r.lpState, r.window[1])
	r.valid[0], r.valid[1] = true, true

	if r.valid[2], err = r.pull(r.window[2]); err != nil || !r.valid[2] {
		return err
	}
	r.valid[3], err = r.pull(r.window[3])
	return err
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	if r.done {
		return nil
	}

	w := r.window
	r.window = [4][]float32{w[1], w[2], w[3], w[0]}
	r.valid = [4]bool{r.valid[1], r.valid[2], r.valid[3], false}

	if r.valid[2] {
		ok, err := r.pull(r.window[3])
		if err != nil {
			return err
		}
		r.valid[3] = ok
	}

	r.pos++
	r.done = !r.valid[1]
	return nil
}

func (r *Resampler) interpolate(out []float32, x float32) {

	for c := range out {
		y1 := r.window[1][c]
		y0 := y1
		if r.valid[0] {
			y0 = r.window[0][c]
		}
		y2 := y1
		if r.valid[2] {
			y2 = r.window[2][c]
		}
		y3 := y2
		if r.valid[3] {
			y3 = r.window[3][c]
		}
		out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
	}
}

// ReadSamples produces interleaved samples at the target rate. len(dst)
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	dstRate := int64(r.dstRate)

	for written < want {
		at := r.out * r.srcRate
		for target := at / dstRate; r.pos < target && !r.done; {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if r.done {
			return written * r.channels, io.EOF
		}

		frac := float32(at%dstRate) / float32(dstRate)
		r.interpolate(dst[written*r.channels:(written+1)*r.channels], frac)
		written++
		r.out++
	}

	return written * r.channels, nil
}
