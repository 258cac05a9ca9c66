// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is a float32 sample stream used by the conversion stages.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Format of the PCM bytes a Track produces.
type Format struct {
	SampleRate int
	Channels   int
	// BitDepth of each sample. 8-bit PCM is unsigned, wider depths are
	// signed little-endian.
	BitDepth int
}

// FrameSize is the number of bytes of one interleaved frame.
func (f Format) FrameSize() int {
	return f.Channels * ((f.BitDepth + 7) / 8)
}

// BytesPerSecond of the PCM stream.
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.FrameSize()
}

func (f Format) valid() bool {
	switch f.BitDepth {
	case 8, 16, 24, 32:
	default:
		return false
	}
	return f.SampleRate > 0 && f.Channels > 0
}

// Track is a decoded PCM byte stream. It is what a media source serves.
type Track interface {
	Format() Format
	// ReadChunk returns the next block of interleaved PCM, as the decoder
	// delivers it. The slice is only valid until the next call. At the end
	// of the stream it returns io.EOF, possibly alongside a last chunk.
	ReadChunk() ([]byte, error)
	// Frames is the total number of frames, or 0 if unknown.
	Frames() int64
	// SeekFrame moves to the given frame. Seeking past the end leaves the
	// track at its end.
	SeekFrame(frame int64) error
	// BufSize is the natural chunk size in frames.
	BufSize() int
	Close() error
}

// Decoder constructs a Track from a seekable input.
type Decoder interface {
	Decode(r io.ReadSeeker) (Track, error)
}

// Registry for decoders by content type (e.g., "audio/wav", "audio/flac").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(contentType string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[contentType] = d
}

func (r *Registry) Get(contentType string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[contentType]
	return d, ok
}

// ContentTypes lists the registered content types in no particular order.
func (r *Registry) ContentTypes() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	types := make([]string, 0, len(r.codecs))
	for ct := range r.codecs {
		types = append(types, ct)
	}
	return types
}

// ReadAll drains t into one PCM byte slice.
func ReadAll(t Track) ([]byte, error) {
	var out []byte
	for {
		chunk, err := t.ReadChunk()
		out = append(out, chunk...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
