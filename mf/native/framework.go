// SPDX-License-Identifier: EPL-2.0

package native

import (
	"fmt"
	"io"
	"log"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/formats/aiff"
	"github.com/ik5/mfbridge/formats/flac"
	"github.com/ik5/mfbridge/formats/mp3"
	"github.com/ik5/mfbridge/formats/vorbis"
	"github.com/ik5/mfbridge/formats/wav"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/sniff"
	"github.com/ik5/mfbridge/stream"
)

// Framework implements mf.Framework with the decoders of a Registry.
type Framework struct {
	registry *audio.Registry
	logger   *log.Logger
}

// Option configures a Framework.
type Option func(*Framework)

// WithRegistry replaces the default decoder registry.
func WithRegistry(r *audio.Registry) Option {
	return func(f *Framework) {
		if r != nil {
			f.registry = r
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(f *Framework) {
		if l != nil {
			f.logger = l
		}
	}
}

// DefaultRegistry maps the content types the sniffer reports to the
// decoders of the formats packages.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(sniff.ContentTypeWAV, wav.Decoder{})
	r.Register(sniff.ContentTypeAIFF, aiff.Decoder{})
	r.Register(sniff.ContentTypeMPEG, mp3.Decoder{})
	r.Register(sniff.ContentTypeOgg, vorbis.Decoder{})
	r.Register(sniff.ContentTypeFLAC, flac.Decoder{})
	return r
}

func New(opts ...Option) *Framework {
	f := &Framework{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.registry == nil {
		f.registry = DefaultRegistry()
	}
	return f
}

// Registry exposes the decoders the resolver chooses from.
func (f *Framework) Registry() *audio.Registry {
	return f.registry
}

func (f *Framework) CreateByteStream(s stream.Stream) (mf.ByteStream, error) {
	if s == nil {
		return nil, ErrNilStream
	}
	return mf.NewByteStreamOnStream(s), nil
}

func (f *Framework) CreateSourceResolver() (mf.SourceResolver, error) {
	return &resolver{registry: f.registry, logger: f.logger}, nil
}

func (f *Framework) CreateSourceReader(src mf.MediaSource, attrs *mf.Attributes) (mf.SourceReader, error) {
	ms, ok := src.(*mediaSource)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignMediaSource, src)
	}
	if ms.isShutdown() {
		return nil, mf.ErrShutdown
	}

	return newSourceReader(ms, f.logger), nil
}
