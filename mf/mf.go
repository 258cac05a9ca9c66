// SPDX-License-Identifier: EPL-2.0

package mf

import (
	"io"

	"github.com/ik5/mfbridge/stream"
)

// StreamIndex addresses a stream of a source reader. Besides plain indices
// three reserved values exist.
type StreamIndex uint32

const (
	FirstAudioStream StreamIndex = 0xFFFFFFFD
	AllStreams       StreamIndex = 0xFFFFFFFE
	MediaSourceIndex StreamIndex = 0xFFFFFFFF
)

// ReadFlags is the status reported with every ReadSample call.
type ReadFlags uint32

const (
	ReadFlagError ReadFlags = 1 << iota
	ReadFlagEndOfStream
	ReadFlagNewStream
	ReadFlagNativeMediaTypeChanged
	ReadFlagCurrentMediaTypeChanged
	ReadFlagStreamTick
)

// ResolutionFlags control CreateObjectFromByteStream.
type ResolutionFlags uint32

const (
	ResolutionMediaSource ResolutionFlags = 0x1
	ResolutionByteStream  ResolutionFlags = 0x2
	ResolutionRead        ResolutionFlags = 0x10000
)

// ObjectType is what a resolver produced.
type ObjectType int

const (
	ObjectInvalid ObjectType = iota
	ObjectMediaSource
	ObjectByteStream
)

func (t ObjectType) String() string {
	switch t {
	case ObjectMediaSource:
		return "media source"
	case ObjectByteStream:
		return "byte stream"
	}
	return "invalid"
}

// ByteStream is the framework's view of a seekable input.
type ByteStream interface {
	io.ReadSeeker
	// Length of the stream in bytes.
	Length() (uint64, error)
	// Attributes carry hints such as KeyContentType.
	Attributes() *Attributes
	// Close detaches the byte stream from whatever it wraps.
	Close() error
}

// MediaSource produces the streams of a presentation.
type MediaSource interface {
	// PresentationAttributes carry KeyDuration and KeyTotalFileSize when known.
	PresentationAttributes() (*Attributes, error)
	Shutdown() error
	Release()
}

// SourceResolver turns a byte stream into a media source.
type SourceResolver interface {
	// CreateObjectFromByteStream resolves bs. url may be empty; it only
	// serves as a hint.
	CreateObjectFromByteStream(bs ByteStream, url string, flags ResolutionFlags) (ObjectType, MediaSource, error)
	Release()
}

// Sample is one decoded chunk produced by a SourceReader.
type Sample interface {
	TotalLength() int
	// CopyToBuffer copies the sample's bytes into buf and sets its current
	// length. buf must be large enough.
	CopyToBuffer(buf *MemoryBuffer) error
	Release()
}

// ReadResult is what ReadSample reports. Sample is nil on end of stream
// and on gaps.
type ReadResult struct {
	StreamIndex StreamIndex
	Flags       ReadFlags
	// Timestamp of the sample in 100ns ticks.
	Timestamp int64
	Sample    Sample
}

// SourceReader pulls decoded samples from a media source.
type SourceReader interface {
	SetStreamSelection(idx StreamIndex, selected bool) error
	// SetCurrentMediaType asks for output in the given (possibly partial)
	// media type.
	SetCurrentMediaType(idx StreamIndex, partial *MediaType) error
	// CurrentMediaType is the complete output type after negotiation.
	CurrentMediaType(idx StreamIndex) (*MediaType, error)
	ReadSample(idx StreamIndex) (ReadResult, error)
	// SetCurrentPosition seeks to ticks (100ns units).
	SetCurrentPosition(ticks int64) error
	// PresentationAttribute reads a presentation attribute through the
	// reader. idx must be MediaSourceIndex.
	PresentationAttribute(idx StreamIndex, key string) (any, error)
	Release()
}

// Framework creates the objects a decode pipeline needs.
type Framework interface {
	// CreateByteStream wraps s, taking a reference on it.
	CreateByteStream(s stream.Stream) (ByteStream, error)
	CreateSourceResolver() (SourceResolver, error)
	// CreateSourceReader takes a reference on src; the caller still owns
	// its own reference.
	CreateSourceReader(src MediaSource, attrs *Attributes) (SourceReader, error)
}
