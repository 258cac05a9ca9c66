// SPDX-License-Identifier: EPL-2.0

// Package mftest provides a scripted mf.Framework for tests. Every stage of
// the open sequence can be made to fail, and every object records its
// release in Events so tests can check teardown order.
package mftest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/stream"
	"github.com/ik5/mfbridge/timeconv"
)

// Stage names a framework call that can be made to fail.
type Stage int

const (
	StageNone Stage = iota
	StageCreateByteStream
	StageCreateResolver
	StageResolve
	StageCreateReader
	StageSelectStream
	StageSetMediaType
	StageCurrentMediaType
	StageReadSample
	StageSetPosition
	StagePresentation
)

var ErrInjected = errors.New("mftest: injected failure")

// Release events recorded in Framework.Events.
const (
	EventByteStreamClosed = "bytestream.close"
	EventResolverReleased = "resolver.release"
	EventSourceShutdown   = "source.shutdown"
	EventSourceReleased   = "source.release"
	EventReaderReleased   = "reader.release"
)

// Framework serves Data in ChunkSize pieces as if it had decoded it.
type Framework struct {
	// FailAt makes that stage return ErrInjected.
	FailAt Stage
	// ResolveAs is the object type the resolver reports.
	ResolveAs mf.ObjectType
	// Type is what CurrentMediaType returns.
	Type *mf.MediaType

	Data      []byte
	ChunkSize int
	// Gaps is the number of sample-less results served before the data.
	Gaps int

	// Duration in ticks; omitted from the presentation when zero.
	Duration int64
	FileSize uint64

	mtx *sync.Mutex

	events        []string
	contentType   string
	requestedType *mf.MediaType
	seeks         []int64
	selected      bool
}

// New returns a framework producing PCM of the given layout.
func New(channels, sampleRate, bitsPerSample int, data []byte) *Framework {
	mt := mf.NewPartialAudioType(mf.SubtypePCM)
	align := channels * bitsPerSample / 8
	mt.SetUint32(mf.KeyChannels, uint32(channels))
	mt.SetUint32(mf.KeySampleRate, uint32(sampleRate))
	mt.SetUint32(mf.KeyBitsPerSample, uint32(bitsPerSample))
	mt.SetUint32(mf.KeyBlockAlignment, uint32(align))
	mt.SetUint32(mf.KeyAvgBytesPerSecond, uint32(sampleRate*align))
	mt.SetUint32(mf.KeyChannelMask, mf.DefaultChannelMask(channels))

	frames := 0
	if align > 0 {
		frames = len(data) / align
	}

	return &Framework{
		ResolveAs: mf.ObjectMediaSource,
		Type:      mt,
		Data:      data,
		ChunkSize: 4096,
		Duration:  int64(frames) * timeconv.TicksPerSecond / int64(max(sampleRate, 1)),
		FileSize:  uint64(len(data)),
		mtx:       &sync.Mutex{},
	}
}

func (f *Framework) fail(s Stage) error {
	if f.FailAt == s {
		return fmt.Errorf("%w at stage %d", ErrInjected, s)
	}
	return nil
}

func (f *Framework) record(event string) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.events = append(f.events, event)
}

// Events lists the release events in the order they happened.
func (f *Framework) Events() []string {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return append([]string(nil), f.events...)
}

// ContentType is the hint the resolver saw on the byte stream.
func (f *Framework) ContentType() string {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.contentType
}

// RequestedType is the media type passed to SetCurrentMediaType.
func (f *Framework) RequestedType() *mf.MediaType {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.requestedType
}

// Seeks lists the positions passed to SetCurrentPosition.
func (f *Framework) Seeks() []int64 {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return append([]int64(nil), f.seeks...)
}

// Selected reports whether the first audio stream ended up selected.
func (f *Framework) Selected() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.selected
}

func (f *Framework) CreateByteStream(s stream.Stream) (mf.ByteStream, error) {
	if err := f.fail(StageCreateByteStream); err != nil {
		return nil, err
	}
	return &byteStream{ByteStream: mf.NewByteStreamOnStream(s), fw: f}, nil
}

func (f *Framework) CreateSourceResolver() (mf.SourceResolver, error) {
	if err := f.fail(StageCreateResolver); err != nil {
		return nil, err
	}
	return &resolver{fw: f}, nil
}

func (f *Framework) CreateSourceReader(src mf.MediaSource, _ *mf.Attributes) (mf.SourceReader, error) {
	if err := f.fail(StageCreateReader); err != nil {
		return nil, err
	}
	return &reader{fw: f, src: src}, nil
}

type byteStream struct {
	mf.ByteStream
	fw   *Framework
	once sync.Once
}

func (b *byteStream) Close() error {
	b.once.Do(func() { b.fw.record(EventByteStreamClosed) })
	return b.ByteStream.Close()
}

type resolver struct {
	fw *Framework
}

func (r *resolver) CreateObjectFromByteStream(bs mf.ByteStream, _ string, _ mf.ResolutionFlags) (mf.ObjectType, mf.MediaSource, error) {
	ct, _ := bs.Attributes().String(mf.KeyContentType)

	r.fw.mtx.Lock()
	r.fw.contentType = ct
	r.fw.mtx.Unlock()

	if err := r.fw.fail(StageResolve); err != nil {
		return mf.ObjectInvalid, nil, fmt.Errorf("%w: %w", mf.ErrUnsupportedByteStream, err)
	}
	return r.fw.ResolveAs, &source{fw: r.fw}, nil
}

func (r *resolver) Release() { r.fw.record(EventResolverReleased) }

type source struct {
	fw *Framework
}

func (s *source) PresentationAttributes() (*mf.Attributes, error) {
	if err := s.fw.fail(StagePresentation); err != nil {
		return nil, err
	}

	attrs := mf.NewAttributes()
	attrs.SetUint64(mf.KeyTotalFileSize, s.fw.FileSize)
	if s.fw.Duration > 0 {
		attrs.SetInt64(mf.KeyDuration, s.fw.Duration)
	}
	return attrs, nil
}

func (s *source) Shutdown() error {
	s.fw.record(EventSourceShutdown)
	return nil
}

func (s *source) Release() { s.fw.record(EventSourceReleased) }

type reader struct {
	fw  *Framework
	src mf.MediaSource

	offset int
	gaps   int
}

func (r *reader) SetStreamSelection(idx mf.StreamIndex, selected bool) error {
	if err := r.fw.fail(StageSelectStream); err != nil {
		return err
	}

	r.fw.mtx.Lock()
	defer r.fw.mtx.Unlock()

	if idx == mf.AllStreams || idx == mf.FirstAudioStream || idx == 0 {
		r.fw.selected = selected
	}
	return nil
}

func (r *reader) SetCurrentMediaType(_ mf.StreamIndex, partial *mf.MediaType) error {
	r.fw.mtx.Lock()
	r.fw.requestedType = partial.Clone()
	r.fw.mtx.Unlock()

	return r.fw.fail(StageSetMediaType)
}

func (r *reader) CurrentMediaType(mf.StreamIndex) (*mf.MediaType, error) {
	if err := r.fw.fail(StageCurrentMediaType); err != nil {
		return nil, err
	}
	return r.fw.Type.Clone(), nil
}

func (r *reader) byteRate() int64 {
	return int64(r.fw.Type.Uint32Or(mf.KeyAvgBytesPerSecond, 0))
}

func (r *reader) ReadSample(mf.StreamIndex) (mf.ReadResult, error) {
	if err := r.fw.fail(StageReadSample); err != nil {
		return mf.ReadResult{Flags: mf.ReadFlagError}, err
	}

	if r.gaps < r.fw.Gaps {
		r.gaps++
		return mf.ReadResult{Flags: mf.ReadFlagStreamTick}, nil
	}
	if r.offset >= len(r.fw.Data) {
		return mf.ReadResult{Flags: mf.ReadFlagEndOfStream}, nil
	}

	end := min(r.offset+r.fw.ChunkSize, len(r.fw.Data))
	chunk := append([]byte(nil), r.fw.Data[r.offset:end]...)

	var ts int64
	if rate := r.byteRate(); rate > 0 {
		ts = int64(r.offset) * timeconv.TicksPerSecond / rate
	}
	r.offset = end

	return mf.ReadResult{Timestamp: ts, Sample: mf.NewMemorySample(chunk)}, nil
}

func (r *reader) SetCurrentPosition(ticks int64) error {
	if err := r.fw.fail(StageSetPosition); err != nil {
		return err
	}

	r.fw.mtx.Lock()
	r.fw.seeks = append(r.fw.seeks, ticks)
	r.fw.mtx.Unlock()

	offset := ticks * r.byteRate() / timeconv.TicksPerSecond
	if align := int64(r.fw.Type.Uint32Or(mf.KeyBlockAlignment, 1)); align > 1 {
		offset -= offset % align
	}
	r.offset = int(min(offset, int64(len(r.fw.Data))))
	return nil
}

func (r *reader) PresentationAttribute(idx mf.StreamIndex, key string) (any, error) {
	if idx != mf.MediaSourceIndex {
		return nil, mf.ErrInvalidStreamIndex
	}
	attrs, err := r.src.PresentationAttributes()
	if err != nil {
		return nil, err
	}
	return attrs.Value(key)
}

func (r *reader) Release() { r.fw.record(EventReaderReleased) }
