// SPDX-License-Identifier: EPL-2.0

package native

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/timeconv"
)

// sourceReader serves the single audio stream of a mediaSource. It holds a
// reference on the source until Release.
type sourceReader struct {
	source *mediaSource
	logger *log.Logger

	// out is the source track itself or a Converter over it.
	out     audio.Track
	current *mf.MediaType

	selected bool
	position int64 // next output frame
	eos      bool
	released bool

	mtx *sync.Mutex
}

func newSourceReader(ms *mediaSource, logger *log.Logger) *sourceReader {
	ms.addRef()

	return &sourceReader{
		source:   ms,
		logger:   logger,
		out:      ms.track,
		current:  mediaTypeFor(ms.track.Format()),
		selected: true,
		mtx:      &sync.Mutex{},
	}
}

// mediaTypeFor is the complete PCM media type describing f.
func mediaTypeFor(f audio.Format) *mf.MediaType {
	mt := mf.NewPartialAudioType(mf.SubtypePCM)
	mt.SetUint32(mf.KeyChannels, uint32(f.Channels))
	mt.SetUint32(mf.KeySampleRate, uint32(f.SampleRate))
	mt.SetUint32(mf.KeyBitsPerSample, uint32(f.BitDepth))
	mt.SetUint32(mf.KeyBlockAlignment, uint32(f.FrameSize()))
	mt.SetUint32(mf.KeyAvgBytesPerSecond, uint32(f.BytesPerSecond()))
	mt.SetUint32(mf.KeyChannelMask, mf.DefaultChannelMask(f.Channels))
	return mt
}

func checkIndex(idx mf.StreamIndex) error {
	if idx == mf.FirstAudioStream || idx == 0 {
		return nil
	}
	return fmt.Errorf("%w: %#x", mf.ErrInvalidStreamIndex, uint32(idx))
}

func (r *sourceReader) usable() error {
	if r.released {
		return mf.ErrReleased
	}
	if r.source.isShutdown() {
		return mf.ErrShutdown
	}
	return nil
}

func (r *sourceReader) SetStreamSelection(idx mf.StreamIndex, selected bool) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.usable(); err != nil {
		return err
	}
	if idx != mf.AllStreams {
		if err := checkIndex(idx); err != nil {
			return err
		}
	}

	r.selected = selected
	return nil
}

func (r *sourceReader) SetCurrentMediaType(idx mf.StreamIndex, partial *mf.MediaType) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.usable(); err != nil {
		return err
	}
	if err := checkIndex(idx); err != nil {
		return err
	}
	if partial == nil {
		return fmt.Errorf("%w: nil media type", mf.ErrInvalidMediaType)
	}

	if major, _ := partial.String(mf.KeyMajorType); major != mf.MajorTypeAudio {
		return fmt.Errorf("%w: major type %q", mf.ErrInvalidMediaType, major)
	}
	if sub, _ := partial.String(mf.KeySubtype); sub != mf.SubtypePCM {
		return fmt.Errorf("%w: subtype %q", mf.ErrInvalidMediaType, sub)
	}

	native := r.source.track.Format()
	rate := int(partial.Uint32Or(mf.KeySampleRate, 0))
	channels := int(partial.Uint32Or(mf.KeyChannels, 0))
	bits := int(partial.Uint32Or(mf.KeyBitsPerSample, 0))

	mono := false
	switch channels {
	case 0, native.Channels:
	case 1:
		mono = true
	default:
		return fmt.Errorf("%w: cannot map %d channels to %d", mf.ErrInvalidMediaType, native.Channels, channels)
	}
	if bits != 0 && bits != 16 && bits != native.BitDepth {
		return fmt.Errorf("%w: cannot produce %d-bit samples from %d-bit", mf.ErrInvalidMediaType, bits, native.BitDepth)
	}

	ticks := r.positionTicks()

	out := audio.Track(r.source.track)
	if mono || (rate != 0 && rate != native.SampleRate) || (bits == 16 && native.BitDepth != 16) {
		c, err := audio.NewConverter(r.source.track, rate, mono)
		if err != nil {
			return fmt.Errorf("%w: %w", mf.ErrInvalidMediaType, err)
		}
		out = c
	}

	r.out = out
	r.current = mediaTypeFor(out.Format())
	r.logger.Printf("[mfbridge::native] output type %+v", out.Format())

	return r.seek(ticks)
}

func (r *sourceReader) CurrentMediaType(idx mf.StreamIndex) (*mf.MediaType, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.usable(); err != nil {
		return nil, err
	}
	if err := checkIndex(idx); err != nil {
		return nil, err
	}
	return r.current.Clone(), nil
}

func (r *sourceReader) ReadSample(idx mf.StreamIndex) (mf.ReadResult, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.usable(); err != nil {
		return mf.ReadResult{Flags: mf.ReadFlagError}, err
	}
	if err := checkIndex(idx); err != nil {
		return mf.ReadResult{Flags: mf.ReadFlagError}, err
	}
	if !r.selected {
		return mf.ReadResult{Flags: mf.ReadFlagError}, mf.ErrNoStreamSelected
	}

	res := mf.ReadResult{}
	for !r.eos {
		chunk, err := r.out.ReadChunk()
		if err != nil && !errors.Is(err, io.EOF) {
			r.logger.Printf("[mfbridge::native] decode failed at frame %d: %v", r.position, err)
			return mf.ReadResult{Flags: mf.ReadFlagError}, fmt.Errorf("decode: %w", err)
		}
		if err != nil {
			r.eos = true
		}

		if len(chunk) > 0 {
			res.Timestamp = r.positionTicks()
			r.position += int64(len(chunk) / r.out.Format().FrameSize())
			res.Sample = mf.NewMemorySample(bytes.Clone(chunk))
			return res, nil
		}
	}

	res.Flags |= mf.ReadFlagEndOfStream
	return res, nil
}

func (r *sourceReader) SetCurrentPosition(ticks int64) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.usable(); err != nil {
		return err
	}
	return r.seek(ticks)
}

func (r *sourceReader) seek(ticks int64) error {
	if ticks < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePosition, ticks)
	}

	rate := int64(r.out.Format().SampleRate)
	frame := ticks/timeconv.TicksPerSecond*rate + ticks%timeconv.TicksPerSecond*rate/timeconv.TicksPerSecond
	if err := r.out.SeekFrame(frame); err != nil {
		return fmt.Errorf("seek to frame %d: %w", frame, err)
	}

	r.position = frame
	r.eos = false
	return nil
}

func (r *sourceReader) positionTicks() int64 {
	rate := int64(r.out.Format().SampleRate)
	return r.position/rate*timeconv.TicksPerSecond + r.position%rate*timeconv.TicksPerSecond/rate
}

func (r *sourceReader) PresentationAttribute(idx mf.StreamIndex, key string) (any, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := r.usable(); err != nil {
		return nil, err
	}
	if idx != mf.MediaSourceIndex {
		return nil, fmt.Errorf("%w: %#x", mf.ErrInvalidStreamIndex, uint32(idx))
	}

	attrs, err := r.source.PresentationAttributes()
	if err != nil {
		return nil, err
	}
	return attrs.Value(key)
}

func (r *sourceReader) Release() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.released {
		return
	}
	r.released = true
	r.source.Release()
}
