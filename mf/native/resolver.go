// SPDX-License-Identifier: EPL-2.0

package native

import (
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/timeconv"
)

type resolver struct {
	registry *audio.Registry
	logger   *log.Logger
}

func (r *resolver) CreateObjectFromByteStream(bs mf.ByteStream, url string, flags mf.ResolutionFlags) (mf.ObjectType, mf.MediaSource, error) {
	if flags&mf.ResolutionMediaSource == 0 {
		return mf.ObjectInvalid, nil, fmt.Errorf("%w: flags %#x ask for no media source", mf.ErrUnsupportedByteStream, uint32(flags))
	}

	ct, err := bs.Attributes().String(mf.KeyContentType)
	if err != nil {
		return mf.ObjectInvalid, nil, fmt.Errorf("%w: %w", mf.ErrUnsupportedByteStream, ErrNoContentType)
	}
	dec, ok := r.registry.Get(ct)
	if !ok {
		return mf.ObjectInvalid, nil, fmt.Errorf("%w: content type %q", mf.ErrUnsupportedByteStream, ct)
	}

	if _, err := bs.Seek(0, io.SeekStart); err != nil {
		return mf.ObjectInvalid, nil, fmt.Errorf("rewind byte stream: %w", err)
	}

	track, err := dec.Decode(bs)
	if err != nil {
		r.logger.Printf("[mfbridge::native] %s decoder rejected %q: %v", ct, url, err)
		return mf.ObjectInvalid, nil, fmt.Errorf("%w: %w", mf.ErrUnsupportedByteStream, err)
	}

	size, err := bs.Length()
	if err != nil {
		_ = track.Close()
		return mf.ObjectInvalid, nil, fmt.Errorf("byte stream length: %w", err)
	}

	r.logger.Printf("[mfbridge::native] resolved %q as %s: %+v, %d frames", url, ct, track.Format(), track.Frames())

	return mf.ObjectMediaSource, newMediaSource(track, size), nil
}

func (r *resolver) Release() {}

// mediaSource serves a single decoded track. It is shut down when its last
// reference is released or when Shutdown is called, whichever comes first.
type mediaSource struct {
	track    audio.Track
	fileSize uint64

	refs     atomic.Int32
	shutdown atomic.Bool
	once     sync.Once
}

func newMediaSource(t audio.Track, fileSize uint64) *mediaSource {
	ms := &mediaSource{track: t, fileSize: fileSize}
	ms.refs.Store(1)
	return ms
}

func (m *mediaSource) addRef() {
	m.refs.Add(1)
}

func (m *mediaSource) isShutdown() bool {
	return m.shutdown.Load()
}

// duration in 100ns ticks, 0 when the track does not know its length.
func (m *mediaSource) duration() int64 {
	f := m.track.Format()
	frames := m.track.Frames()
	if frames <= 0 || f.SampleRate <= 0 {
		return 0
	}
	return frames * timeconv.TicksPerSecond / int64(f.SampleRate)
}

func (m *mediaSource) PresentationAttributes() (*mf.Attributes, error) {
	if m.isShutdown() {
		return nil, mf.ErrShutdown
	}

	attrs := mf.NewAttributes()
	attrs.SetUint64(mf.KeyTotalFileSize, m.fileSize)
	if d := m.duration(); d > 0 {
		attrs.SetInt64(mf.KeyDuration, d)
	}
	return attrs, nil
}

func (m *mediaSource) Shutdown() error {
	var err error
	m.once.Do(func() {
		m.shutdown.Store(true)
		err = m.track.Close()
	})
	return err
}

func (m *mediaSource) Release() {
	if m.refs.Add(-1) == 0 {
		_ = m.Shutdown()
	}
}
