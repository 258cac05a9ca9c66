// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/sniff"
	"github.com/ik5/mfbridge/stream"
	"github.com/ik5/mfbridge/timeconv"
)

// Config controls how a session is opened.
type Config struct {
	// Framework builds the decode pipeline. Required.
	Framework mf.Framework
	// Logger receives diagnostics. Defaults to discarding them.
	Logger *log.Logger
	// Signatures used to sniff the header. Defaults to
	// sniff.DefaultSignatures.
	Signatures []sniff.Signature
	// Name is reported by the stream's Stat and passed to the resolver.
	Name string
	// OutputSampleRate asks the reader for another rate. 0 keeps the
	// decoded rate.
	OutputSampleRate int
	// DownmixMono asks the reader for a single channel.
	DownmixMono bool
	// StreamOptions are passed to the stream adapter.
	StreamOptions []stream.Option
}

// Session holds the pipeline and cursors for one open file.
type Session struct {
	id          uuid.UUID
	logger      *log.Logger
	contentType string

	res resources

	// currentBufferPos is the number of bytes of res.buffer already
	// handed out.
	currentBufferPos int
	// lastReadTimestamp is the position in ticks of the next byte to read.
	lastReadTimestamp int64

	closed bool
}

// ID identifies the session in log lines.
func (s *Session) ID() uuid.UUID { return s.id }

// ContentType is the sniffed content type.
func (s *Session) ContentType() string { return s.contentType }

func (s *Session) logf(op, format string, args ...any) {
	s.logger.Printf("[mfbridge::%s] %s: "+format, append([]any{op, s.id}, args...)...)
}

// Close releases every resource in reverse acquisition order. Calling it
// more than once is harmless.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.res.release()
	s.currentBufferPos = 0
	s.logf("close", "released")
	return nil
}

// audioFormat is the negotiated output format, queried afresh every time.
type audioFormat struct {
	channels        uint32
	bitsPerSample   uint32
	sampleRate      uint32
	avgBytesPerSec  uint32
	blockAlignment  uint32
	samplesPerBlock uint32
	channelMask     uint32
}

func (f audioFormat) conv() timeconv.Format {
	return timeconv.Format{
		Channels:          f.channels,
		BitsPerSample:     f.bitsPerSample,
		AvgBytesPerSecond: f.avgBytesPerSec,
	}
}

// frameSize is the byte size of one PCM frame.
func (f audioFormat) frameSize() int {
	return int(f.channels * f.bitsPerSample / 8)
}

func (s *Session) format() (audioFormat, error) {
	if s.closed {
		return audioFormat{}, ErrClosed
	}

	mt, err := s.res.reader.CurrentMediaType(mf.FirstAudioStream)
	if err != nil {
		return audioFormat{}, fmt.Errorf("%w: current media type: %w", ErrPlugin, err)
	}

	return audioFormat{
		channels:        mt.Uint32Or(mf.KeyChannels, 0),
		bitsPerSample:   mt.Uint32Or(mf.KeyBitsPerSample, 0),
		sampleRate:      mt.Uint32Or(mf.KeySampleRate, 0),
		avgBytesPerSec:  mt.Uint32Or(mf.KeyAvgBytesPerSecond, 0),
		blockAlignment:  mt.Uint32Or(mf.KeyBlockAlignment, 0),
		samplesPerBlock: mt.Uint32Or(mf.KeySamplesPerBlock, 0),
		channelMask:     mt.Uint32Or(mf.KeyChannelMask, 0),
	}, nil
}

var discard = log.New(io.Discard, "", 0)
