// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ik5/mfbridge/host"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/sniff"
	"github.com/ik5/mfbridge/stream"
)

var errNoFramework = errors.New("no framework configured")

// Open builds the decode pipeline for file. size is the file size as the
// host knows it.
//
// Open fails with ErrUnsupportedFormat when no signature matches, and with
// ErrBadFile when any later stage fails. Everything acquired up to the
// failing stage is released before returning.
func Open(file host.FileHandle, size uint32, cfg Config) (*Session, error) {
	s := &Session{
		id:     uuid.New(),
		logger: cfg.Logger,
	}
	if s.logger == nil {
		s.logger = discard
	}

	sigs := cfg.Signatures
	if sigs == nil {
		sigs = sniff.DefaultSignatures
	}

	if err := file.Seek(0); err != nil {
		s.logf("open", "rewind failed: %v", err)
		return nil, fmt.Errorf("%w: rewind: %w", ErrUnsupportedFormat, err)
	}

	ct, err := sniff.Sniff(file, sigs)
	if err != nil {
		s.logf("open", "sniff failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	s.contentType = ct
	s.logf("open", "sniffed %s", ct)

	if err := s.build(file, size, cfg); err != nil {
		s.logf("open", "%v", err)
		s.res.release()
		return nil, fmt.Errorf("%w: %w", ErrBadFile, err)
	}

	s.logf("open", "ready")
	return s, nil
}

func (s *Session) build(file host.FileHandle, size uint32, cfg Config) error {
	fw := cfg.Framework
	if fw == nil {
		return errNoFramework
	}

	opts := append([]stream.Option{stream.WithName(cfg.Name), stream.WithLogger(s.logger)}, cfg.StreamOptions...)
	s.res.stream = stream.NewReadStream(file, size, opts...)

	bs, err := fw.CreateByteStream(s.res.stream)
	if err != nil {
		return fmt.Errorf("create byte stream: %w", err)
	}
	s.res.byteStream = bs
	bs.Attributes().SetString(mf.KeyContentType, s.contentType)
	s.logf("open", "byte stream created")

	resolver, err := fw.CreateSourceResolver()
	if err != nil {
		return fmt.Errorf("create source resolver: %w", err)
	}
	s.res.resolver = resolver

	kind, src, err := resolver.CreateObjectFromByteStream(bs, cfg.Name, mf.ResolutionMediaSource|mf.ResolutionRead)
	if src != nil {
		s.res.source = src
	}
	if err != nil {
		return fmt.Errorf("resolve media source: %w", err)
	}
	if kind != mf.ObjectMediaSource || src == nil {
		return fmt.Errorf("resolve media source: got %v", kind)
	}
	s.logf("open", "media source resolved")

	reader, err := fw.CreateSourceReader(src, nil)
	if err != nil {
		return fmt.Errorf("create source reader: %w", err)
	}
	s.res.reader = reader
	s.logf("open", "source reader created")

	if err := reader.SetStreamSelection(mf.AllStreams, false); err != nil {
		return fmt.Errorf("deselect streams: %w", err)
	}
	if err := reader.SetStreamSelection(mf.FirstAudioStream, true); err != nil {
		return fmt.Errorf("select first audio stream: %w", err)
	}

	partial := mf.NewPartialAudioType(mf.SubtypePCM)
	if cfg.OutputSampleRate > 0 {
		partial.SetUint32(mf.KeySampleRate, uint32(cfg.OutputSampleRate))
	}
	if cfg.DownmixMono {
		partial.SetUint32(mf.KeyChannels, 1)
	}
	if err := reader.SetCurrentMediaType(mf.FirstAudioStream, partial); err != nil {
		return fmt.Errorf("set media type: %w", err)
	}
	s.logf("open", "output media type set")

	return nil
}
