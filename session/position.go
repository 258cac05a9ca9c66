// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"math"

	"github.com/ik5/mfbridge/host"
	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/timeconv"
)

// Length reports the total length of the sound. RawBytes is the size of the
// encoded file; the other units derive from the presentation duration.
func (s *Session) Length(unit host.TimeUnit) (uint32, error) {
	if s.closed {
		return 0, ErrClosed
	}

	switch unit {
	case host.TimeUnitRawBytes:
		return s.fileSize()
	case host.TimeUnitMS, host.TimeUnitPCM, host.TimeUnitPCMBytes:
	default:
		return 0, fmt.Errorf("%w: length in %v", ErrPlugin, unit)
	}

	f, err := s.format()
	if err != nil {
		return 0, err
	}

	v, err := s.res.reader.PresentationAttribute(mf.MediaSourceIndex, mf.KeyDuration)
	if err != nil {
		s.logf("length", "duration: %v", err)
		return 0, fmt.Errorf("%w: duration: %w", ErrPlugin, err)
	}
	ticks, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: duration holds %T", ErrPlugin, v)
	}

	n, err := timeconv.FromTicks(ticks, unit, f.conv())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPlugin, err)
	}
	return n, nil
}

func (s *Session) fileSize() (uint32, error) {
	v, err := s.res.reader.PresentationAttribute(mf.MediaSourceIndex, mf.KeyTotalFileSize)
	if err != nil {
		s.logf("length", "file size: %v", err)
		return 0, fmt.Errorf("%w: file size: %w", ErrPlugin, err)
	}
	size, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("%w: file size holds %T", ErrPlugin, v)
	}
	if size > math.MaxUint32 {
		return 0, fmt.Errorf("%w: file size %d does not fit 32 bits", ErrPlugin, size)
	}
	return uint32(size), nil
}

// SetPosition seeks the reader. Any partly consumed sample is dropped and
// the position becomes the requested one.
func (s *Session) SetPosition(position uint32, unit host.TimeUnit) error {
	f, err := s.format()
	if err != nil {
		return err
	}

	ticks, err := timeconv.ToTicks(position, unit, f.conv())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlugin, err)
	}

	if err := s.res.reader.SetCurrentPosition(ticks); err != nil {
		s.logf("seek", "to %d ticks: %v", ticks, err)
		return fmt.Errorf("%w: set position: %w", ErrPlugin, err)
	}

	s.dropBuffer()
	s.lastReadTimestamp = ticks
	s.logf("seek", "to %d %v (%d ticks)", position, unit, ticks)
	return nil
}

// Position converts the last read timestamp to unit.
func (s *Session) Position(unit host.TimeUnit) (uint32, error) {
	f, err := s.format()
	if err != nil {
		return 0, err
	}

	n, err := timeconv.FromTicks(s.lastReadTimestamp, unit, f.conv())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPlugin, err)
	}
	return n, nil
}
