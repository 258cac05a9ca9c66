// SPDX-License-Identifier: EPL-2.0

package timeconv

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/ik5/mfbridge/host"
)

const (
	// TicksPerSecond is the number of 100ns ticks in a second.
	TicksPerSecond = 10_000_000
	// TicksPerMillisecond is the number of 100ns ticks in a millisecond.
	TicksPerMillisecond = 10_000
)

// Format holds the parts of a negotiated audio format the conversions need.
type Format struct {
	Channels          uint32
	BitsPerSample     uint32
	AvgBytesPerSecond uint32
}

// FrameSize is the size in bytes of one PCM frame (one value per channel).
func (f Format) FrameSize() uint64 {
	return uint64(f.Channels) * uint64(f.BitsPerSample) / 8
}

func (f Format) validate(unit host.TimeUnit) error {
	switch unit {
	case host.TimeUnitPCM:
		if f.FrameSize() == 0 || f.AvgBytesPerSecond == 0 {
			return fmt.Errorf("%w: %+v", ErrInvalidFormat, f)
		}
	case host.TimeUnitPCMBytes:
		if f.AvgBytesPerSecond == 0 {
			return fmt.Errorf("%w: %+v", ErrInvalidFormat, f)
		}
	}
	return nil
}

// FromTicks converts a 100ns tick count into unit. Arithmetic truncates;
// negative tick counts convert as zero. Results wider than 32 bits are
// clamped.
func FromTicks(ticks int64, unit host.TimeUnit, f Format) (uint32, error) {
	if err := f.validate(unit); err != nil {
		return 0, err
	}
	if ticks < 0 {
		ticks = 0
	}
	t := uint64(ticks)

	var v uint64
	switch unit {
	case host.TimeUnitMS:
		v = t / TicksPerMillisecond
	case host.TimeUnitPCM:
		v = mulDiv(t, uint64(f.AvgBytesPerSecond), f.FrameSize()*TicksPerSecond)
	case host.TimeUnitPCMBytes:
		v = mulDiv(t, uint64(f.AvgBytesPerSecond), TicksPerSecond)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedUnit, unit)
	}

	if v > math.MaxUint32 {
		v = math.MaxUint32
	}
	return uint32(v), nil
}

// ToTicks converts value in unit into 100ns ticks, truncating. An
// unsupported unit returns -1 together with ErrUnsupportedUnit.
func ToTicks(value uint32, unit host.TimeUnit, f Format) (int64, error) {
	if err := f.validate(unit); err != nil {
		return -1, err
	}

	v := uint64(value)
	switch unit {
	case host.TimeUnitMS:
		return int64(v * TicksPerMillisecond), nil
	case host.TimeUnitPCM:
		return int64(mulDiv(v*TicksPerSecond, f.FrameSize(), uint64(f.AvgBytesPerSecond))), nil
	case host.TimeUnitPCMBytes:
		return int64(v * TicksPerSecond / uint64(f.AvgBytesPerSecond)), nil
	}
	return -1, fmt.Errorf("%w: %v", ErrUnsupportedUnit, unit)
}

// mulDiv returns a*b/c without overflowing the intermediate product. The
// quotient saturates at math.MaxUint64.
func mulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, c)
	return q
}
