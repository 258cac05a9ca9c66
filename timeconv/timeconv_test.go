// SPDX-License-Identifier: EPL-2.0

package timeconv

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/mfbridge/host"
)

var cdFormat = Format{Channels: 2, BitsPerSample: 16, AvgBytesPerSecond: 176400}

func TestFromTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ticks int64
		unit  host.TimeUnit
		want  uint32
	}{
		{"one second ms", TicksPerSecond, host.TimeUnitMS, 1000},
		{"one second pcm", TicksPerSecond, host.TimeUnitPCM, 44100},
		{"one second bytes", TicksPerSecond, host.TimeUnitPCMBytes, 176400},
		{"sub-millisecond truncates", 9_999, host.TimeUnitMS, 0},
		{"sub-frame truncates", 226, host.TimeUnitPCM, 0},
		{"one frame", 227, host.TimeUnitPCM, 1},
		{"negative is zero", -5, host.TimeUnitPCM, 0},
		{"three hours pcm", 3 * 3600 * TicksPerSecond, host.TimeUnitPCM, 3 * 3600 * 44100},
	}

	for _, tt := range tests {
		got, err := FromTicks(tt.ticks, tt.unit, cdFormat)
		if err != nil {
			t.Errorf("%s: FromTicks() error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: FromTicks(%d, %v) = %d, want %d", tt.name, tt.ticks, tt.unit, got, tt.want)
		}
	}
}

func TestToTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value uint32
		unit  host.TimeUnit
		want  int64
	}{
		{"ms", 1500, host.TimeUnitMS, 15_000_000},
		{"pcm", 44100, host.TimeUnitPCM, TicksPerSecond},
		{"bytes", 176400, host.TimeUnitPCMBytes, TicksPerSecond},
		{"one frame", 1, host.TimeUnitPCM, 226},
		{"one byte", 1, host.TimeUnitPCMBytes, 56},
		{"max pcm", math.MaxUint32, host.TimeUnitPCM, int64(math.MaxUint32) * 4 * TicksPerSecond / 176400},
	}

	for _, tt := range tests {
		got, err := ToTicks(tt.value, tt.unit, cdFormat)
		if err != nil {
			t.Errorf("%s: ToTicks() error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: ToTicks(%d, %v) = %d, want %d", tt.name, tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Largest truncation loss per unit, in ticks: one unit's duration.
	tolerance := map[host.TimeUnit]int64{
		host.TimeUnitMS:       TicksPerMillisecond,
		host.TimeUnitPCM:      TicksPerSecond/44100 + 1,
		host.TimeUnitPCMBytes: TicksPerSecond/176400 + 1,
	}

	for unit, tol := range tolerance {
		for x := int64(0); x < 5*TicksPerSecond; x += 7_919 {
			v, err := FromTicks(x, unit, cdFormat)
			if err != nil {
				t.Fatalf("FromTicks(%d, %v) error = %v", x, unit, err)
			}
			back, err := ToTicks(v, unit, cdFormat)
			if err != nil {
				t.Fatalf("ToTicks(%d, %v) error = %v", v, unit, err)
			}
			if diff := x - back; diff < 0 || diff > tol {
				t.Fatalf("round trip %v: %d -> %d -> %d, drift %d exceeds %d", unit, x, v, back, diff, tol)
			}
		}
	}
}

func TestUnsupportedUnit(t *testing.T) {
	t.Parallel()

	got, err := ToTicks(10, host.TimeUnitRawBytes, cdFormat)
	if !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("ToTicks(RawBytes) error = %v, want ErrUnsupportedUnit", err)
	}
	if got >= 0 {
		t.Errorf("ToTicks(RawBytes) = %d, want negative", got)
	}

	if _, err := FromTicks(10, host.TimeUnitRawBytes, cdFormat); !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("FromTicks(RawBytes) error = %v, want ErrUnsupportedUnit", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	t.Parallel()

	empty := Format{}

	if _, err := FromTicks(TicksPerSecond, host.TimeUnitPCM, empty); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("FromTicks(PCM, empty) error = %v, want ErrInvalidFormat", err)
	}
	if _, err := ToTicks(10, host.TimeUnitPCMBytes, empty); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ToTicks(PCMBytes, empty) error = %v, want ErrInvalidFormat", err)
	}

	// Milliseconds never look at the format.
	if got, err := FromTicks(TicksPerSecond, host.TimeUnitMS, empty); err != nil || got != 1000 {
		t.Errorf("FromTicks(MS, empty) = %d, %v, want 1000, nil", got, err)
	}
}

func TestFrameSize(t *testing.T) {
	t.Parallel()

	if got := cdFormat.FrameSize(); got != 4 {
		t.Errorf("FrameSize() = %d, want 4", got)
	}
	if got := (Format{Channels: 6, BitsPerSample: 24}).FrameSize(); got != 18 {
		t.Errorf("FrameSize(5.1/24) = %d, want 18", got)
	}
}
