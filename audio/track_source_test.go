// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

func TestTrackSource_AcrossChunks(t *testing.T) {
	t.Parallel()

	track := newRampTrack(Format{SampleRate: 8000, Channels: 2, BitDepth: 16}, 10, 3)
	src := NewTrackSource(track)

	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Fatalf("metadata = %d Hz, %d ch, want 8000 Hz, 2 ch", src.SampleRate(), src.Channels())
	}

	var got []float32
	buf := make([]float32, 5)
	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != 20 {
		t.Fatalf("read %d samples, want 20", len(got))
	}
	for i, v := range got {
		if want := float32(i) / 32768; v != want {
			t.Errorf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestTrackSource_ResetAfterSeek(t *testing.T) {
	t.Parallel()

	track := newRampTrack(Format{SampleRate: 8000, Channels: 1, BitDepth: 24}, 50, 8)
	src := NewTrackSource(track)

	buf := make([]float32, 4)
	if _, err := src.ReadSamples(buf); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if err := track.SeekFrame(40); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}
	src.Reset()

	n, err := src.ReadSamples(buf)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v, want 4, nil", n, err)
	}
	if want := float32(40) / (1 << 23); buf[0] != want {
		t.Errorf("first sample after seek = %v, want %v", buf[0], want)
	}
}

func TestTrackSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	track := newRampTrack(Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, 10, 2)
	track.readErr = boom

	if _, err := NewTrackSource(track).ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestTrackSource_CloseKeepsTrack(t *testing.T) {
	t.Parallel()

	track := newRampTrack(Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, 10, 2)
	if err := NewTrackSource(track).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if track.closed {
		t.Error("TrackSource.Close() closed the track")
	}
}
