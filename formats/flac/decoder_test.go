// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/utils"
	"github.com/mewkiz/flac/frame"
)

// mockStream serves fixed-size frames whose sample s of channel c is
// s*channels+c counted from the start of the stream.
type mockStream struct {
	channels  int
	blockSize int
	total     int
	pos       int
	closed    bool
	parseErr  error
}

func (m *mockStream) ParseNext() (*frame.Frame, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	if m.pos >= m.total {
		return nil, io.EOF
	}

	n := min(m.blockSize, m.total-m.pos)
	f := &frame.Frame{}
	for c := range m.channels {
		samples := make([]int32, n)
		for s := range n {
			samples[s] = int32((m.pos+s)*m.channels + c)
		}
		f.Subframes = append(f.Subframes, &frame.Subframe{Samples: samples})
	}
	m.pos += n
	return f, nil
}

func (m *mockStream) Seek(sampleNum uint64) (uint64, error) {
	// land on the start of the containing frame
	start := int(sampleNum) / m.blockSize * m.blockSize
	m.pos = start
	return uint64(start), nil
}

func (m *mockStream) Close() error {
	m.closed = true
	return nil
}

func TestTrack_ReadChunk(t *testing.T) {
	t.Parallel()

	stream := &mockStream{channels: 2, blockSize: 256, total: 600}
	tr, err := newTrack(stream, 44100, 2, 16, 600, 256)
	if err != nil {
		t.Fatalf("newTrack() error = %v", err)
	}

	pcm, err := audio.ReadAll(tr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(pcm) != 600*4 {
		t.Fatalf("ReadAll() = %d bytes, want %d", len(pcm), 600*4)
	}
	for i := range 1200 {
		if got := utils.PCMSample(pcm[2*i:], 16); got != i {
			t.Fatalf("sample %d = %d", i, got)
		}
	}
}

func TestTrack_WidensOddDepth(t *testing.T) {
	t.Parallel()

	stream := &mockStream{channels: 1, blockSize: 16, total: 16}
	tr, err := newTrack(stream, 8000, 1, 12, 16, 16)
	if err != nil {
		t.Fatalf("newTrack() error = %v", err)
	}
	if tr.Format().BitDepth != 16 {
		t.Fatalf("BitDepth = %d, want 16", tr.Format().BitDepth)
	}

	chunk, err := tr.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	if got := utils.PCMSample(chunk[2*5:], 16); got != 5<<4 {
		t.Errorf("sample 5 = %d, want %d", got, 5<<4)
	}
}

func TestTrack_SeekFrameIsSampleExact(t *testing.T) {
	t.Parallel()

	stream := &mockStream{channels: 2, blockSize: 100, total: 1000}
	tr, err := newTrack(stream, 8000, 2, 24, 1000, 100)
	if err != nil {
		t.Fatalf("newTrack() error = %v", err)
	}

	if err := tr.SeekFrame(437); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}
	chunk, err := tr.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	if len(chunk) != 63*2*3 {
		t.Errorf("chunk after seek = %d bytes, want %d", len(chunk), 63*2*3)
	}
	if got := utils.PCMSample(chunk, 24); got != 437*2 {
		t.Errorf("first sample after seek = %d, want %d", got, 437*2)
	}
}

func TestTrack_SeekPastEnd(t *testing.T) {
	t.Parallel()

	tr, err := newTrack(&mockStream{channels: 1, blockSize: 10, total: 50}, 8000, 1, 16, 50, 10)
	if err != nil {
		t.Fatalf("newTrack() error = %v", err)
	}

	if err := tr.SeekFrame(50); err != nil {
		t.Fatalf("SeekFrame(50) error = %v", err)
	}
	if _, err := tr.ReadChunk(); err != io.EOF {
		t.Errorf("ReadChunk() after seek to end error = %v, want io.EOF", err)
	}

	if err := tr.SeekFrame(0); err != nil {
		t.Fatalf("SeekFrame(0) error = %v", err)
	}
	if _, err := tr.ReadChunk(); err != nil {
		t.Errorf("ReadChunk() after seek back error = %v", err)
	}
}

func TestTrack_Errors(t *testing.T) {
	t.Parallel()

	if _, err := newTrack(&mockStream{}, 8000, 1, 40, 0, 16); !errors.Is(err, audio.ErrUnsupportedBitDepth) {
		t.Errorf("newTrack(40 bit) error = %v, want ErrUnsupportedBitDepth", err)
	}
	if _, err := newTrack(&mockStream{}, 0, 1, 16, 0, 16); !errors.Is(err, audio.ErrInvalidFormat) {
		t.Errorf("newTrack(0 Hz) error = %v, want ErrInvalidFormat", err)
	}

	boom := errors.New("crc mismatch")
	stream := &mockStream{channels: 1, blockSize: 16, total: 16, parseErr: boom}
	tr, _ := newTrack(stream, 8000, 1, 16, 16, 16)
	if _, err := tr.ReadChunk(); !errors.Is(err, boom) {
		t.Errorf("ReadChunk() error = %v, want %v", err, boom)
	}

	if err := tr.Close(); err != nil || !stream.closed {
		t.Errorf("Close() = %v, closed = %v", err, stream.closed)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not a flac stream"))); err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}
