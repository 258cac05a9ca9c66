// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/mfbridge/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	pcm        []byte
	offset     int64
	readErr    error
	// maxRead caps each Read to mimic frame-sized deliveries
	maxRead int
}

func newMockMP3Reader(sampleRate int, samples []int16) *mockMP3Reader {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}
	return &mockMP3Reader{sampleRate: sampleRate, pcm: pcm, maxRead: 1000}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }
func (m *mockMP3Reader) Length() int64   { return int64(len(m.pcm)) }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.offset >= int64(len(m.pcm)) {
		return 0, io.EOF
	}

	n := copy(buf[:min(len(buf), m.maxRead)], m.pcm[m.offset:])
	m.offset += int64(n)
	return n, nil
}

func (m *mockMP3Reader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, errors.New("unsupported whence")
	}
	m.offset = offset
	return offset, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("This is not MP3 data"))); err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestTrack_Metadata(t *testing.T) {
	t.Parallel()

	tr := newTrack(newMockMP3Reader(44100, make([]int16, 2*5000)))

	want := audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
	if got := tr.Format(); got != want {
		t.Errorf("Format() = %+v, want %+v", got, want)
	}
	if got := tr.Frames(); got != 5000 {
		t.Errorf("Frames() = %d, want 5000", got)
	}
	if got := tr.BufSize(); got != chunkFrames {
		t.Errorf("BufSize() = %d, want %d", got, chunkFrames)
	}
}

func TestTrack_ReadChunk(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*3000)
	for i := range samples {
		samples[i] = int16(i)
	}
	mock := newMockMP3Reader(8000, samples)
	tr := newTrack(mock)

	chunk, err := tr.ReadChunk()
	if err != nil {
		t.Fatalf("ReadChunk() error = %v", err)
	}
	if len(chunk) != chunkFrames*frameSize {
		t.Errorf("ReadChunk() = %d bytes, want a full chunk of %d", len(chunk), chunkFrames*frameSize)
	}

	pcm, err := audio.ReadAll(tr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got := len(chunk) + len(pcm); got != len(mock.pcm) {
		t.Errorf("read %d bytes in total, want %d", got, len(mock.pcm))
	}
}

func TestTrack_SeekFrame(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*2000)
	for i := range samples {
		samples[i] = int16(i)
	}
	tr := newTrack(newMockMP3Reader(8000, samples))

	if err := tr.SeekFrame(1500); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}
	chunk, err := tr.ReadChunk()
	if err != io.EOF {
		t.Fatalf("ReadChunk() error = %v, want io.EOF on the short tail", err)
	}
	if len(chunk) != 500*frameSize {
		t.Errorf("ReadChunk() = %d bytes, want %d", len(chunk), 500*frameSize)
	}
	if got := int16(binary.LittleEndian.Uint16(chunk)); got != 3000 {
		t.Errorf("first sample after seek = %d, want 3000", got)
	}

	// past the end clamps to the end
	if err := tr.SeekFrame(1 << 40); err != nil {
		t.Fatalf("SeekFrame(past end) error = %v", err)
	}
	if chunk, err := tr.ReadChunk(); err != io.EOF || len(chunk) != 0 {
		t.Errorf("ReadChunk() at end = %d bytes, %v, want 0, io.EOF", len(chunk), err)
	}

	if err := tr.SeekFrame(-1); !errors.Is(err, audio.ErrNegativeFrame) {
		t.Errorf("SeekFrame(-1) error = %v, want ErrNegativeFrame", err)
	}
}

func TestTrack_ReadError(t *testing.T) {
	t.Parallel()

	mock := newMockMP3Reader(8000, make([]int16, 100))
	mock.readErr = errors.New("corrupt frame")

	if _, err := newTrack(mock).ReadChunk(); !errors.Is(err, mock.readErr) {
		t.Errorf("ReadChunk() error = %v, want %v", err, mock.readErr)
	}
}
