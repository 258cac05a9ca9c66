// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/utils"
)

func createWAV(t testing.TB, f audio.Format, frames int) ([]byte, []byte) {
	t.Helper()

	size := utils.BytesPerSample(f.BitDepth)
	pcm := make([]byte, frames*f.FrameSize())
	for i := range frames * f.Channels {
		utils.PutPCM(pcm[i*size:], (i*37)%1000-500, f.BitDepth)
	}

	var buf bytes.Buffer
	if err := Write(&buf, f, pcm); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.Bytes(), pcm
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	formats := []audio.Format{
		{SampleRate: 8000, Channels: 1, BitDepth: 16},
		{SampleRate: 44100, Channels: 2, BitDepth: 16},
		{SampleRate: 48000, Channels: 2, BitDepth: 24},
		{SampleRate: 96000, Channels: 1, BitDepth: 32},
	}

	for _, f := range formats {
		file, pcm := createWAV(t, f, 2500)

		track, err := Decoder{}.Decode(bytes.NewReader(file))
		if err != nil {
			t.Fatalf("%+v: Decode() error = %v", f, err)
		}
		if got := track.Format(); got != f {
			t.Errorf("Format() = %+v, want %+v", got, f)
		}
		if got := track.Frames(); got != 2500 {
			t.Errorf("%+v: Frames() = %d, want 2500", f, got)
		}

		got, err := audio.ReadAll(track)
		if err != nil {
			t.Fatalf("%+v: ReadAll() error = %v", f, err)
		}
		if !bytes.Equal(got, pcm) {
			t.Errorf("%+v: decoded PCM differs from written PCM (%d vs %d bytes)", f, len(got), len(pcm))
		}
	}
}

func TestDecoder_Seek(t *testing.T) {
	t.Parallel()

	f := audio.Format{SampleRate: 8000, Channels: 2, BitDepth: 16}
	file, pcm := createWAV(t, f, 3000)

	track, err := Decoder{}.Decode(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for _, frame := range []int64{2000, 100, 2999} {
		if err := track.SeekFrame(frame); err != nil {
			t.Fatalf("SeekFrame(%d) error = %v", frame, err)
		}
		chunk, err := track.ReadChunk()
		if err != nil && err != io.EOF {
			t.Fatalf("ReadChunk() error = %v", err)
		}
		want := pcm[frame*4 : frame*4+4]
		if !bytes.Equal(chunk[:4], want) {
			t.Errorf("frame %d = %v, want %v", frame, chunk[:4], want)
		}
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is definitely not a RIFF/WAVE file at all")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecoder_NonPCMFormat(t *testing.T) {
	t.Parallel()

	file, _ := createWAV(t, audio.Format{SampleRate: 8000, Channels: 1, BitDepth: 16}, 10)
	binary.LittleEndian.PutUint16(file[20:22], 3) // IEEE float

	_, err := Decoder{}.Decode(bytes.NewReader(file))
	if !errors.Is(err, ErrOnlyPCMSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCMSupported", err)
	}
}

func TestDecoder_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	file, _ := createWAV(t, audio.Format{SampleRate: 8000, Channels: 1, BitDepth: 8}, 10)

	_, err := Decoder{}.Decode(bytes.NewReader(file))
	if !errors.Is(err, audio.ErrUnsupportedBitDepth) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestWrite_Header(t *testing.T) {
	t.Parallel()

	f := audio.Format{SampleRate: 22050, Channels: 2, BitDepth: 16}
	file, _ := createWAV(t, f, 5)

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(file[4:8]), 36 + 20},
		{"channels", uint32(binary.LittleEndian.Uint16(file[22:24])), 2},
		{"sample rate", binary.LittleEndian.Uint32(file[24:28]), 22050},
		{"byte rate", binary.LittleEndian.Uint32(file[28:32]), 88200},
		{"block align", uint32(binary.LittleEndian.Uint16(file[32:34])), 4},
		{"data size", binary.LittleEndian.Uint32(file[40:44]), 20},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if string(file[0:4]) != "RIFF" || string(file[8:12]) != "WAVE" || string(file[36:40]) != "data" {
		t.Errorf("bad chunk ids in %q", file[:44])
	}
}

func TestWrite_InvalidFormat(t *testing.T) {
	t.Parallel()

	err := Write(io.Discard, audio.Format{}, nil)
	if !errors.Is(err, audio.ErrInvalidFormat) {
		t.Errorf("Write() error = %v, want ErrInvalidFormat", err)
	}
}

func BenchmarkDecoder_ReadAll(b *testing.B) {
	file, _ := createWAV(b, audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}, 44100)

	b.ResetTimer()
	for b.Loop() {
		track, err := Decoder{}.Decode(bytes.NewReader(file))
		if err != nil {
			b.Fatal(err)
		}
		_, _ = audio.ReadAll(track)
	}
}
