// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/formats/wav"
)

func writeWAV(t *testing.T, f audio.Format, frames int) string {
	t.Helper()

	var buf bytes.Buffer
	if err := wav.Write(&buf, f, make([]byte, frames*f.FrameSize())); err != nil {
		t.Fatalf("wav.Write() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "probe.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestProbe(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, audio.Format{SampleRate: 16000, Channels: 2, BitDepth: 16}, 16000)

	var out bytes.Buffer
	err := probe(&out, path, options{
		seekMS:   250,
		readSize: 1000,
		logger:   log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("probe() error = %v", err)
	}

	report := out.String()
	for _, want := range []string{"PCM16", "16000 Hz", "1000", "12000", "250 ms", "1000 ms"} {
		if !strings.Contains(report, want) {
			t.Errorf("report lacks %q:\n%s", want, report)
		}
	}
}

func TestProbe_Conversion(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}, 4410)

	var out bytes.Buffer
	err := probe(&out, path, options{readSize: 512, rate: 8000, mono: true, logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("probe() error = %v", err)
	}
	if !strings.Contains(out.String(), "8000 Hz") {
		t.Errorf("report lacks the converted rate:\n%s", out.String())
	}
}

func TestProbe_Errors(t *testing.T) {
	t.Parallel()

	quiet := log.New(io.Discard, "", 0)

	if err := probe(io.Discard, filepath.Join(t.TempDir(), "missing.wav"), options{readSize: 1, logger: quiet}); err == nil {
		t.Error("probe() on a missing file succeeded")
	}

	junk := filepath.Join(t.TempDir(), "junk.bin")
	if err := os.WriteFile(junk, make([]byte, 64), 0o600); err != nil {
		t.Fatal(err)
	}
	err := probe(io.Discard, junk, options{readSize: 1, logger: quiet})
	if err == nil || !strings.Contains(err.Error(), "ERR_FORMAT") {
		t.Errorf("probe() on junk error = %v, want ERR_FORMAT", err)
	}

	if err := probe(io.Discard, junk, options{logger: quiet}); err == nil {
		t.Error("probe() with a zero read size succeeded")
	}
}
