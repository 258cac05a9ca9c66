// SPDX-License-Identifier: EPL-2.0

package mfbridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mfbridge/host"
	"github.com/ik5/mfbridge/session"
)

// blockFrames is the read size DecodeAll uses.
const blockFrames = 4096

// DecodeAll opens file, reads it to the end of the stream and closes it.
// It returns the interleaved PCM bytes and the wave format they are in.
func DecodeAll(file host.FileHandle, size uint32, cfg Config) ([]byte, host.WaveFormat, error) {
	cfg = cfg.withDefaults()

	s, err := session.Open(file, size, cfg.session())
	if err != nil {
		return nil, host.WaveFormat{}, err
	}
	defer s.Close()

	wf, err := s.WaveFormat()
	if err != nil {
		return nil, host.WaveFormat{}, err
	}

	af, err := s.AudioFormat()
	if err != nil {
		return nil, wf, err
	}
	frameSize := af.Channels * af.BitsPerSample / 8
	if frameSize <= 0 {
		return nil, wf, fmt.Errorf("%w: frame size %d", session.ErrPlugin, frameSize)
	}

	out := make([]byte, 0, int(wf.LengthPCM)*frameSize)
	buf := make([]byte, blockFrames*frameSize)
	for {
		n, err := s.Read(buf, blockFrames)
		out = append(out, buf[:int(n)*frameSize]...)
		if errors.Is(err, io.EOF) {
			return out, wf, nil
		}
		if err != nil {
			return out, wf, err
		}
	}
}

// DecodeFile is DecodeAll over a file on disk.
func DecodeFile(path string, cfg Config) ([]byte, host.WaveFormat, error) {
	f, err := host.OpenFile(path)
	if err != nil {
		return nil, host.WaveFormat{}, err
	}
	defer f.Close()

	return DecodeAll(f, f.Size(), cfg)
}
