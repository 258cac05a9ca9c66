// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/formats/intbuf"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Track, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
	}

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	format := audio.Format{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	switch format.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", audio.ErrUnsupportedBitDepth, format.BitDepth)
	}
	if format.Channels == 0 || format.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	frames := int64(dec.PCMLen()) / int64(format.FrameSize())

	reopen := func() (intbuf.Reader, error) {
		return open(r)
	}
	return intbuf.NewTrack(dec, reopen, format, frames), nil
}

// open parses the header from the start of r and stops at the PCM data.
func open(r io.ReadSeeker) (*wav.Decoder, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	return dec, nil
}
