// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/formats/intbuf"
)

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Track, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
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
		return nil, ErrUnsupportedAiffLayout
	}

	reopen := func() (intbuf.Reader, error) {
		return open(r)
	}
	return intbuf.NewTrack(dec, reopen, format, int64(dec.NumSampleFrames)), nil
}

// open parses the header chunks from the start of r.
func open(r io.ReadSeeker) (*aiff.Decoder, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	return dec, nil
}
