// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/mfbridge/audio"
)

// Write wraps raw PCM in a canonical 44-byte RIFF/WAVE header. pcm must
// already be in the layout f describes.
func Write(w io.Writer, f audio.Format, pcm []byte) error {
	if f.SampleRate <= 0 || f.Channels <= 0 || f.FrameSize() == 0 {
		return fmt.Errorf("%w: %+v", audio.ErrInvalidFormat, f)
	}

	dataSize := uint32(len(pcm))
	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(f.BytesPerSecond()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(f.FrameSize()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
