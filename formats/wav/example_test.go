// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ik5/mfbridge/audio"
	"github.com/ik5/mfbridge/formats/wav"
)

// Example writes one second of silence and decodes it again.
func Example() {
	format := audio.Format{SampleRate: 8000, Channels: 1, BitDepth: 16}
	pcm := make([]byte, format.BytesPerSecond())

	var file bytes.Buffer
	if err := wav.Write(&file, format, pcm); err != nil {
		log.Fatal(err)
	}

	track, err := wav.Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		log.Fatal(err)
	}
	defer track.Close()

	decoded, err := audio.ReadAll(track)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Sample Rate: %d Hz\n", track.Format().SampleRate)
	fmt.Printf("Frames: %d\n", track.Frames())
	fmt.Printf("Decoded bytes: %d\n", len(decoded))
	// Output:
	// Sample Rate: 8000 Hz
	// Frames: 8000
	// Decoded bytes: 16000
}

// Example_errorNotWAV shows the error for non-WAV input.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("OggS and then some more bytes of nothing")))
	fmt.Println(err)
	// Output:
	// not a WAV file
}
