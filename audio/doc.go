// SPDX-License-Identifier: EPL-2.0

// Package audio provides decoded PCM tracks and the conversion stages the
// native media framework puts between a decoder and a source reader.
//
// # Tracks
//
// A Track delivers interleaved PCM bytes in decoder-sized chunks:
//
//	type Track interface {
//	    Format() Format
//	    ReadChunk() ([]byte, error)
//	    Frames() int64
//	    SeekFrame(frame int64) error
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders in formats/* produce Tracks and are registered by content type:
//
//	registry := audio.NewRegistry()
//	registry.Register("audio/wav", wav.Decoder{})
//	decoder, _ := registry.Get("audio/wav")
//
// # Conversion
//
// Float processing works on Source values in [-1.0, 1.0]. TrackSource reads
// a Track as a Source, Resampler changes the rate using cubic interpolation
// and MonoMixer averages channels. Converter chains them and hands back a
// 16-bit Track that can still seek:
//
//	conv, err := audio.NewConverter(track, 16000, true)
//	chunk, err := conv.ReadChunk()
//
// # Error Handling
//
// Reads return io.EOF when no more data is available, possibly together
// with the last data.
package audio
