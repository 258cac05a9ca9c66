// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files into audio.Track values.
//
// Parsing is done by github.com/go-audio/wav. Integer PCM at 16, 24 and 32
// bits is supported, including WAVE_FORMAT_EXTENSIBLE headers.
//
//	track, err := wav.Decoder{}.Decode(file)
//	chunk, err := track.ReadChunk()
//
// Seeking forward decodes and discards. Seeking backward parses the header
// again and then moves forward.
//
// Write produces a canonical 44-byte header in front of raw PCM. It exists
// for fixtures and tooling; the decode path never writes.
package wav
