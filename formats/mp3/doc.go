// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio layer III into audio.Track values using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always outputs 16-bit stereo, so mono files are reported as two
// identical channels. Seeking is done by the decoder on the PCM byte offset.
package mp3
