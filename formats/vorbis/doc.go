// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis into audio.Track values using
// github.com/jfreymuth/oggvorbis.
//
// The decoder produces floats, which the track quantises to 16-bit PCM.
// Seeking uses the reader's granule-based SetPosition.
package vorbis
